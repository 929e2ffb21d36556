package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
	"github.com/ronnaro/ata-academica-plus/internal/service"
	"github.com/ronnaro/ata-academica-plus/pkg/response"
)

// MeetingHandler serves the meeting lifecycle endpoints.
type MeetingHandler struct {
	meetingSvc service.MeetingService
}

// NewMeetingHandler creates a MeetingHandler.
func NewMeetingHandler(meetingSvc service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingSvc: meetingSvc}
}

// Create runs the meeting-creation workflow from a multipart form. Scalar
// fields travel as form values, the professor selection as repeated
// professor_ids values, files under the attachments key.
// POST /api/v1/meetings
func (h *MeetingHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	req := &dto.CreateMeetingRequest{
		Title:        c.PostForm("title"),
		MeetingDate:  c.PostForm("meeting_date"),
		StartTime:    c.PostForm("start_time"),
		EndTime:      c.PostForm("end_time"),
		Location:     c.PostForm("location"),
		MeetingType:  c.PostForm("meeting_type"),
		SemesterID:   c.PostForm("semester_id"),
		Agenda:       c.PostForm("agenda"),
		ProfessorIDs: c.PostFormArray("professor_ids"),
	}

	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		response.BadRequest(c, 10001, "malformed multipart form")
		return
	}
	if form != nil {
		uploads, err := readUploads(form.File["attachments"])
		if err != nil {
			response.BadRequest(c, 10001, "unreadable attachment")
			return
		}
		req.Attachments = uploads
	}

	meeting, err := h.meetingSvc.Create(c.Request.Context(), req, callerID)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}

	response.Created(c, meeting)
}

// readUploads drains each form file into memory, form order preserved.
func readUploads(files []*multipart.FileHeader) ([]dto.AttachmentUpload, error) {
	uploads := make([]dto.AttachmentUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		uploads = append(uploads, dto.AttachmentUpload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}
	return uploads, nil
}

// List returns meetings, optionally filtered.
// GET /api/v1/meetings?semester_id=&status=
func (h *MeetingHandler) List(c *gin.Context) {
	filter := repository.MeetingFilter{
		SemesterID: c.Query("semester_id"),
		Status:     c.Query("status"),
	}

	meetings, err := h.meetingSvc.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": meetings})
}

// Get returns one meeting with participants and attachments.
// GET /api/v1/meetings/:id
func (h *MeetingHandler) Get(c *gin.Context) {
	meeting, err := h.meetingSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}

	response.OK(c, meeting)
}

// Update applies coordinator edits (status, deliberations, ...).
// PATCH /api/v1/meetings/:id
func (h *MeetingHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	meeting, err := h.meetingSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}

	response.OK(c, meeting)
}

// MarkAttendance flips one participant's attendance flag.
// PUT /api/v1/meetings/:id/participants/:participantID/attendance
func (h *MeetingHandler) MarkAttendance(c *gin.Context) {
	var req dto.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	err := h.meetingSvc.MarkAttendance(c.Request.Context(), c.Param("id"), c.Param("participantID"), req.Attended)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}

	response.OK(c, nil)
}

// SaveMinutes upserts the meeting minutes text.
// PUT /api/v1/meetings/:id/minutes
func (h *MeetingHandler) SaveMinutes(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MinutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	minutes, err := h.meetingSvc.SaveMinutes(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}

	response.OK(c, minutes)
}

// GetMinutes returns the minutes of a meeting.
// GET /api/v1/meetings/:id/minutes
func (h *MeetingHandler) GetMinutes(c *gin.Context) {
	minutes, err := h.meetingSvc.GetMinutes(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}

	response.OK(c, minutes)
}

// DownloadAttachment streams one stored attachment.
// GET /api/v1/meetings/:id/attachments/:attachmentID
func (h *MeetingHandler) DownloadAttachment(c *gin.Context) {
	data, filename, err := h.meetingSvc.DownloadAttachment(c.Request.Context(), c.Param("id"), c.Param("attachmentID"))
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}

	encoded := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *MeetingHandler) handleMeetingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMeetingInvalid):
		response.BadRequest(c, 12001, "invalid meeting payload")
	case errors.Is(err, service.ErrNoParticipants):
		response.BadRequest(c, 12002, "at least one professor must be selected")
	case errors.Is(err, service.ErrMeetingNotFound):
		response.NotFound(c, 12003, "meeting not found")
	case errors.Is(err, service.ErrParticipantHasGone):
		response.NotFound(c, 12004, "participant not found")
	case errors.Is(err, service.ErrAttachmentUpload):
		// keep the failing filename visible to the form
		msg := err.Error()
		if i := strings.Index(msg, ": "); i >= 0 {
			msg = msg[i+2:]
		}
		response.ErrorWithDetails(c, http.StatusBadGateway, 12005, "attachment upload failed", msg)
	default:
		response.InternalError(c)
	}
}
