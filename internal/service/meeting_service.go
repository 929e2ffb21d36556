package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
	"github.com/ronnaro/ata-academica-plus/pkg/storage"
)

// ── meeting module errors ──

var (
	ErrMeetingInvalid     = errors.New("invalid meeting payload")
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrNoParticipants     = errors.New("at least one professor must be selected")
	ErrAttachmentUpload   = errors.New("attachment upload failed")
	ErrParticipantHasGone = errors.New("participant not found")
)

// MeetingService owns the meeting lifecycle: the creation workflow plus the
// later coordinator edits (status, deliberations, attendance, minutes).
type MeetingService interface {
	Create(ctx context.Context, req *dto.CreateMeetingRequest, callerID string) (*dto.MeetingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MeetingResponse, error)
	List(ctx context.Context, filter repository.MeetingFilter) ([]dto.MeetingResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateMeetingRequest, callerID string) (*dto.MeetingResponse, error)
	MarkAttendance(ctx context.Context, meetingID, participantID string, attended bool) error
	SaveMinutes(ctx context.Context, meetingID string, req *dto.MinutesRequest, callerID string) (*dto.MinutesResponse, error)
	GetMinutes(ctx context.Context, meetingID string) (*dto.MinutesResponse, error)
	DownloadAttachment(ctx context.Context, meetingID, attachmentID string) ([]byte, string, error)
}

type meetingService struct {
	repo            *repository.Repository
	store           storage.ObjectStore
	bucket          string
	hoursPerMeeting int
	logger          *zap.Logger
}

// NewMeetingService creates a MeetingService. hoursPerMeeting is the workload
// credited to each participant link at creation time.
func NewMeetingService(repo *repository.Repository, store storage.ObjectStore, bucket string, hoursPerMeeting int, logger *zap.Logger) MeetingService {
	return &meetingService{
		repo:            repo,
		store:           store,
		bucket:          bucket,
		hoursPerMeeting: hoursPerMeeting,
		logger:          logger,
	}
}

// ────────────────────── Create ──────────────────────

// Create runs the meeting-creation workflow:
//
//  1. validate — no remote call is issued on a validation failure
//  2. insert the meeting row; a failure here aborts everything
//  3. upload each attachment in order and insert its metadata row; the first
//     failure aborts the remaining files, leaving the meeting and the files
//     already stored in place
//  4. insert all participant links in one transaction; on failure the links
//     roll back and the meeting plus attachment rows are compensated away
//     (stored blobs may be orphaned, which is logged)
//
// The operation is not idempotent: resubmitting creates a second meeting.
func (s *meetingService) Create(ctx context.Context, req *dto.CreateMeetingRequest, callerID string) (*dto.MeetingResponse, error) {
	meetingDate, professorIDs, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	// The semester gives the meeting its academic period; attendance counts
	// for certificates aggregate on that column.
	semester, err := s.repo.Semester.GetByID(ctx, req.SemesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingInvalid
		}
		s.logger.Error("loading semester failed", zap.String("id", req.SemesterID), zap.Error(err))
		return nil, err
	}

	semesterID := req.SemesterID
	meeting := &model.Meeting{
		Title:          req.Title,
		MeetingDate:    meetingDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		MeetingType:    req.MeetingType,
		SemesterID:     &semesterID,
		AcademicPeriod: semester.Name,
		Agenda:         req.Agenda,
		Status:         model.MeetingStatusAgendada,
		CreatedBy:      callerID,
	}

	if err := s.repo.Meeting.Create(ctx, meeting); err != nil {
		s.logger.Error("meeting insert failed", zap.Error(err))
		return nil, fmt.Errorf("creating meeting: %w", err)
	}

	// Attachments, in form order. Aborts on the first failed file; the
	// meeting row and previously stored files stay as they are.
	for _, file := range req.Attachments {
		if err := s.storeAttachment(ctx, meeting.ID, callerID, file); err != nil {
			s.logger.Error("attachment step failed, aborting remaining files",
				zap.String("meeting_id", meeting.ID),
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %s: %v", ErrAttachmentUpload, file.Filename, err)
		}
	}

	if err := s.createParticipants(ctx, meeting.ID, professorIDs); err != nil {
		s.compensate(ctx, meeting.ID)
		return nil, fmt.Errorf("creating participants: %w", err)
	}

	created, err := s.repo.Meeting.GetByID(ctx, meeting.ID)
	if err != nil {
		// The workflow itself succeeded; fall back to the bare row.
		s.logger.Warn("reloading created meeting failed", zap.String("meeting_id", meeting.ID), zap.Error(err))
		created = meeting
	}

	return s.toMeetingResponse(created), nil
}

// validateCreate enforces the pre-submit contract. It never touches a
// repository or the object store.
func (s *meetingService) validateCreate(req *dto.CreateMeetingRequest) (time.Time, []string, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Location) == "" ||
		strings.TrimSpace(req.MeetingType) == "" ||
		strings.TrimSpace(req.SemesterID) == "" {
		return time.Time{}, nil, ErrMeetingInvalid
	}

	meetingDate, err := time.Parse("2006-01-02", req.MeetingDate)
	if err != nil {
		return time.Time{}, nil, ErrMeetingInvalid
	}

	// De-dup the selection; the unique index backs this up at the store.
	seen := make(map[string]bool, len(req.ProfessorIDs))
	professorIDs := make([]string, 0, len(req.ProfessorIDs))
	for _, id := range req.ProfessorIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		professorIDs = append(professorIDs, id)
	}
	if len(professorIDs) == 0 {
		return time.Time{}, nil, ErrNoParticipants
	}

	return meetingDate, professorIDs, nil
}

// storeAttachment uploads one blob and inserts its metadata row. Either both
// happen or the caller aborts the loop.
func (s *meetingService) storeAttachment(ctx context.Context, meetingID, callerID string, file dto.AttachmentUpload) error {
	objectPath := attachmentPath(meetingID, file.Filename)

	if err := s.store.Upload(ctx, s.bucket, objectPath, file.ContentType, bytes.NewReader(file.Data)); err != nil {
		return err
	}

	attachment := &model.MeetingAttachment{
		MeetingID:  meetingID,
		Filename:   file.Filename,
		FilePath:   objectPath,
		UploadedBy: callerID,
	}
	return s.repo.Attachment.Create(ctx, attachment)
}

// attachmentPath derives a unique storage path from a millisecond timestamp,
// a random suffix and the original extension.
func attachmentPath(meetingID, filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("meeting_files/%s/%d_%s.%s",
		meetingID, time.Now().UnixMilli(), randomSuffix(8), ext)
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// createParticipants inserts every link inside one transaction so the set is
// all-or-nothing.
func (s *meetingService) createParticipants(ctx context.Context, meetingID string, professorIDs []string) error {
	participants := make([]model.MeetingParticipant, 0, len(professorIDs))
	for _, professorID := range professorIDs {
		participants = append(participants, model.MeetingParticipant{
			MeetingID:        meetingID,
			ProfessorID:      professorID,
			AttendanceStatus: false,
			HoursComputed:    s.hoursPerMeeting,
		})
	}

	tx := s.repo.BeginTx()
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Participant.CreateBatch(ctx, participants); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("participant insert failed", zap.String("meeting_id", meetingID), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("participant commit failed", zap.String("meeting_id", meetingID), zap.Error(err))
			return err
		}
	}
	return nil
}

// compensate deletes the meeting and its attachment rows after a participant
// failure. Best effort: a failing delete is logged, never surfaced. Stored
// blobs are not removed here; the bucket path carries the meeting id, so an
// operator can sweep orphans.
func (s *meetingService) compensate(ctx context.Context, meetingID string) {
	if err := s.repo.Attachment.DeleteByMeeting(ctx, meetingID); err != nil {
		s.logger.Error("compensation: deleting attachment rows failed",
			zap.String("meeting_id", meetingID), zap.Error(err))
		return
	}
	if err := s.repo.Meeting.Delete(ctx, meetingID); err != nil {
		s.logger.Error("compensation: deleting meeting failed",
			zap.String("meeting_id", meetingID), zap.Error(err))
	}
}

// ────────────────────── GetByID ──────────────────────

func (s *meetingService) GetByID(ctx context.Context, id string) (*dto.MeetingResponse, error) {
	meeting, err := s.repo.Meeting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("loading meeting failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toMeetingResponse(meeting), nil
}

// ────────────────────── List ──────────────────────

func (s *meetingService) List(ctx context.Context, filter repository.MeetingFilter) ([]dto.MeetingResponse, error) {
	meetings, err := s.repo.Meeting.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing meetings failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		result = append(result, *s.toMeetingResponse(&meetings[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update applies coordinator edits. Concurrent editors race under
// last-write-wins; there is no version check.
func (s *meetingService) Update(ctx context.Context, id string, req *dto.UpdateMeetingRequest, callerID string) (*dto.MeetingResponse, error) {
	meeting, err := s.repo.Meeting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("loading meeting failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		meeting.Title = *req.Title
	}
	if req.Location != nil {
		meeting.Location = *req.Location
	}
	if req.Status != nil {
		meeting.Status = *req.Status
	}
	if req.Agenda != nil {
		meeting.Agenda = *req.Agenda
	}
	if req.Deliberations != nil {
		meeting.Deliberations = *req.Deliberations
	}

	if err := s.repo.Meeting.Update(ctx, meeting); err != nil {
		s.logger.Error("updating meeting failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toMeetingResponse(meeting), nil
}

// ────────────────────── MarkAttendance ──────────────────────

// MarkAttendance flips one participant's attendance flag. Hours stay at the
// value credited on creation; the certificate path recomputes from counts.
func (s *meetingService) MarkAttendance(ctx context.Context, meetingID, participantID string, attended bool) error {
	participant, err := s.repo.Participant.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantHasGone
		}
		s.logger.Error("loading participant failed", zap.String("id", participantID), zap.Error(err))
		return err
	}
	if participant.MeetingID != meetingID {
		return ErrParticipantHasGone
	}

	participant.AttendanceStatus = attended
	if err := s.repo.Participant.Update(ctx, participant); err != nil {
		s.logger.Error("updating attendance failed", zap.String("id", participantID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── minutes ──────────────────────

func (s *meetingService) SaveMinutes(ctx context.Context, meetingID string, req *dto.MinutesRequest, callerID string) (*dto.MinutesResponse, error) {
	if _, err := s.repo.Meeting.GetByID(ctx, meetingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("loading meeting failed", zap.String("id", meetingID), zap.Error(err))
		return nil, err
	}

	minutes := &model.MeetingMinutes{
		MeetingID:   meetingID,
		Content:     req.Content,
		GeneratedBy: callerID,
	}
	if err := s.repo.Minutes.Upsert(ctx, minutes); err != nil {
		s.logger.Error("saving minutes failed", zap.String("meeting_id", meetingID), zap.Error(err))
		return nil, err
	}

	saved, err := s.repo.Minutes.GetByMeeting(ctx, meetingID)
	if err != nil {
		s.logger.Error("reloading minutes failed", zap.String("meeting_id", meetingID), zap.Error(err))
		return nil, err
	}
	return s.toMinutesResponse(saved), nil
}

func (s *meetingService) GetMinutes(ctx context.Context, meetingID string) (*dto.MinutesResponse, error) {
	minutes, err := s.repo.Minutes.GetByMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("loading minutes failed", zap.String("meeting_id", meetingID), zap.Error(err))
		return nil, err
	}
	return s.toMinutesResponse(minutes), nil
}

// ────────────────────── DownloadAttachment ──────────────────────

func (s *meetingService) DownloadAttachment(ctx context.Context, meetingID, attachmentID string) ([]byte, string, error) {
	attachment, err := s.repo.Attachment.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrMeetingNotFound
		}
		s.logger.Error("loading attachment failed", zap.String("id", attachmentID), zap.Error(err))
		return nil, "", err
	}
	if attachment.MeetingID != meetingID {
		return nil, "", ErrMeetingNotFound
	}

	data, err := s.store.Download(ctx, s.bucket, attachment.FilePath)
	if err != nil {
		s.logger.Error("downloading attachment failed", zap.String("path", attachment.FilePath), zap.Error(err))
		return nil, "", err
	}
	return data, attachment.Filename, nil
}

// ── helpers ──

func (s *meetingService) toMeetingResponse(meeting *model.Meeting) *dto.MeetingResponse {
	resp := &dto.MeetingResponse{
		ID:            meeting.ID,
		Title:         meeting.Title,
		MeetingDate:   meeting.MeetingDate.Format("2006-01-02"),
		StartTime:     meeting.StartTime,
		EndTime:       meeting.EndTime,
		Location:      meeting.Location,
		MeetingType:   meeting.MeetingType,
		Agenda:        meeting.Agenda,
		Deliberations: meeting.Deliberations,
		Status:        meeting.Status,
		CreatedBy:     meeting.CreatedBy,
		CreatedAt:     meeting.CreatedAt.Format(time.RFC3339),
	}
	if meeting.SemesterID != nil {
		resp.SemesterID = *meeting.SemesterID
	}

	for i := range meeting.Participants {
		p := &meeting.Participants[i]
		pr := dto.ParticipantResponse{
			ID:               p.ID,
			ProfessorID:      p.ProfessorID,
			AttendanceStatus: p.AttendanceStatus,
			HoursComputed:    p.HoursComputed,
		}
		if p.Professor != nil {
			pr.ProfessorName = p.Professor.FullName
		}
		resp.Participants = append(resp.Participants, pr)
	}

	for i := range meeting.Attachments {
		a := &meeting.Attachments[i]
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			ID:         a.ID,
			Filename:   a.Filename,
			FilePath:   a.FilePath,
			UploadedBy: a.UploadedBy,
			UploadedAt: a.UploadedAt.Format(time.RFC3339),
		})
	}

	return resp
}

func (s *meetingService) toMinutesResponse(minutes *model.MeetingMinutes) *dto.MinutesResponse {
	return &dto.MinutesResponse{
		ID:          minutes.ID,
		MeetingID:   minutes.MeetingID,
		Content:     minutes.Content,
		GeneratedBy: minutes.GeneratedBy,
		GeneratedAt: minutes.GeneratedAt.Format(time.RFC3339),
		UpdatedAt:   minutes.UpdatedAt.Format(time.RFC3339),
	}
}
