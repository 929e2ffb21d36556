package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/service"
	"github.com/ronnaro/ata-academica-plus/pkg/response"
)

// SemesterHandler serves the academic semester endpoints.
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler creates a SemesterHandler.
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

// List returns every semester, most recent first.
// GET /api/v1/semesters
func (h *SemesterHandler) List(c *gin.Context) {
	semesters, err := h.semesterSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": semesters})
}

// Get returns one semester.
// GET /api/v1/semesters/:id
func (h *SemesterHandler) Get(c *gin.Context) {
	semester, err := h.semesterSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	response.OK(c, semester)
}

// Create creates a semester.
// POST /api/v1/semesters
func (h *SemesterHandler) Create(c *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	semester, err := h.semesterSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	response.Created(c, semester)
}

// Update edits a semester.
// PATCH /api/v1/semesters/:id
func (h *SemesterHandler) Update(c *gin.Context) {
	var req dto.UpdateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	semester, err := h.semesterSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}

	response.OK(c, semester)
}

// Delete removes a semester.
// DELETE /api/v1/semesters/:id
func (h *SemesterHandler) Delete(c *gin.Context) {
	if err := h.semesterSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleSemesterError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SemesterHandler) handleSemesterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 15001, "semester not found")
	case errors.Is(err, service.ErrSemesterDateInvalid):
		response.BadRequest(c, 15002, "semester dates invalid")
	default:
		response.InternalError(c)
	}
}
