package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/service"
	"github.com/ronnaro/ata-academica-plus/pkg/response"
)

// ProfessorHandler serves the professor directory endpoints.
type ProfessorHandler struct {
	professorSvc service.ProfessorService
}

// NewProfessorHandler creates a ProfessorHandler.
func NewProfessorHandler(professorSvc service.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{professorSvc: professorSvc}
}

// Create adds a directory entry.
// POST /api/v1/professors
func (h *ProfessorHandler) Create(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	professor, err := h.professorSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, professor)
}

// List returns every professor ordered by name.
// GET /api/v1/professors
func (h *ProfessorHandler) List(c *gin.Context) {
	professors, err := h.professorSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": professors})
}

// Get returns one directory entry.
// GET /api/v1/professors/:id
func (h *ProfessorHandler) Get(c *gin.Context) {
	professor, err := h.professorSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProfessorError(c, err)
		return
	}

	response.OK(c, professor)
}

// Update edits a directory entry.
// PATCH /api/v1/professors/:id
func (h *ProfessorHandler) Update(c *gin.Context) {
	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	professor, err := h.professorSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleProfessorError(c, err)
		return
	}

	response.OK(c, professor)
}

// ListParticipation returns attendance totals per professor for a period,
// the certificates page's data source.
// GET /api/v1/professors/participation?period=
func (h *ProfessorHandler) ListParticipation(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		response.BadRequest(c, 10001, "period is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rows, err := h.professorSvc.ListParticipation(c.Request.Context(), period, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

func (h *ProfessorHandler) handleProfessorError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProfessorNotFound) {
		response.NotFound(c, 14001, "professor not found")
		return
	}
	response.InternalError(c)
}
