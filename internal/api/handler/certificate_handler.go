package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/service"
	"github.com/ronnaro/ata-academica-plus/pkg/response"
)

// CertificateHandler serves declaration generation and the audit listing.
type CertificateHandler struct {
	certificateSvc service.CertificateService
}

// NewCertificateHandler creates a CertificateHandler.
func NewCertificateHandler(certificateSvc service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateSvc: certificateSvc}
}

// Generate renders one professor's declaration PDF.
// POST /api/v1/certificates/generate
func (h *CertificateHandler) Generate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	buf, filename, err := h.certificateSvc.Generate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCertificateError(c, err)
		return
	}

	encoded := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GenerateBatch renders declarations for a professor set and reports the
// aggregate outcome.
// POST /api/v1/certificates/generate-batch
func (h *CertificateHandler) GenerateBatch(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BatchCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	result, err := h.certificateSvc.GenerateBatch(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrCertificatesFailed) {
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 13003, "no certificate could be generated", "")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns the generation audit rows for a period.
// GET /api/v1/certificates?period=
func (h *CertificateHandler) List(c *gin.Context) {
	records, err := h.certificateSvc.ListRecords(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": records})
}

func (h *CertificateHandler) handleCertificateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfessorNotFound):
		response.NotFound(c, 13001, "professor not found")
	case errors.Is(err, service.ErrCertificateRender):
		response.Error(c, http.StatusInternalServerError, 13002, "rendering certificate failed")
	default:
		response.InternalError(c)
	}
}
