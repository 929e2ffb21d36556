package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/internal/service"
	"github.com/ronnaro/ata-academica-plus/pkg/response"
)

// SettingsHandler serves the per-user configuration endpoints.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// List returns every settings row of the caller.
// GET /api/v1/settings
func (h *SettingsHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": settings})
}

// Get returns one settings block by type.
// GET /api/v1/settings/:type
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	settingsType := c.Param("type")
	switch settingsType {
	case model.SettingsTypeInstitution, model.SettingsTypeCertificate, model.SettingsTypeMeeting:
	default:
		response.BadRequest(c, 10001, "unknown settings type")
		return
	}

	setting, err := h.settingsSvc.Get(c.Request.Context(), userID, settingsType)
	if err != nil {
		if errors.Is(err, service.ErrSettingNotFound) {
			response.NotFound(c, 16001, "setting not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}

// SaveInstitution upserts the institution letterhead block.
// PUT /api/v1/settings/institution
func (h *SettingsHandler) SaveInstitution(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.InstitutionSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	setting, err := h.settingsSvc.SaveInstitution(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}

// SaveCertificate upserts the certificate rendering block.
// PUT /api/v1/settings/certificate
func (h *SettingsHandler) SaveCertificate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CertificateSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	setting, err := h.settingsSvc.SaveCertificate(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}

// SaveMeeting upserts the meeting form defaults block.
// PUT /api/v1/settings/meeting
func (h *SettingsHandler) SaveMeeting(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MeetingSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid payload")
		return
	}

	setting, err := h.settingsSvc.SaveMeeting(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}

// UploadLogo stores the institution logo blob.
// POST /api/v1/settings/institution/logo
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		response.BadRequest(c, 10001, "logo file missing")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 10001, "unreadable logo file")
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		response.BadRequest(c, 10001, "unreadable logo file")
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path, err := h.settingsSvc.UploadLogo(c.Request.Context(), userID, fh.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, service.ErrLogoUpload) {
			response.Error(c, http.StatusBadGateway, 16002, "uploading logo failed")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"logo_path": path})
}
