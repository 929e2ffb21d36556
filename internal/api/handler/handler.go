package handler

import "github.com/ronnaro/ata-academica-plus/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Meeting     *MeetingHandler
	Certificate *CertificateHandler
	Professor   *ProfessorHandler
	Semester    *SemesterHandler
	Settings    *SettingsHandler
	Export      *ExportHandler
}

// NewHandler wires every handler over the service aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Meeting:     NewMeetingHandler(svc.Meeting),
		Certificate: NewCertificateHandler(svc.Certificate),
		Professor:   NewProfessorHandler(svc.Professor),
		Semester:    NewSemesterHandler(svc.Semester),
		Settings:    NewSettingsHandler(svc.Settings),
		Export:      NewExportHandler(svc.Export),
	}
}
