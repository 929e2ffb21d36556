package service

import (
	"go.uber.org/zap"

	"github.com/ronnaro/ata-academica-plus/config"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
	"github.com/ronnaro/ata-academica-plus/pkg/jwt"
	"github.com/ronnaro/ata-academica-plus/pkg/redis"
	"github.com/ronnaro/ata-academica-plus/pkg/storage"
)

// Service aggregates every business-layer interface.
type Service struct {
	Auth        AuthService
	Meeting     MeetingService
	Certificate CertificateService
	Professor   ProfessorService
	Semester    SemesterService
	Settings    SettingsService
	Export      ExportService
}

// NewService wires every service. rdb may be nil when redis is unavailable;
// the auth service degrades to direct directory lookups.
func NewService(cfg *config.Config, repo *repository.Repository, store storage.ObjectStore, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	professors := NewProfessorService(repo, cfg.Certificate.HoursPerMeeting, logger)

	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Meeting:     NewMeetingService(repo, store, cfg.Storage.MeetingBucket, cfg.Certificate.HoursPerMeeting, logger),
		Certificate: NewCertificateService(repo, &cfg.Certificate, logger),
		Professor:   professors,
		Semester:    NewSemesterService(repo, logger),
		Settings:    NewSettingsService(repo, store, cfg.Storage.SettingsBucket, logger),
		Export:      NewExportService(professors, logger),
	}
}
