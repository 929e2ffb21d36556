package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
	"github.com/ronnaro/ata-academica-plus/pkg/storage"
)

// ── settings module errors ──

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrLogoUpload      = errors.New("uploading logo failed")
)

// SettingsService stores per-user configuration rows, one per settings type.
type SettingsService interface {
	SaveInstitution(ctx context.Context, userID string, req *dto.InstitutionSettings) (*dto.SettingResponse, error)
	SaveCertificate(ctx context.Context, userID string, req *dto.CertificateSettings) (*dto.SettingResponse, error)
	SaveMeeting(ctx context.Context, userID string, req *dto.MeetingSettings) (*dto.SettingResponse, error)
	Get(ctx context.Context, userID, settingsType string) (*dto.SettingResponse, error)
	List(ctx context.Context, userID string) ([]dto.SettingResponse, error)
	// UploadLogo stores the institution logo blob and patches logo_path into
	// the caller's institution settings.
	UploadLogo(ctx context.Context, userID, filename, contentType string, data []byte) (string, error)
}

type settingsService struct {
	repo   *repository.Repository
	store  storage.ObjectStore
	bucket string
	logger *zap.Logger
}

// NewSettingsService creates a SettingsService. bucket is the settings blob
// bucket for logo uploads.
func NewSettingsService(repo *repository.Repository, store storage.ObjectStore, bucket string, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, store: store, bucket: bucket, logger: logger}
}

func (s *settingsService) SaveInstitution(ctx context.Context, userID string, req *dto.InstitutionSettings) (*dto.SettingResponse, error) {
	return s.save(ctx, userID, model.SettingsTypeInstitution, req)
}

func (s *settingsService) SaveCertificate(ctx context.Context, userID string, req *dto.CertificateSettings) (*dto.SettingResponse, error) {
	return s.save(ctx, userID, model.SettingsTypeCertificate, req)
}

func (s *settingsService) SaveMeeting(ctx context.Context, userID string, req *dto.MeetingSettings) (*dto.SettingResponse, error) {
	return s.save(ctx, userID, model.SettingsTypeMeeting, req)
}

// save marshals the typed block into the JSONB column and upserts on
// (user_id, settings_type).
func (s *settingsService) save(ctx context.Context, userID, settingsType string, block interface{}) (*dto.SettingResponse, error) {
	data, err := toJSONMap(block)
	if err != nil {
		return nil, err
	}

	setting := &model.Setting{
		UserID:       userID,
		SettingsType: settingsType,
		SettingsData: data,
	}
	if err := s.repo.Setting.Upsert(ctx, setting); err != nil {
		s.logger.Error("settings upsert failed",
			zap.String("user_id", userID),
			zap.String("settings_type", settingsType),
			zap.Error(err),
		)
		return nil, err
	}
	return toSettingResponse(setting), nil
}

func (s *settingsService) Get(ctx context.Context, userID, settingsType string) (*dto.SettingResponse, error) {
	setting, err := s.repo.Setting.Get(ctx, userID, settingsType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("loading setting failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

func (s *settingsService) List(ctx context.Context, userID string) ([]dto.SettingResponse, error) {
	settings, err := s.repo.Setting.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("listing settings failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		result = append(result, *toSettingResponse(&settings[i]))
	}
	return result, nil
}

func (s *settingsService) UploadLogo(ctx context.Context, userID, filename, contentType string, data []byte) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "png"
	}
	path := fmt.Sprintf("%s/logo_%d.%s", userID, time.Now().UnixMilli(), ext)

	if err := s.store.Upload(ctx, s.bucket, path, contentType, bytes.NewReader(data)); err != nil {
		s.logger.Error("logo upload failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrLogoUpload, err)
	}

	// Patch the path into the stored institution block, creating it if the
	// caller has none yet.
	block := model.JSONMap{}
	if setting, err := s.repo.Setting.Get(ctx, userID, model.SettingsTypeInstitution); err == nil {
		block = setting.SettingsData
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("loading institution settings failed", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}
	block["logo_path"] = path

	setting := &model.Setting{
		UserID:       userID,
		SettingsType: model.SettingsTypeInstitution,
		SettingsData: block,
	}
	if err := s.repo.Setting.Upsert(ctx, setting); err != nil {
		s.logger.Error("settings upsert failed", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	return path, nil
}

func toJSONMap(block interface{}) (model.JSONMap, error) {
	raw, err := json.Marshal(block)
	if err != nil {
		return nil, err
	}
	var m model.JSONMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func toSettingResponse(setting *model.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		SettingsType: setting.SettingsType,
		SettingsData: setting.SettingsData,
		UpdatedAt:    setting.UpdatedAt.Format(time.RFC3339),
	}
}
