package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// SettingRepository is the settings table store.
type SettingRepository interface {
	Upsert(ctx context.Context, setting *model.Setting) error
	Get(ctx context.Context, userID, settingsType string) (*model.Setting, error)
	ListByUser(ctx context.Context, userID string) ([]model.Setting, error)
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates a SettingRepository.
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

// Upsert replaces the payload for a (user, settings_type) pair.
func (r *settingRepo) Upsert(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "settings_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"settings_data", "updated_at"}),
		}).
		Create(setting).Error
}

func (r *settingRepo) Get(ctx context.Context, userID, settingsType string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND settings_type = ?", userID, settingsType).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) ListByUser(ctx context.Context, userID string) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("settings_type ASC").
		Find(&settings).Error
	return settings, err
}
