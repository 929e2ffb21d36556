package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// MinutesRepository is the meeting_minutes table store.
type MinutesRepository interface {
	Upsert(ctx context.Context, minutes *model.MeetingMinutes) error
	GetByMeeting(ctx context.Context, meetingID string) (*model.MeetingMinutes, error)
}

type minutesRepo struct {
	db *gorm.DB
}

// NewMinutesRepo creates a MinutesRepository.
func NewMinutesRepo(db *gorm.DB) MinutesRepository {
	return &minutesRepo{db: db}
}

// Upsert writes the single minutes row for a meeting, replacing the content
// on conflict.
func (r *minutesRepo) Upsert(ctx context.Context, minutes *model.MeetingMinutes) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "generated_by", "updated_at"}),
		}).
		Create(minutes).Error
}

func (r *minutesRepo) GetByMeeting(ctx context.Context, meetingID string) (*model.MeetingMinutes, error) {
	var minutes model.MeetingMinutes
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&minutes).Error
	if err != nil {
		return nil, err
	}
	return &minutes, nil
}
