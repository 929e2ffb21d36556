package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// MeetingFilter narrows List results.
type MeetingFilter struct {
	SemesterID string
	Status     string
}

// MeetingRepository is the meetings table store.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	GetByID(ctx context.Context, id string) (*model.Meeting, error)
	List(ctx context.Context, filter MeetingFilter) ([]model.Meeting, error)
	Update(ctx context.Context, meeting *model.Meeting) error
	Delete(ctx context.Context, id string) error
}

type meetingRepo struct {
	db *gorm.DB
}

// NewMeetingRepo creates a MeetingRepository.
func NewMeetingRepo(db *gorm.DB) MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) Create(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepo) GetByID(ctx context.Context, id string) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Participants.Professor").
		Preload("Attachments").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepo) List(ctx context.Context, filter MeetingFilter) ([]model.Meeting, error) {
	q := r.db.WithContext(ctx).Model(&model.Meeting{})
	if filter.SemesterID != "" {
		q = q.Where("semester_id = ?", filter.SemesterID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var meetings []model.Meeting
	err := q.Order("meeting_date DESC, start_time DESC").Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepo) Update(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// Delete removes the meeting row. Only the creation workflow's compensation
// path calls this.
func (r *meetingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Meeting{}).Error
}
