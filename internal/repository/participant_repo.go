package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// ParticipantRepository is the meeting_participants table store.
type ParticipantRepository interface {
	CreateBatch(ctx context.Context, participants []model.MeetingParticipant) error
	GetByID(ctx context.Context, id string) (*model.MeetingParticipant, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]model.MeetingParticipant, error)
	Update(ctx context.Context, participant *model.MeetingParticipant) error
	CountAttended(ctx context.Context, professorID, period string) (int64, error)
	DeleteByMeeting(ctx context.Context, meetingID string) error
}

type participantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo creates a ParticipantRepository.
func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

// CreateBatch inserts every link in one statement. The unique
// (meeting_id, professor_id) index rejects duplicates.
func (r *participantRepo) CreateBatch(ctx context.Context, participants []model.MeetingParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&participants).Error
}

func (r *participantRepo) GetByID(ctx context.Context, id string) (*model.MeetingParticipant, error) {
	var participant model.MeetingParticipant
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) ListByMeeting(ctx context.Context, meetingID string) ([]model.MeetingParticipant, error) {
	var participants []model.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("Professor").
		Where("meeting_id = ?", meetingID).
		Find(&participants).Error
	return participants, err
}

func (r *participantRepo) Update(ctx context.Context, participant *model.MeetingParticipant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}

// CountAttended counts the meetings in a period the professor is marked as
// having attended, regardless of meeting status.
func (r *participantRepo) CountAttended(ctx context.Context, professorID, period string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MeetingParticipant{}).
		Joins("JOIN meetings ON meetings.id = meeting_participants.meeting_id").
		Where("meeting_participants.professor_id = ?", professorID).
		Where("meeting_participants.attendance_status = ?", true).
		Where("meetings.academic_period = ?", period).
		Count(&count).Error
	return count, err
}

// DeleteByMeeting removes all links for a meeting; compensation path only.
func (r *participantRepo) DeleteByMeeting(ctx context.Context, meetingID string) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&model.MeetingParticipant{}).Error
}
