package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// AttachmentRepository is the meeting_attachments table store.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *model.MeetingAttachment) error
	GetByID(ctx context.Context, id string) (*model.MeetingAttachment, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]model.MeetingAttachment, error)
	DeleteByMeeting(ctx context.Context, meetingID string) error
}

type attachmentRepo struct {
	db *gorm.DB
}

// NewAttachmentRepo creates an AttachmentRepository.
func NewAttachmentRepo(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, attachment *model.MeetingAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepo) GetByID(ctx context.Context, id string) (*model.MeetingAttachment, error) {
	var attachment model.MeetingAttachment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepo) ListByMeeting(ctx context.Context, meetingID string) ([]model.MeetingAttachment, error) {
	var attachments []model.MeetingAttachment
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("uploaded_at ASC").
		Find(&attachments).Error
	return attachments, err
}

// DeleteByMeeting removes attachment metadata; compensation path only.
func (r *attachmentRepo) DeleteByMeeting(ctx context.Context, meetingID string) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&model.MeetingAttachment{}).Error
}
