package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// CertificateRepository is the certificates audit table store.
type CertificateRepository interface {
	Create(ctx context.Context, certificate *model.Certificate) error
	ListByPeriod(ctx context.Context, period string) ([]model.Certificate, error)
}

type certificateRepo struct {
	db *gorm.DB
}

// NewCertificateRepo creates a CertificateRepository.
func NewCertificateRepo(db *gorm.DB) CertificateRepository {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) Create(ctx context.Context, certificate *model.Certificate) error {
	return r.db.WithContext(ctx).Create(certificate).Error
}

func (r *certificateRepo) ListByPeriod(ctx context.Context, period string) ([]model.Certificate, error) {
	var certificates []model.Certificate
	err := r.db.WithContext(ctx).
		Preload("Professor").
		Where("academic_period = ?", period).
		Order("generated_at DESC").
		Find(&certificates).Error
	return certificates, err
}
