package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// ProfessorRepository is the professors table store.
type ProfessorRepository interface {
	Create(ctx context.Context, professor *model.Professor) error
	GetByID(ctx context.Context, id string) (*model.Professor, error)
	List(ctx context.Context) ([]model.Professor, error)
	Update(ctx context.Context, professor *model.Professor) error
}

type professorRepo struct {
	db *gorm.DB
}

// NewProfessorRepo creates a ProfessorRepository.
func NewProfessorRepo(db *gorm.DB) ProfessorRepository {
	return &professorRepo{db: db}
}

func (r *professorRepo) Create(ctx context.Context, professor *model.Professor) error {
	return r.db.WithContext(ctx).Create(professor).Error
}

func (r *professorRepo) GetByID(ctx context.Context, id string) (*model.Professor, error) {
	var professor model.Professor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&professor).Error
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepo) List(ctx context.Context) ([]model.Professor, error) {
	var professors []model.Professor
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&professors).Error
	return professors, err
}

func (r *professorRepo) Update(ctx context.Context, professor *model.Professor) error {
	return r.db.WithContext(ctx).Save(professor).Error
}
