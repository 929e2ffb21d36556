package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
)

// ProfessorService manages the professor directory and the participation
// totals consumed by the certificates page and the report export.
type ProfessorService interface {
	Create(ctx context.Context, req *dto.CreateProfessorRequest) (*dto.ProfessorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProfessorResponse, error)
	List(ctx context.Context) ([]dto.ProfessorResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProfessorRequest) (*dto.ProfessorResponse, error)
	// ListParticipation returns every professor with the attended-meeting
	// count and accrued hours for a period.
	ListParticipation(ctx context.Context, period, callerID string) ([]dto.ProfessorParticipationResponse, error)
}

type professorService struct {
	repo            *repository.Repository
	hoursPerMeeting int
	logger          *zap.Logger
}

// NewProfessorService creates a ProfessorService. hoursPerMeeting is the
// configured default rate; stored certificate settings override it per caller.
func NewProfessorService(repo *repository.Repository, hoursPerMeeting int, logger *zap.Logger) ProfessorService {
	return &professorService{repo: repo, hoursPerMeeting: hoursPerMeeting, logger: logger}
}

func (s *professorService) Create(ctx context.Context, req *dto.CreateProfessorRequest) (*dto.ProfessorResponse, error) {
	professor := &model.Professor{
		FullName:         req.FullName,
		InstitutionEmail: req.InstitutionEmail,
		SiapeCode:        req.SiapeCode,
		Department:       req.Department,
	}
	if err := s.repo.Professor.Create(ctx, professor); err != nil {
		s.logger.Error("professor insert failed", zap.Error(err))
		return nil, err
	}
	return toProfessorResponse(professor), nil
}

func (s *professorService) GetByID(ctx context.Context, id string) (*dto.ProfessorResponse, error) {
	professor, err := s.repo.Professor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		s.logger.Error("loading professor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toProfessorResponse(professor), nil
}

func (s *professorService) List(ctx context.Context) ([]dto.ProfessorResponse, error) {
	professors, err := s.repo.Professor.List(ctx)
	if err != nil {
		s.logger.Error("listing professors failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProfessorResponse, 0, len(professors))
	for i := range professors {
		result = append(result, *toProfessorResponse(&professors[i]))
	}
	return result, nil
}

func (s *professorService) Update(ctx context.Context, id string, req *dto.UpdateProfessorRequest) (*dto.ProfessorResponse, error) {
	professor, err := s.repo.Professor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		s.logger.Error("loading professor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.FullName != nil {
		professor.FullName = *req.FullName
	}
	if req.SiapeCode != nil {
		professor.SiapeCode = *req.SiapeCode
	}
	if req.Department != nil {
		professor.Department = *req.Department
	}

	if err := s.repo.Professor.Update(ctx, professor); err != nil {
		s.logger.Error("professor update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toProfessorResponse(professor), nil
}

func (s *professorService) ListParticipation(ctx context.Context, period, callerID string) ([]dto.ProfessorParticipationResponse, error) {
	professors, err := s.repo.Professor.List(ctx)
	if err != nil {
		s.logger.Error("listing professors failed", zap.Error(err))
		return nil, err
	}

	rate := resolveWorkloadRate(ctx, s.repo, callerID, s.hoursPerMeeting, s.logger)

	result := make([]dto.ProfessorParticipationResponse, 0, len(professors))
	for i := range professors {
		p := &professors[i]
		attended, err := s.repo.Participant.CountAttended(ctx, p.ID, period)
		if err != nil {
			s.logger.Error("counting attendance failed", zap.String("professor_id", p.ID), zap.Error(err))
			return nil, err
		}
		result = append(result, dto.ProfessorParticipationResponse{
			ProfessorResponse: *toProfessorResponse(p),
			MeetingsAttended:  int(attended),
			HoursAttended:     ComputeHours(int(attended), rate),
		})
	}
	return result, nil
}

func toProfessorResponse(professor *model.Professor) *dto.ProfessorResponse {
	return &dto.ProfessorResponse{
		ID:               professor.ID,
		FullName:         professor.FullName,
		InstitutionEmail: professor.InstitutionEmail,
		SiapeCode:        professor.SiapeCode,
		Department:       professor.Department,
	}
}

// resolveWorkloadRate looks up the hours-per-meeting rate: the caller's
// stored certificate settings win, the fallback applies otherwise.
func resolveWorkloadRate(ctx context.Context, repo *repository.Repository, callerID string, fallback int, logger *zap.Logger) int {
	if callerID == "" {
		return fallback
	}
	setting, err := repo.Setting.Get(ctx, callerID, model.SettingsTypeCertificate)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("loading certificate settings failed", zap.String("user_id", callerID), zap.Error(err))
		}
		return fallback
	}
	if v, ok := setting.SettingsData["workload_per_meeting"].(float64); ok && v > 0 {
		return int(v)
	}
	return fallback
}
