package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/config"
	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
)

// ── certificate module errors ──

var (
	ErrProfessorNotFound  = errors.New("professor not found")
	ErrCertificateRender  = errors.New("rendering certificate failed")
	ErrCertificatesFailed = errors.New("no certificate could be generated")
)

// CertificateService computes participation hours and renders declaration
// PDFs. The audit insert after a successful render is fire-and-forget.
type CertificateService interface {
	Generate(ctx context.Context, req *dto.GenerateCertificateRequest, callerID string) (*bytes.Buffer, string, error)
	GenerateBatch(ctx context.Context, req *dto.BatchCertificateRequest, callerID string) (*dto.BatchCertificateResponse, error)
	ListRecords(ctx context.Context, period string) ([]dto.CertificateRecordResponse, error)
}

type certificateService struct {
	repo   *repository.Repository
	cfg    *config.CertificateConfig
	logger *zap.Logger
}

// NewCertificateService creates a CertificateService.
func NewCertificateService(repo *repository.Repository, cfg *config.CertificateConfig, logger *zap.Logger) CertificateService {
	return &certificateService{repo: repo, cfg: cfg, logger: logger}
}

// ComputeHours is the participation workload rule: hours accrued over a
// period equal attended meetings times the hours-per-meeting rate.
func ComputeHours(meetingsAttended, hoursPerMeeting int) int {
	return meetingsAttended * hoursPerMeeting
}

// CertificateFilename derives the deterministic download name:
// declaracao_<name lowercased, spaces collapsed to underscores>_<period>.pdf
func CertificateFilename(professorName, period string) string {
	name := strings.ToLower(strings.Join(strings.Fields(professorName), "_"))
	return fmt.Sprintf("declaracao_%s_%s.pdf", name, period)
}

// ────────────────────── Generate ──────────────────────

func (s *certificateService) Generate(ctx context.Context, req *dto.GenerateCertificateRequest, callerID string) (*bytes.Buffer, string, error) {
	professor, err := s.repo.Professor.GetByID(ctx, req.ProfessorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProfessorNotFound
		}
		s.logger.Error("loading professor failed", zap.String("id", req.ProfessorID), zap.Error(err))
		return nil, "", err
	}

	attended, err := s.repo.Participant.CountAttended(ctx, professor.ID, req.Period)
	if err != nil {
		s.logger.Error("counting attendance failed", zap.String("professor_id", professor.ID), zap.Error(err))
		return nil, "", err
	}

	hours := ComputeHours(int(attended), s.hoursPerMeeting(ctx, callerID))

	buf, err := s.render(professor, req.Period, int(attended), hours)
	if err != nil {
		s.logger.Error("certificate render failed", zap.String("professor_id", professor.ID), zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrCertificateRender, err)
	}

	s.auditAsync(ctx, professor.ID, req.Period, hours, callerID)

	return buf, CertificateFilename(professor.FullName, req.Period), nil
}

// ────────────────────── GenerateBatch ──────────────────────

// GenerateBatch renders every selected professor independently. A failure for
// one professor never blocks the others; the aggregate count is reported.
func (s *certificateService) GenerateBatch(ctx context.Context, req *dto.BatchCertificateRequest, callerID string) (*dto.BatchCertificateResponse, error) {
	resp := &dto.BatchCertificateResponse{Requested: len(req.ProfessorIDs)}

	for _, professorID := range req.ProfessorIDs {
		_, _, err := s.Generate(ctx, &dto.GenerateCertificateRequest{
			ProfessorID: professorID,
			Period:      req.Period,
		}, callerID)
		if err != nil {
			s.logger.Warn("batch item failed",
				zap.String("professor_id", professorID),
				zap.String("period", req.Period),
				zap.Error(err),
			)
			resp.Failed = append(resp.Failed, professorID)
			continue
		}
		resp.Generated++
	}

	if resp.Generated == 0 {
		return resp, ErrCertificatesFailed
	}
	return resp, nil
}

// ────────────────────── ListRecords ──────────────────────

func (s *certificateService) ListRecords(ctx context.Context, period string) ([]dto.CertificateRecordResponse, error) {
	records, err := s.repo.Certificate.ListByPeriod(ctx, period)
	if err != nil {
		s.logger.Error("listing certificates failed", zap.String("period", period), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CertificateRecordResponse, 0, len(records))
	for i := range records {
		r := &records[i]
		item := dto.CertificateRecordResponse{
			ID:             r.ID,
			ProfessorID:    r.ProfessorID,
			AcademicPeriod: r.AcademicPeriod,
			TotalHours:     r.TotalHours,
			GeneratedBy:    r.GeneratedBy,
			GeneratedAt:    r.GeneratedAt.Format(time.RFC3339),
		}
		if r.Professor != nil {
			item.ProfessorName = r.Professor.FullName
		}
		result = append(result, item)
	}
	return result, nil
}

// ── internals ──

// hoursPerMeeting resolves the workload rate: the caller's stored certificate
// settings win, the configured default applies otherwise.
func (s *certificateService) hoursPerMeeting(ctx context.Context, callerID string) int {
	return resolveWorkloadRate(ctx, s.repo, callerID, s.cfg.HoursPerMeeting, s.logger)
}

// auditAsync records the generation event without blocking or failing the
// download. Runs detached from the request context so a finished request
// does not cancel it.
func (s *certificateService) auditAsync(ctx context.Context, professorID, period string, hours int, callerID string) {
	go func() {
		auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		record := &model.Certificate{
			ProfessorID:    professorID,
			AcademicPeriod: period,
			TotalHours:     hours,
			GeneratedBy:    callerID,
		}
		if err := s.repo.Certificate.Create(auditCtx, record); err != nil {
			s.logger.Warn("certificate audit insert failed",
				zap.String("professor_id", professorID),
				zap.String("period", period),
				zap.Error(err),
			)
		}
	}()
}

// Portuguese month names for the signature date line.
var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func formatLongDatePT(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), ptMonths[t.Month()-1], t.Year())
}

// render produces the fixed single-page A4 declaration.
func (s *certificateService) render(professor *model.Professor, period string, attended, hours int) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// institution header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(10, 14)
	pdf.CellFormat(190, 8, tr(s.cfg.InstitutionLine1), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(190, 8, tr(s.cfg.InstitutionLine2), "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.CellFormat(190, 8, tr("DECLARAÇÃO DE PARTICIPAÇÃO"), "", 1, "C", false, 0, "")

	pdf.SetLineWidth(0.5)
	pdf.Line(20, 50, 190, 50)

	// body
	body := fmt.Sprintf(
		"Declaro para os devidos fins que %s, SIAPE %s, docente do departamento de %s, "+
			"participou de %d reuniões do colegiado no período %s, totalizando %d horas de atividades.",
		professor.FullName, professor.SiapeCode, professor.Department, attended, period, hours,
	)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(20, 62)
	pdf.MultiCell(170, 7, tr(body), "", "J", false)

	// signature block
	pdf.SetXY(10, 126)
	pdf.CellFormat(190, 7, tr(s.cfg.City+", "+formatLongDatePT(time.Now())), "", 1, "C", false, 0, "")
	pdf.Line(70, 160, 140, 160)
	pdf.SetXY(10, 164)
	pdf.CellFormat(190, 7, tr(s.cfg.SignatureCaption), "", 1, "C", false, 0, "")

	// footer
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(10, 276)
	pdf.CellFormat(190, 5, tr(s.cfg.FooterText), "", 1, "C", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
