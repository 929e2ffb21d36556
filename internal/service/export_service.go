package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── export module errors ──

var (
	ErrExportNoProfessors = errors.New("no professors to export")
	ErrExportGenerateFail = errors.New("generating spreadsheet failed")
)

// ExportService produces the participation report spreadsheet. The buffer is
// returned to the handler layer, which sets the download headers.
type ExportService interface {
	// ExportParticipation exports attended-meeting counts and accrued hours
	// for every professor in a period as an .xlsx workbook.
	ExportParticipation(ctx context.Context, period, callerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	professors ProfessorService
	logger     *zap.Logger
}

// NewExportService creates an ExportService on top of the professor service's
// participation totals.
func NewExportService(professors ProfessorService, logger *zap.Logger) ExportService {
	return &exportService{professors: professors, logger: logger}
}

func (s *exportService) ExportParticipation(ctx context.Context, period, callerID string) (*bytes.Buffer, string, error) {
	rows, err := s.professors.ListParticipation(ctx, period, callerID)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoProfessors
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Participação"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 36)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", "E", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title row
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Relatório de Participação - %s", period))
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// header row
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Docente")
	f.SetCellValue(sheetName, cell("B", row), "SIAPE")
	f.SetCellValue(sheetName, cell("C", row), "Departamento")
	f.SetCellValue(sheetName, cell("D", row), "Reuniões")
	f.SetCellValue(sheetName, cell("E", row), "Horas")

	// data rows
	row = 3
	for _, r := range rows {
		f.SetCellValue(sheetName, cell("A", row), r.FullName)
		f.SetCellValue(sheetName, cell("B", row), r.SiapeCode)
		f.SetCellValue(sheetName, cell("C", row), r.Department)
		f.SetCellValue(sheetName, cell("D", row), r.MeetingsAttended)
		f.SetCellValue(sheetName, cell("E", row), r.HoursAttended)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing spreadsheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("participacao_%s.xlsx", period)
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
