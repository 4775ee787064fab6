package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/garnizeh/worklog/pkg/models"
)

const (
	// ContentType is the media type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// MonthlySheet names the single sheet of the monthly workbook.
	MonthlySheet = "Monthly hours"
)

var monthlyHeader = []any{"ID", "Name", "Email", "Username", "Total hours"}

// MonthlyFilename is the download name for a month's workbook.
func MonthlyFilename(month int64) string {
	return fmt.Sprintf("hours-month-%d.xlsx", month)
}

// MonthlyWorkbook renders monthly totals as an XLSX workbook. Password hashes
// are never written.
func MonthlyWorkbook(rows []models.MonthlyTotal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MonthlySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(MonthlySheet, "A1", &monthlyHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(MonthlySheet, "A1", "E1", bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{deref(r.ID), deref(r.Name), deref(r.Email), deref(r.Username), r.TotalHours}
		if err := f.SetSheetRow(MonthlySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(MonthlySheet, "B", "D", 28); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// deref renders a nullable column as an empty cell when null.
func deref[T any](p *T) any {
	if p == nil {
		return ""
	}
	return *p
}
