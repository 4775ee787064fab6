package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/garnizeh/worklog/internal/report"
	"github.com/garnizeh/worklog/pkg/models"
)

func strPtr(s string) *string { return &s }

func TestMonthlyWorkbook(t *testing.T) {
	id := int64(1)
	rows := []models.MonthlyTotal{
		{ID: &id, Name: strPtr("Bob"), Email: strPtr("bob@example.com"), Username: strPtr("bob"), Password: strPtr("$2a$10$secret"), TotalHours: 40.5},
		{TotalHours: 4},
	}

	b, err := report.MonthlyWorkbook(rows)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(report.MonthlySheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"ID", "Name", "Email", "Username", "Total hours"}, got[0])
	assert.Equal(t, []string{"1", "Bob", "bob@example.com", "bob", "40.5"}, got[1])
	assert.Equal(t, "4", got[2][len(got[2])-1])

	for _, row := range got {
		for _, cell := range row {
			assert.NotContains(t, cell, "$2a$10$", "password hashes must not be exported")
		}
	}
}

func TestMonthlyWorkbook_Empty(t *testing.T) {
	b, err := report.MonthlyWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(report.MonthlySheet)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMonthlyFilename(t *testing.T) {
	assert.Equal(t, "hours-month-11.xlsx", report.MonthlyFilename(11))
}
