package repository

import (
	"context"

	"github.com/garnizeh/worklog/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Identifier parameters that come straight from request input are pointers:
// nil is bound as SQL NULL and matches no row.

type EmployeeRepo interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetByUsername(ctx context.Context, username string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, e *models.Employee) (int64, error)
}

type EntryRepo interface {
	ListByEmployee(ctx context.Context, employeeID *int64) ([]models.WorkEntry, error)
	CreateEntry(ctx context.Context, e *models.WorkEntry) (int64, error)
	// UpdateEntry replaces hours, date and description and reports the number
	// of rows touched; zero is not an error.
	UpdateEntry(ctx context.Context, id *int64, u models.EntryUpdate) (int64, error)
}

type ReportRepo interface {
	MonthlyTotals(ctx context.Context, month, employeeID *int64) ([]models.MonthlyTotal, error)
	CountEmployees(ctx context.Context) (int64, error)
	TotalHours(ctx context.Context) (float64, error)
	AverageHoursPerEmployee(ctx context.Context) (float64, error)
}

// Pinger reports store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
