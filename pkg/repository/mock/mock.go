package mock

import (
	"context"
	"sync"

	"github.com/garnizeh/worklog/pkg/models"
	"github.com/garnizeh/worklog/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	EmpRepo    *mockEmployeeRepo
	EntryRepo  *mockEntryRepo
	ReportRepo *mockReportRepo
	Pinger     *mockPinger
}

var _ repository.EmployeeRepo = (*mockEmployeeRepo)(nil)
var _ repository.EntryRepo = (*mockEntryRepo)(nil)
var _ repository.ReportRepo = (*mockReportRepo)(nil)
var _ repository.Pinger = (*mockPinger)(nil)

func NewMocks() *Mocks {
	return &Mocks{
		EmpRepo:    &mockEmployeeRepo{},
		EntryRepo:  &mockEntryRepo{},
		ReportRepo: &mockReportRepo{},
		Pinger:     &mockPinger{},
	}
}

type mockEmployeeRepo struct {
	mu        sync.Mutex
	Stored    []models.Employee
	ListErr   error
	GetErr    error
	CreateErr error
}

func (m *mockEmployeeRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Employee, len(m.Stored))
	copy(out, m.Stored)
	return out, nil
}

func (m *mockEmployeeRepo) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, e := range m.Stored {
		if e.Username == username {
			return &e, nil
		}
	}
	return nil, nil
}

func (m *mockEmployeeRepo) CreateEmployee(ctx context.Context, e *models.Employee) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	stored := *e
	stored.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

type mockEntryRepo struct {
	mu        sync.Mutex
	Stored    []models.WorkEntry
	ListErr   error
	CreateErr error
	UpdateErr error

	// LastUpdateID records the id argument of the most recent UpdateEntry call.
	LastUpdateID *int64
}

func (m *mockEntryRepo) ListByEmployee(ctx context.Context, employeeID *int64) ([]models.WorkEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := []models.WorkEntry{}
	if employeeID == nil {
		return out, nil
	}
	for _, e := range m.Stored {
		if e.EmployeeID == *employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEntryRepo) CreateEntry(ctx context.Context, e *models.WorkEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	stored := *e
	stored.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *mockEntryRepo) UpdateEntry(ctx context.Context, id *int64, u models.EntryUpdate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUpdateID = id
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}
	if id == nil {
		return 0, nil
	}
	for i := range m.Stored {
		if m.Stored[i].ID == *id {
			m.Stored[i].HoursWorked = u.HoursWorked
			m.Stored[i].Date = u.Date
			m.Stored[i].Description = u.Description
			return 1, nil
		}
	}
	return 0, nil
}

// mockReportRepo returns canned aggregate values.
type mockReportRepo struct {
	Monthly    []models.MonthlyTotal
	Employees  int64
	Hours      float64
	Average    float64
	MonthlyErr error
	CountErr   error
	HoursErr   error
	AverageErr error

	// LastMonth and LastEmployeeID record the arguments of the most recent
	// MonthlyTotals call.
	LastMonth      *int64
	LastEmployeeID *int64
}

func (m *mockReportRepo) MonthlyTotals(ctx context.Context, month, employeeID *int64) ([]models.MonthlyTotal, error) {
	m.LastMonth, m.LastEmployeeID = month, employeeID
	if m.MonthlyErr != nil {
		return nil, m.MonthlyErr
	}
	if month == nil {
		return []models.MonthlyTotal{}, nil
	}
	out := make([]models.MonthlyTotal, len(m.Monthly))
	copy(out, m.Monthly)
	return out, nil
}

func (m *mockReportRepo) CountEmployees(ctx context.Context) (int64, error) {
	return m.Employees, m.CountErr
}

func (m *mockReportRepo) TotalHours(ctx context.Context) (float64, error) {
	return m.Hours, m.HoursErr
}

func (m *mockReportRepo) AverageHoursPerEmployee(ctx context.Context) (float64, error) {
	return m.Average, m.AverageErr
}

type mockPinger struct {
	Err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.Err }
