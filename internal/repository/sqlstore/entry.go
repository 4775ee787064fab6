package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garnizeh/worklog/pkg/models"
)

func (r *Repo) ListByEmployee(ctx context.Context, employeeID *int64) ([]models.WorkEntry, error) {
	q := `SELECT id, employee_id, hours_worked, ` + r.conn.Dialect().DateOf("date") + `, COALESCE(description, '') FROM work_entries WHERE employee_id = ?`
	rows, err := r.conn.QueryRows(ctx, q, nullable(employeeID))
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	out := []models.WorkEntry{}
	for rows.Next() {
		var e models.WorkEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.HoursWorked, &e.Date, &e.Description); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return out, nil
}

// CreateEntry inserts a work entry without checking that the employee exists.
func (r *Repo) CreateEntry(ctx context.Context, e *models.WorkEntry) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("entry is nil")
	}

	id, err := r.conn.InsertID(ctx, `INSERT INTO work_entries (employee_id, hours_worked, date, description) VALUES (?, ?, ?, ?)`,
		e.EmployeeID, e.HoursWorked, e.Date, e.Description)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	return id, nil
}

func (r *Repo) UpdateEntry(ctx context.Context, id *int64, u models.EntryUpdate) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE work_entries SET hours_worked = ?, date = ?, description = ? WHERE id = ?`,
		u.HoursWorked, u.Date, u.Description, nullable(id))
	if err != nil {
		return 0, fmt.Errorf("update entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		// the update itself went through
		r.logger.Warn("rows affected unavailable", slog.Any("err", err))
		return 0, nil
	}

	return n, nil
}
