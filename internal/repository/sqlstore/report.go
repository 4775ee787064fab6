package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/worklog/pkg/models"
)

// MonthlyTotals sums hours per employee for one calendar month, optionally
// restricted to one employee. Employees are LEFT JOINed, so an entry whose
// employee row is gone still yields a group with null employee columns.
func (r *Repo) MonthlyTotals(ctx context.Context, month, employeeID *int64) ([]models.MonthlyTotal, error) {
	d := r.conn.Dialect()
	q := `SELECT employees.id, employees.name, employees.email, employees.username, employees.password, employees.isBoss,
	SUM(work_entries.hours_worked) AS total_hours
FROM work_entries
LEFT JOIN employees ON work_entries.employee_id = employees.id
WHERE ` + d.MonthOf("work_entries.date") + ` = ?`
	args := []any{nullable(month)}

	if employeeID != nil {
		q += ` AND work_entries.employee_id = ?`
		args = append(args, *employeeID)
	}

	// the employee columns are functionally dependent on employee_id; listing
	// them keeps the statement valid on stores with strict GROUP BY rules
	q += ` GROUP BY work_entries.employee_id, employees.id, employees.name, employees.email, employees.username, employees.password, employees.isBoss`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	out := []models.MonthlyTotal{}
	for rows.Next() {
		var (
			id                              sql.NullInt64
			name, email, username, password sql.NullString
			isBoss                          sql.NullInt64
			total                           sql.NullFloat64
		)
		if err := rows.Scan(&id, &name, &email, &username, &password, &isBoss, &total); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}

		m := models.MonthlyTotal{TotalHours: total.Float64}
		if id.Valid {
			m.ID = &id.Int64
		}
		m.Name = nullString(name)
		m.Email = nullString(email)
		m.Username = nullString(username)
		m.Password = nullString(password)
		if isBoss.Valid {
			v := int(isBoss.Int64)
			m.IsBoss = &v
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}

	return out, nil
}

func (r *Repo) CountEmployees(ctx context.Context) (int64, error) {
	var n sql.NullInt64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n.Int64, nil
}

// TotalHours is the sum over every entry; 0 when there are none.
func (r *Repo) TotalHours(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	if err := r.conn.QueryRow(ctx, `SELECT SUM(hours_worked) FROM work_entries`).Scan(&total); err != nil {
		return 0, fmt.Errorf("total hours: %w", err)
	}
	return total.Float64, nil
}

// AverageHoursPerEmployee averages the per-employee totals, not the raw
// entries: 10h+10h for one employee and 40h for another averages to 30h.
func (r *Repo) AverageHoursPerEmployee(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	q := `SELECT AVG(total_hours) FROM (SELECT SUM(hours_worked) AS total_hours FROM work_entries GROUP BY employee_id) AS subquery`
	if err := r.conn.QueryRow(ctx, q).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average hours: %w", err)
	}
	return avg.Float64, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
