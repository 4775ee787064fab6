package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/worklog/pkg/models"
)

const employeeColumns = `id, name, email, username, password, isBoss`

func (r *Repo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+employeeColumns+` FROM employees`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Username, &e.Password, &e.IsBoss); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return out, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username = ?`, username)
	var e models.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Username, &e.Password, &e.IsBoss); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("get employee by username: %w", err)
	}

	return &e, nil
}

// CreateEmployee inserts the row as given; e.Password must already be hashed.
func (r *Repo) CreateEmployee(ctx context.Context, e *models.Employee) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("employee is nil")
	}

	id, err := r.conn.InsertID(ctx, `INSERT INTO employees (name, email, username, password, isBoss) VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Email, e.Username, e.Password, e.IsBoss)
	if err != nil {
		return 0, fmt.Errorf("insert employee: %w", err)
	}

	return id, nil
}
