package models

import "encoding/json"

// Domain models matching the store schema in db/schema/*.sql. JSON names follow
// the column names, which is the shape the browser client consumes.

type Employee struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Username string `json:"username" db:"username"`
	Password string `json:"password" db:"password"`
	IsBoss   int    `json:"isBoss" db:"isBoss"`

	redacted bool
}

// Redacted returns a copy that marshals without the password key.
func (e Employee) Redacted() Employee {
	e.Password = ""
	e.redacted = true
	return e
}

func (e Employee) MarshalJSON() ([]byte, error) {
	type plain Employee
	if !e.redacted {
		return json.Marshal(plain(e))
	}
	return json.Marshal(struct {
		plain
		Password *string `json:"password,omitempty"`
	}{plain: plain(e)})
}

type WorkEntry struct {
	ID          int64   `json:"id" db:"id"`
	EmployeeID  int64   `json:"employee_id" db:"employee_id"`
	HoursWorked float64 `json:"hours_worked" db:"hours_worked"`
	Date        string  `json:"date" db:"date"`
	Description string  `json:"description" db:"description"`
}

// EntryUpdate is the full replacement applied by an entry update.
type EntryUpdate struct {
	HoursWorked float64
	Date        string
	Description string
}

// MonthlyTotal is one grouped row of the monthly aggregate: the employee columns
// (null when the entry references a missing employee) plus the summed hours.
type MonthlyTotal struct {
	ID         *int64  `json:"id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	IsBoss     *int    `json:"isBoss"`
	TotalHours float64 `json:"total_hours"`

	redacted bool
}

// Redacted returns a copy that marshals without the password key. Unredacted
// rows always carry the key, null for a missing employee.
func (m MonthlyTotal) Redacted() MonthlyTotal {
	m.Password = nil
	m.redacted = true
	return m
}

func (m MonthlyTotal) MarshalJSON() ([]byte, error) {
	type plain MonthlyTotal
	if !m.redacted {
		return json.Marshal(plain(m))
	}
	return json.Marshal(struct {
		plain
		Password *string `json:"password,omitempty"`
	}{plain: plain(m)})
}

type Summary struct {
	TotalEmployees          int64   `json:"totalEmployees"`
	TotalHoursWorked        float64 `json:"totalHoursWorked"`
	AverageHoursPerEmployee string  `json:"averageHoursPerEmployee"`
}
