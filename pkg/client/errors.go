package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEntries is returned by MonthlyTotals and ExportMonthly when the
	// server has no rows for the requested month.
	ErrNoEntries = errors.New("no entries found for the given criteria")
	// ErrInvalidCredentials is returned by Login on a rejected username/password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// APIError is a non-2xx response. Message is the body's "error" or "message"
// field, or the status text when the body carries neither.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("worklog api: %d %s", e.StatusCode, e.Message)
}
