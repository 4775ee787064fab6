package sqlstore

import (
	"io"
	"log/slog"

	"github.com/garnizeh/worklog/internal/db"
	"github.com/garnizeh/worklog/pkg/repository"
)

// Repo implements the repository interfaces on top of the pooled DB wrapper.
// Every method is a single round trip (or, for the summary reads, one per call)
// and acquires a pooled connection only for the duration of that statement.
type Repo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure Repo implements the public interfaces.
var _ repository.EmployeeRepo = (*Repo)(nil)
var _ repository.EntryRepo = (*Repo)(nil)
var _ repository.ReportRepo = (*Repo)(nil)

func New(conn *db.DB, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Repo{conn: conn, logger: logger}
}

// nullable turns an optional id into a bind argument; nil binds SQL NULL.
func nullable(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
