package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/garnizeh/worklog/internal/report"
	"github.com/garnizeh/worklog/pkg/models"
	"github.com/garnizeh/worklog/pkg/repository"
)

const msgNoEntries = "No entries found for the given criteria"

type ReportsHandler struct {
	reportRepo repository.ReportRepo
	redact     bool
}

func NewReportsHandler(rr repository.ReportRepo, redact bool) *ReportsHandler {
	return &ReportsHandler{reportRepo: rr, redact: redact}
}

// monthly runs the monthly aggregate for the request's query string. It writes
// the error response itself and returns ok=false when there is nothing to render.
func (h *ReportsHandler) monthly(w http.ResponseWriter, r *http.Request) (rows []models.MonthlyTotal, month *int64, ok bool) {
	q := r.URL.Query()
	month = parseID(q.Get("month"))

	var employeeID *int64
	if s := q.Get("employeeId"); s != "" {
		employeeID = parseID(s)
		if employeeID == nil {
			// a filter that is not a number matches nothing
			writeMessage(w, msgNoEntries, http.StatusNotFound)
			return nil, month, false
		}
	}

	rows, err := h.reportRepo.MonthlyTotals(r.Context(), month, employeeID)
	if err != nil {
		logStoreError(r, "monthly totals", err)
		writeError(w, "Failed to fetch entries", http.StatusInternalServerError)
		return nil, month, false
	}
	if len(rows) == 0 {
		writeMessage(w, msgNoEntries, http.StatusNotFound)
		return nil, month, false
	}

	return rows, month, true
}

func (h *ReportsHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	rows, _, ok := h.monthly(w, r)
	if !ok {
		return
	}

	if h.redact {
		for i := range rows {
			rows[i] = rows[i].Redacted()
		}
	}

	writeJSON(w, rows, http.StatusOK)
}

// ExportMonthly serves the monthly aggregate as an XLSX download.
func (h *ReportsHandler) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	rows, month, ok := h.monthly(w, r)
	if !ok {
		return
	}

	data, err := report.MonthlyWorkbook(rows)
	if err != nil {
		logger.Error("failed to build workbook",
			slog.Any("err", err),
			slog.String("request_id", RequestIDFromContext(r.Context())),
		)
		writeError(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	var m int64
	if month != nil {
		m = *month
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.MonthlyFilename(m)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error("failed to write workbook", slog.Any("err", err))
	}
}

func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employees, err := h.reportRepo.CountEmployees(ctx)
	if err != nil {
		logStoreError(r, "count employees", err)
		writeError(w, "Failed to fetch total employees", http.StatusInternalServerError)
		return
	}

	hours, err := h.reportRepo.TotalHours(ctx)
	if err != nil {
		logStoreError(r, "total hours", err)
		writeError(w, "Failed to fetch total hours worked", http.StatusInternalServerError)
		return
	}

	avg, err := h.reportRepo.AverageHoursPerEmployee(ctx)
	if err != nil {
		logStoreError(r, "average hours", err)
		writeError(w, "Failed to fetch average hours", http.StatusInternalServerError)
		return
	}

	writeJSON(w, models.Summary{
		TotalEmployees:          employees,
		TotalHoursWorked:        hours,
		AverageHoursPerEmployee: fmt.Sprintf("%.2f", avg),
	}, http.StatusOK)
}
