package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/worklog/pkg/models"
	"github.com/garnizeh/worklog/pkg/repository"
)

type EntriesHandler struct {
	entryRepo repository.EntryRepo
}

func NewEntriesHandler(er repository.EntryRepo) *EntriesHandler {
	return &EntriesHandler{entryRepo: er}
}

// entryRequest is the body the browser form posts; numbers may arrive as strings.
type entryRequest struct {
	EmployeeID  models.Number `json:"employeeId"`
	HoursWorked models.Number `json:"hoursWorked"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
}

func (h *EntriesHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	employeeID := parseID(r.URL.Query().Get("employeeId"))

	entries, err := h.entryRepo.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		logStoreError(r, "list entries", err)
		writeError(w, "Failed to fetch entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.WorkEntry{}
	}

	writeJSON(w, entries, http.StatusOK)
}

func (h *EntriesHandler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		rejectBody(w, r, "submit entry", err, "Failed to submit data")
		return
	}

	e := &models.WorkEntry{
		EmployeeID:  int64(req.EmployeeID),
		HoursWorked: float64(req.HoursWorked),
		Date:        req.Date,
		Description: req.Description,
	}
	id, err := h.entryRepo.CreateEntry(r.Context(), e)
	if err != nil {
		logStoreError(r, "submit entry", err)
		writeError(w, "Failed to submit data", http.StatusInternalServerError)
		return
	}

	writeJSON(w, messageResponse{Message: "Data submitted successfully", ID: &id}, http.StatusCreated)
}

// UpdateEntry overwrites an entry. Updating an id that does not exist is
// still reported as a success.
func (h *EntriesHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		rejectBody(w, r, "update entry", err, "Failed to update data")
		return
	}

	id := parseID(mux.Vars(r)["id"])
	u := models.EntryUpdate{
		HoursWorked: float64(req.HoursWorked),
		Date:        req.Date,
		Description: req.Description,
	}
	if _, err := h.entryRepo.UpdateEntry(r.Context(), id, u); err != nil {
		logStoreError(r, "update entry", err)
		writeError(w, "Failed to update data", http.StatusInternalServerError)
		return
	}

	writeMessage(w, "Data updated successfully", http.StatusOK)
}
