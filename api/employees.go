package api

import (
	"log/slog"
	"net/http"

	"github.com/garnizeh/worklog/internal/auth"
	"github.com/garnizeh/worklog/pkg/models"
	"github.com/garnizeh/worklog/pkg/repository"
)

type EmployeesHandler struct {
	employeeRepo repository.EmployeeRepo
	redact       bool
}

// NewEmployeesHandler creates the employee handlers. With redact set the
// password hash is left out of listed rows.
func NewEmployeesHandler(er repository.EmployeeRepo, redact bool) *EmployeesHandler {
	return &EmployeesHandler{employeeRepo: er, redact: redact}
}

type addEmployeeRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	IsBoss   models.Flag `json:"isBoss"`
}

func (h *EmployeesHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepo.ListEmployees(r.Context())
	if err != nil {
		logStoreError(r, "list employees", err)
		writeError(w, "Failed to fetch employees", http.StatusInternalServerError)
		return
	}

	if employees == nil {
		employees = []models.Employee{}
	}
	if h.redact {
		for i := range employees {
			employees[i] = employees[i].Redacted()
		}
	}

	writeJSON(w, employees, http.StatusOK)
}

func (h *EmployeesHandler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var req addEmployeeRequest
	if err := decodeBody(r, &req); err != nil {
		rejectBody(w, r, "add employee", err, "Failed to add employee")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password",
			slog.Any("err", err),
			slog.String("request_id", RequestIDFromContext(r.Context())),
		)
		writeError(w, "Failed to add employee", http.StatusInternalServerError)
		return
	}

	e := &models.Employee{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: hash,
		IsBoss:   int(req.IsBoss),
	}
	id, err := h.employeeRepo.CreateEmployee(r.Context(), e)
	if err != nil {
		logStoreError(r, "add employee", err)
		writeError(w, "Failed to add employee", http.StatusInternalServerError)
		return
	}

	writeJSON(w, messageResponse{Message: "Employee added successfully", ID: &id}, http.StatusCreated)
}
