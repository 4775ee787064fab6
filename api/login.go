package api

import (
	"net/http"

	"github.com/garnizeh/worklog/internal/auth"
	"github.com/garnizeh/worklog/pkg/models"
	"github.com/garnizeh/worklog/pkg/repository"
)

type AuthHandler struct {
	employeeRepo repository.EmployeeRepo
	redact       bool
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(er repository.EmployeeRepo, redact bool) *AuthHandler {
	return &AuthHandler{employeeRepo: er, redact: redact}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool             `json:"success"`
	User    *models.Employee `json:"user,omitempty"`
	Message string           `json:"message,omitempty"`
}

// Login checks a username/password pair. Nothing is issued on success; the
// caller gets the employee row back.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	employee, err := h.employeeRepo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		logStoreError(r, "login", err)
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	if employee == nil || !auth.VerifyPassword(req.Password, employee.Password) {
		writeJSON(w, loginResponse{Success: false, Message: "Invalid credentials"}, http.StatusUnauthorized)
		return
	}

	if h.redact {
		*employee = employee.Redacted()
	}

	writeJSON(w, loginResponse{Success: true, User: employee}, http.StatusOK)
}
