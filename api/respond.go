package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/garnizeh/worklog/pkg/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, errorResponse{Error: msg}, status)
}

func writeMessage(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, messageResponse{Message: msg}, status)
}

// decodeBody reads a JSON request body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// rejectBody answers a request whose body did not decode. A numeric field
// holding something that is not a number fails like the write it was meant
// for; any other decode error is a malformed request.
func rejectBody(w http.ResponseWriter, r *http.Request, op string, err error, failMsg string) {
	if errors.Is(err, models.ErrInvalidScalar) {
		logStoreError(r, op, err)
		writeError(w, failMsg, http.StatusInternalServerError)
		return
	}
	writeError(w, "Invalid request", http.StatusBadRequest)
}

// parseID reads an identifier from request input. Anything that is not a
// base-10 integer yields nil, which the store binds as NULL.
func parseID(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// logStoreError records a failed store call with the request id.
func logStoreError(r *http.Request, op string, err error) {
	logger.Error("store error",
		slog.String("op", op),
		slog.String("request_id", RequestIDFromContext(r.Context())),
		slog.Any("err", err),
	)
}
