package api

import (
	"net/http"

	"github.com/garnizeh/worklog/pkg/repository"
)

type SystemHandler struct {
	pinger repository.Pinger
}

func NewSystemHandler(p repository.Pinger) *SystemHandler {
	return &SystemHandler{pinger: p}
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthHandler reports 503 when the store cannot be reached.
func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			logStoreError(r, "health", err)
			writeJSON(w, healthResponse{Status: "unavailable", Service: "worklog"}, http.StatusServiceUnavailable)
			return
		}
	}

	writeJSON(w, healthResponse{Status: "ok", Service: "worklog"}, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"version": version, "buildTime": buildTime}, http.StatusOK)
	}
}
