package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/worklog/internal/config"
	"github.com/garnizeh/worklog/internal/db"
	"github.com/garnizeh/worklog/internal/repository/sqlstore"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(CORSMiddleware)
	r.Use(QueryTimeoutMiddleware(cfg.QueryTimeout))

	// Repository
	repo := sqlstore.New(conn, logger)

	// Create handlers
	systemHandler := NewSystemHandler(conn)
	authHandler := NewAuthHandler(repo, cfg.RedactPasswordHash)
	employeesHandler := NewEmployeesHandler(repo, cfg.RedactPasswordHash)
	entriesHandler := NewEntriesHandler(repo)
	reportsHandler := NewReportsHandler(repo, cfg.RedactPasswordHash)

	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/employees", employeesHandler.ListEmployees).Methods(http.MethodGet)
	apiRouter.HandleFunc("/employees", employeesHandler.AddEmployee).Methods(http.MethodPost)
	apiRouter.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	apiRouter.HandleFunc("/summary", reportsHandler.Summary).Methods(http.MethodGet)

	apiRouter.HandleFunc("/entries", entriesHandler.ListEntries).Methods(http.MethodGet)
	apiRouter.HandleFunc("/entries", entriesHandler.SubmitEntry).Methods(http.MethodPost)
	apiRouter.HandleFunc("/entries/month", reportsHandler.MonthlyTotals).Methods(http.MethodGet)
	apiRouter.HandleFunc("/entries/month/export", reportsHandler.ExportMonthly).Methods(http.MethodGet)
	apiRouter.HandleFunc("/entries/{id}", entriesHandler.UpdateEntry).Methods(http.MethodPut)

	// preflight requests only need to reach the CORS middleware
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
