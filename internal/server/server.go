// Package server exposes the lead operations over a small REST API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/service"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/storage"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/views"
)

// Server holds the collaborators behind the HTTP handlers.
type Server struct {
	storage    service.Storage
	views      *views.Manager
	dispatcher service.Dispatcher
	generator  service.Generator
	now        func() time.Time
}

// New builds a Server. now is injectable for tests; nil means time.Now.
func New(
	storage service.Storage,
	viewManager *views.Manager,
	dispatcher service.Dispatcher,
	generator service.Generator,
	now func() time.Time,
) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{
		storage:    storage,
		views:      viewManager,
		dispatcher: dispatcher,
		generator:  generator,
		now:        now,
	}
}

// Router assembles the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", s.handleListLeads)
		r.Post("/", s.handleCreateLeads)
		r.Delete("/", s.handleDeleteLeads)
		r.Post("/tags", s.handleTagLeads)
		r.Post("/email", s.handleEmailLeads)
		r.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
		r.Get("/{id}", s.handleGetLead)
		r.Get("/{id}/summary", s.handleSummary)
		r.Post("/{id}/draft", s.handleDraft)
	})

	r.Route("/views", func(r chi.Router) {
		r.Get("/", s.handleListViews)
		r.Post("/", s.handleSaveView)
		r.Delete("/{id}", s.handleDeleteView)
	})

	r.Get("/tasks", s.handleListTasks)
	r.Post("/tasks", s.handleCreateTask)
	r.Post("/tasks/{id}/complete", s.handleCompleteTask)

	r.Get("/templates", s.handleListTemplates)
	r.Get("/stats", s.handleStats)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrUnsupportedFormat),
		errors.Is(err, common.ErrParse),
		errors.Is(err, common.ErrNoValidLeads),
		errors.Is(err, common.ErrEmptyExport),
		errors.Is(err, storage.ErrInvalidLead),
		errors.Is(err, storage.ErrInvalidTask),
		errors.Is(err, storage.ErrEmptySlice):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": common.UserMessage(err)})
}
