// Package server exposes the lifecycle manager over HTTP/JSON. It owns the
// transport concerns only; permission checks live in the manager.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clubworks/clubd/internal/auth"
	"github.com/clubworks/clubd/internal/lifecycle"
	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store"
)

// Server handles the club HTTP API.
type Server struct {
	manager  *lifecycle.Manager
	resolver auth.Resolver
	users    store.UserRepository
	logger   *slog.Logger
}

// New returns a Server backed by the given manager and user repository.
func New(manager *lifecycle.Manager, resolver auth.Resolver, users store.UserRepository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		manager:  manager,
		resolver: resolver,
		users:    users,
		logger:   logger,
	}
}

// NewHTTPHandler returns an http.Handler with all routes registered.
func (s *Server) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/events", s.handleCreateEvent)
	mux.HandleFunc("GET /v1/events", s.handleListEvents)
	mux.HandleFunc("GET /v1/events/{id}", s.handleGetEvent)
	mux.HandleFunc("PUT /v1/events/{id}", s.handleUpdateEvent)
	mux.HandleFunc("DELETE /v1/events/{id}", s.handleDeleteEvent)
	mux.HandleFunc("POST /v1/events/{id}/rsvps", s.handleAddRSVP)
	mux.HandleFunc("GET /v1/members", s.handleListMembers)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return RecoveryMiddleware(s.logger, LoggingMiddleware(s.logger, mux))
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// bearerSecret extracts the bearer secret from the Authorization header.
// Returns the empty string when absent; the manager rejects empty secrets.
func bearerSecret(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeLifecycleError maps the four failure kinds onto distinct status codes:
// 401 unauthorized, 400 invalid payload (with field details), 404 not found,
// 502 backing-store failure.
func (s *Server) writeLifecycleError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  ve.Error(),
			"fields": ve.Errors,
		})
		return
	}
	if errors.Is(err, model.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if errors.Is(err, model.ErrNotFound) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	var se *model.StorageError
	if errors.As(err, &se) {
		s.logger.Error("storage failure", "op", se.Op, "error", se.Err)
		writeError(w, http.StatusBadGateway, "storage failure: "+se.Op)
		return
	}
	s.logger.Error("unexpected failure", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
