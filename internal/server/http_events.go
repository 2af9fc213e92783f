package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clubworks/clubd/internal/lifecycle"
	"github.com/clubworks/clubd/internal/model"
)

// handleCreateEvent handles POST /v1/events.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in lifecycle.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	event, err := s.manager.CreateEvent(r.Context(), bearerSecret(r), in)
	if err != nil {
		s.writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// handleListEvents handles GET /v1/events.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.EventFilter{
		Search: q.Get("search"),
	}

	if v := q.Get("pinned"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Pinned = &b
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	events, err := s.manager.ListEvents(r.Context(), filter)
	if err != nil {
		s.writeLifecycleError(w, err)
		return
	}

	// Ensure events is never null in JSON output.
	if events == nil {
		events = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// handleGetEvent handles GET /v1/events/{id}.
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	event, err := s.manager.GetEvent(r.Context(), id)
	if err != nil {
		s.writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// handleUpdateEvent handles PUT /v1/events/{id}. The payload replaces the
// event wholesale; include image bytes only to supersede the current image.
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in lifecycle.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	event, err := s.manager.UpdateEvent(r.Context(), bearerSecret(r), id, in)
	if err != nil {
		s.writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// handleDeleteEvent handles DELETE /v1/events/{id}.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.manager.DeleteEvent(r.Context(), bearerSecret(r), id); err != nil {
		s.writeLifecycleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAddRSVP handles POST /v1/events/{id}/rsvps.
func (s *Server) handleAddRSVP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	event, err := s.manager.AddRSVP(r.Context(), bearerSecret(r), id)
	if err != nil {
		s.writeLifecycleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// handleListMembers handles GET /v1/members. Any resolved member may view
// the roster.
func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	if _, err := s.resolver.Resolve(r.Context(), bearerSecret(r)); err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.writeLifecycleError(w, err)
		return
	}

	users, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to list members")
		return
	}
	if users == nil {
		users = []*model.User{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"members": users})
}
