package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubworks/clubd/internal/lifecycle"
	"github.com/clubworks/clubd/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, "test-secret")
}

func TestCreateEvent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/events" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-secret" {
			t.Errorf("Authorization = %q", got)
		}
		var in lifecycle.EventInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Event{ID: "evt-123", Name: in.Name})
	}))

	event, err := c.CreateEvent(context.Background(), &lifecycle.EventInput{Name: "Bake Sale"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ID != "evt-123" || event.Name != "Bake Sale" {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestListEvents_QueryParams(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("pinned") != "true" || q.Get("search") != "bake" || q.Get("limit") != "5" {
			t.Errorf("unexpected query: %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{"events": []*model.Event{{ID: "evt-1"}}})
	}))

	pinned := true
	events, err := c.ListEvents(context.Background(), &ListEventsRequest{Pinned: &pinned, Search: "bake", Limit: 5})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].ID != "evt-1" {
		t.Errorf("unexpected events: %+v", events)
	}
}

func TestDeleteEvent_NoContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.DeleteEvent(context.Background(), "evt-123"); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "event not found"})
	}))

	_, err := c.GetEvent(context.Background(), "evt-missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "event not found" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}
