package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubworks/clubd/internal/lifecycle"
	"github.com/clubworks/clubd/internal/model"
)

// memEventRepo is a map-backed event repository for handler tests.
type memEventRepo struct {
	events  map[string]*model.Event
	rsvps   map[string][]string
	listErr error
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*model.Event), rsvps: make(map[string][]string)}
}

func (m *memEventRepo) Create(_ context.Context, e *model.Event) error {
	clone := *e
	m.events[e.ID] = &clone
	return nil
}

func (m *memEventRepo) Get(_ context.Context, id string) (*model.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	clone := *e
	clone.RSVPs = m.rsvps[id]
	return &clone, nil
}

func (m *memEventRepo) List(_ context.Context, _ model.EventFilter) ([]*model.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*model.Event
	for _, e := range m.events {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memEventRepo) Update(_ context.Context, e *model.Event) error {
	if _, ok := m.events[e.ID]; !ok {
		return model.ErrNotFound
	}
	clone := *e
	m.events[e.ID] = &clone
	return nil
}

func (m *memEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memEventRepo) AddRSVP(_ context.Context, eventID, userID string) error {
	for _, id := range m.rsvps[eventID] {
		if id == userID {
			return nil
		}
	}
	m.rsvps[eventID] = append(m.rsvps[eventID], userID)
	return nil
}

func (m *memEventRepo) RSVPs(_ context.Context, eventID string) ([]string, error) {
	return m.rsvps[eventID], nil
}

// memBlobStore keeps uploaded blobs in memory.
type memBlobStore struct {
	blobs  map[string][]byte
	nextID int
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (m *memBlobStore) Put(_ context.Context, data []byte, _ string) (string, error) {
	m.nextID++
	url := fmt.Sprintf("https://blobs.test/events/%d.png", m.nextID)
	m.blobs[url] = data
	return url, nil
}

func (m *memBlobStore) Delete(_ context.Context, url string) error {
	delete(m.blobs, url)
	return nil
}

// memResolver maps secrets to users.
type memResolver struct {
	users map[string]*model.User
}

func (m *memResolver) Resolve(_ context.Context, secret string) (*model.User, error) {
	u, ok := m.users[secret]
	if !ok {
		return nil, model.ErrUnauthorized
	}
	return u, nil
}

// memUserRepo serves the members roster.
type memUserRepo struct {
	users []*model.User
}

func (m *memUserRepo) Create(_ context.Context, u *model.User) error { return nil }
func (m *memUserRepo) Get(_ context.Context, _ string) (*model.User, error) {
	return nil, model.ErrNotFound
}
func (m *memUserRepo) GetBySecretHash(_ context.Context, _ string) (*model.User, error) {
	return nil, model.ErrNotFound
}
func (m *memUserRepo) List(_ context.Context) ([]*model.User, error) { return m.users, nil }

// noopPublisher drops all events.
type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, _ string, _ any) error { return nil }
func (noopPublisher) Close() error                                     { return nil }

const officerSecret = "officer-secret"

func newTestServer(t *testing.T) (*httptest.Server, *memEventRepo) {
	t.Helper()
	repo := newMemEventRepo()
	resolver := &memResolver{users: map[string]*model.User{
		officerSecret: {
			ID: "usr-officer",
			Permissions: []model.Permission{
				model.PermissionCreateEvents,
				model.PermissionEditEvents,
				model.PermissionDeleteEvents,
			},
		},
	}}
	manager := lifecycle.New(lifecycle.Config{
		Events:    repo,
		Resolver:  resolver,
		Blobs:     newMemBlobStore(),
		Publisher: noopPublisher{},
		Policy:    model.DefaultPolicy(),
	})
	users := &memUserRepo{users: []*model.User{{ID: "usr-officer", Name: "Ada"}}}
	srv := New(manager, resolver, users, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.NewHTTPHandler())
	t.Cleanup(ts.Close)
	return ts, repo
}

// doJSON issues a request with an optional bearer secret and JSON body.
func doJSON(t *testing.T, method, url, secret string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeEvent(t *testing.T, resp *http.Response) model.Event {
	t.Helper()
	var e model.Event
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decoding event: %v", err)
	}
	return e
}

func TestCreateEventEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/events", officerSecret, lifecycle.EventInput{
		Name: "Bake Sale", Description: "Fundraiser", Date: "2025-05-01", Location: "Main Hall",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	e := decodeEvent(t, resp)
	if e.ID == "" || e.Image != model.DefaultImageURL {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestCreateEventEndpoint_MissingToken(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/events", "", lifecycle.EventInput{Name: "Bake Sale"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestCreateEventEndpoint_InvalidPayload(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/events", officerSecret, lifecycle.EventInput{Name: ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Fields []model.FieldError `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if len(body.Fields) == 0 || body.Fields[0].Field != "name" {
		t.Errorf("expected field-level error on 'name', got %+v", body.Fields)
	}
}

func TestCreateEventEndpoint_BadJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/events", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+officerSecret)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListEventsEndpoint_NeverNull(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/v1/events", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if string(body["events"]) == "null" {
		t.Error(`"events" must be [] on empty data, got null`)
	}
}

func TestGetEventEndpoint_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/v1/events/evt-missing", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateAndDeleteEventEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/events", officerSecret, lifecycle.EventInput{
		Name: "Bake Sale", Date: "2025-05-01",
	})
	created := decodeEvent(t, resp)

	resp = doJSON(t, http.MethodPut, ts.URL+"/v1/events/"+created.ID, officerSecret, lifecycle.EventInput{
		Name: "Bake Sale (rescheduled)", Date: "2025-05-08",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	updated := decodeEvent(t, resp)
	if updated.Name != "Bake Sale (rescheduled)" {
		t.Errorf("Name = %q, want replaced", updated.Name)
	}

	resp = doJSON(t, http.MethodDelete, ts.URL+"/v1/events/"+created.ID, officerSecret, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/v1/events/"+created.ID, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestAddRSVPEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/events", officerSecret, lifecycle.EventInput{
		Name: "Bake Sale", Date: "2025-05-01",
	})
	created := decodeEvent(t, resp)

	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/events/"+created.ID+"/rsvps", officerSecret, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rsvp status = %d, want 200", resp.StatusCode)
	}
	e := decodeEvent(t, resp)
	if len(e.RSVPs) != 1 || e.RSVPs[0] != "usr-officer" {
		t.Errorf("RSVPs = %v, want [usr-officer]", e.RSVPs)
	}
}

func TestListMembersEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/v1/members", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/v1/members", officerSecret, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Members []*model.User `json:"members"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Members) != 1 || body.Members[0].Name != "Ada" {
		t.Errorf("Members = %+v, want [Ada]", body.Members)
	}
}

func TestStorageFailureMapsTo502(t *testing.T) {
	ts, repo := newTestServer(t)
	repo.listErr = errors.New("database down")

	resp := doJSON(t, http.MethodGet, ts.URL+"/v1/events", "", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/v1/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RecoveryMiddleware(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
