package backup

import (
	"context"
	"sort"

	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store"
)

// mockStore is a minimal in-memory store for backup tests.
type mockStore struct {
	events *mockEventRepo
	users  *mockUserRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		events: &mockEventRepo{
			events: make(map[string]*model.Event),
			rsvps:  make(map[string][]string),
		},
		users: &mockUserRepo{users: make(map[string]*model.User)},
	}
}

func (m *mockStore) Events() store.EventRepository { return m.events }
func (m *mockStore) Users() store.UserRepository   { return m.users }
func (m *mockStore) Close() error                  { return nil }

type mockEventRepo struct {
	events map[string]*model.Event
	rsvps  map[string][]string
}

func (r *mockEventRepo) Create(_ context.Context, e *model.Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *mockEventRepo) Get(_ context.Context, id string) (*model.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return e, nil
}

func (r *mockEventRepo) List(_ context.Context, _ model.EventFilter) ([]*model.Event, error) {
	var result []*model.Event
	for _, e := range r.events {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *mockEventRepo) Update(_ context.Context, e *model.Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func (r *mockEventRepo) AddRSVP(_ context.Context, eventID, userID string) error {
	r.rsvps[eventID] = append(r.rsvps[eventID], userID)
	return nil
}

func (r *mockEventRepo) RSVPs(_ context.Context, eventID string) ([]string, error) {
	return r.rsvps[eventID], nil
}

type mockUserRepo struct {
	users map[string]*model.User
}

func (r *mockUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *mockUserRepo) Get(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return u, nil
}

func (r *mockUserRepo) GetBySecretHash(_ context.Context, _ string) (*model.User, error) {
	return nil, model.ErrNotFound
}

func (r *mockUserRepo) List(_ context.Context) ([]*model.User, error) {
	var result []*model.User
	for _, u := range r.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
