// Package store defines the persistence interfaces for club entities. Each
// entity gets its own typed repository; implementations report absence with
// model.ErrNotFound rather than driver-specific sentinels.
package store

import (
	"context"

	"github.com/clubworks/clubd/internal/model"
)

// EventRepository is the persistence interface for events and their RSVPs.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error

	// RSVPs are append-only from the manager's perspective.
	AddRSVP(ctx context.Context, eventID, userID string) error
	RSVPs(ctx context.Context, eventID string) ([]string, error)
}

// UserRepository is the persistence interface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id string) (*model.User, error)
	GetBySecretHash(ctx context.Context, hash string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// Store bundles the per-entity repositories behind a single connection.
type Store interface {
	Events() EventRepository
	Users() UserRepository
	Close() error
}
