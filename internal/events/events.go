package events

import (
	"context"

	"github.com/clubworks/clubd/internal/model"
)

// Event topic constants
const (
	TopicEventCreated = "club.event.created"
	TopicEventUpdated = "club.event.updated"
	TopicEventDeleted = "club.event.deleted"
	TopicEventRSVP    = "club.event.rsvp"
)

// Event types

type EventCreated struct {
	Event *model.Event `json:"event"`
	Actor string       `json:"actor,omitempty"`
}

type EventUpdated struct {
	Event *model.Event `json:"event"`
	Actor string       `json:"actor,omitempty"`
}

type EventDeleted struct {
	EventID string `json:"event_id"`
	Actor   string `json:"actor,omitempty"`
}

type RSVPAdded struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
