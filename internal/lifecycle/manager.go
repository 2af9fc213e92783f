// Package lifecycle implements the event resource lifecycle manager: it keeps
// an event's relational record and its blob-store image consistent across
// create, update, and delete, behind the permission and validation gates.
//
// The two backing stores are not covered by a shared transaction. Ordering is
// chosen so that a persisted record never points at an image that was never
// uploaded, and a record is never deleted while its blob survives uncollected.
// The one tolerated inconsistency is an orphaned blob left behind when
// deleting a superseded image fails during update.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clubworks/clubd/internal/auth"
	"github.com/clubworks/clubd/internal/blob"
	"github.com/clubworks/clubd/internal/events"
	"github.com/clubworks/clubd/internal/idgen"
	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store"
)

// Config carries the collaborators a Manager is constructed with. All stores
// are injected; the manager holds no global state and is safe for concurrent
// use by in-flight requests.
type Config struct {
	Events    store.EventRepository
	Resolver  auth.Resolver
	Blobs     blob.Store
	Publisher events.Publisher
	Policy    model.Policy
	Logger    *slog.Logger

	// DefaultImage overrides the sentinel URL assigned to events created
	// without an image. Empty means model.DefaultImageURL.
	DefaultImage string
}

// Manager orchestrates the event lifecycle across the entity store and the
// blob store.
type Manager struct {
	events       store.EventRepository
	resolver     auth.Resolver
	blobs        blob.Store
	publisher    events.Publisher
	policy       model.Policy
	logger       *slog.Logger
	defaultImage string
}

// New returns a Manager wired to the given collaborators.
func New(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaultImage := cfg.DefaultImage
	if defaultImage == "" {
		defaultImage = model.DefaultImageURL
	}
	return &Manager{
		events:       cfg.Events,
		resolver:     cfg.Resolver,
		blobs:        cfg.Blobs,
		publisher:    cfg.Publisher,
		policy:       cfg.Policy,
		logger:       logger,
		defaultImage: defaultImage,
	}
}

// EventInput holds transport-agnostic parameters for creating or updating an
// event. Update replaces every field; it is not a patch. ImageData carries
// inline image bytes; when absent, create falls back to the default image and
// update keeps the previous one.
type EventInput struct {
	ID          string   `json:"id,omitempty"` // create only; generated when empty
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Perks       []string `json:"perks"`
	Pinned      bool     `json:"pinned"`

	ImageData []byte `json:"image_data,omitempty"`
	ImageType string `json:"image_type,omitempty"` // content type of ImageData
}

// CreateEvent persists a new event for the actor owning the secret. When the
// input carries image bytes they are uploaded first; an upload failure aborts
// the whole operation so no record ever references a missing blob.
func (m *Manager) CreateEvent(ctx context.Context, secret string, in EventInput) (*model.Event, error) {
	actor, err := m.requireActor(ctx, secret, model.PermissionCreateEvents)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &model.Event{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		Perks:       in.Perks,
		Pinned:      in.Pinned,
		Image:       m.defaultImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := model.ValidateEvent(event, m.policy); err != nil {
		return nil, err
	}

	if event.ID == "" {
		id, err := idgen.NewEventID()
		if err != nil {
			return nil, fmt.Errorf("generate event id: %w", err)
		}
		event.ID = id
	}

	if len(in.ImageData) > 0 {
		url, err := m.blobs.Put(ctx, in.ImageData, in.ImageType)
		if err != nil {
			return nil, &model.StorageError{Op: "blob put", Err: err}
		}
		event.Image = url
	}

	if err := m.events.Create(ctx, event); err != nil {
		// The image went up before the record; reclaim it so the failed
		// create leaves nothing behind.
		if event.Image != m.defaultImage {
			if derr := m.blobs.Delete(ctx, event.Image); derr != nil {
				m.logger.Warn("failed to reclaim image after aborted create",
					"event_id", event.ID, "image", event.Image, "error", derr)
			}
		}
		return nil, &model.StorageError{Op: "create event", Err: err}
	}

	m.publish(ctx, events.TopicEventCreated, events.EventCreated{Event: event, Actor: actor.ID})
	return event, nil
}

// UpdateEvent replaces the event's fields wholesale. New image bytes are
// uploaded before the superseded blob is deleted; a failed upload aborts the
// update with the previous record untouched, while a failed delete of the old
// blob is logged and swallowed so a successful upload is never rolled back.
func (m *Manager) UpdateEvent(ctx context.Context, secret, id string, in EventInput) (*model.Event, error) {
	actor, err := m.requireActor(ctx, secret, model.PermissionEditEvents)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		Perks:       in.Perks,
		Pinned:      in.Pinned,
	}
	if err := model.ValidateEvent(event, m.policy); err != nil {
		return nil, err
	}

	prev, err := m.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Image = prev.Image
	event.CreatedAt = prev.CreatedAt
	event.RSVPs = prev.RSVPs
	event.UpdatedAt = time.Now().UTC()

	if len(in.ImageData) > 0 {
		url, err := m.blobs.Put(ctx, in.ImageData, in.ImageType)
		if err != nil {
			return nil, &model.StorageError{Op: "blob put", Err: err}
		}
		event.Image = url

		if prev.HasUploadedImage() {
			if err := m.blobs.Delete(ctx, prev.Image); err != nil {
				// The new image is already up; the superseded blob is
				// orphaned at worst.
				m.logger.Warn("failed to delete superseded image",
					"event_id", id, "image", prev.Image, "error", err)
			}
		}
	}

	if err := m.events.Update(ctx, event); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, &model.StorageError{Op: "update event", Err: err}
	}

	m.publish(ctx, events.TopicEventUpdated, events.EventUpdated{Event: event, Actor: actor.ID})
	return event, nil
}

// DeleteEvent removes the event and its uploaded image. The blob goes first:
// if reclaiming it fails the record is preserved so the delete can be retried,
// since a surviving blob with no owning record would never be collected.
func (m *Manager) DeleteEvent(ctx context.Context, secret, id string) error {
	actor, err := m.requireActor(ctx, secret, model.PermissionDeleteEvents)
	if err != nil {
		return err
	}

	event, err := m.getEvent(ctx, id)
	if err != nil {
		return err
	}

	if event.HasUploadedImage() {
		if err := m.blobs.Delete(ctx, event.Image); err != nil {
			return &model.StorageError{Op: "blob delete", Err: err}
		}
	}

	if err := m.events.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return &model.StorageError{Op: "delete event", Err: err}
	}

	m.publish(ctx, events.TopicEventDeleted, events.EventDeleted{EventID: id, Actor: actor.ID})
	return nil
}

// GetEvent returns the event with the given id, or model.ErrNotFound.
func (m *Manager) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return m.getEvent(ctx, id)
}

// ListEvents returns events matching the filter; callers partition the result
// by pinned flag and date.
func (m *Manager) ListEvents(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	list, err := m.events.List(ctx, filter)
	if err != nil {
		return nil, &model.StorageError{Op: "list events", Err: err}
	}
	return list, nil
}

// AddRSVP records the acting user's RSVP on the event. Any resolved member
// may RSVP; the operation is idempotent per user and append-only.
func (m *Manager) AddRSVP(ctx context.Context, secret, eventID string) (*model.Event, error) {
	actor, err := m.requireActor(ctx, secret)
	if err != nil {
		return nil, err
	}

	event, err := m.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := m.events.AddRSVP(ctx, eventID, actor.ID); err != nil {
		return nil, &model.StorageError{Op: "add rsvp", Err: err}
	}

	if !containsString(event.RSVPs, actor.ID) {
		event.RSVPs = append(event.RSVPs, actor.ID)
	}

	m.publish(ctx, events.TopicEventRSVP, events.RSVPAdded{EventID: eventID, UserID: actor.ID})
	return event, nil
}

// requireActor resolves the secret and checks the required permissions.
// Resolution failures and missing permissions both surface as
// model.ErrUnauthorized; infrastructure failures during resolution do not.
func (m *Manager) requireActor(ctx context.Context, secret string, required ...model.Permission) (*model.User, error) {
	actor, err := m.resolver.Resolve(ctx, secret)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return nil, model.ErrUnauthorized
		}
		return nil, &model.StorageError{Op: "resolve actor", Err: err}
	}
	if !auth.HasPermission(actor, required...) {
		return nil, model.ErrUnauthorized
	}
	return actor, nil
}

func (m *Manager) getEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := m.events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, &model.StorageError{Op: "get event", Err: err}
	}
	return event, nil
}

// publish emits a lifecycle event. Best-effort; failures are logged but never
// fail the mutation that produced them.
func (m *Manager) publish(ctx context.Context, topic string, event any) {
	if err := m.publisher.Publish(ctx, topic, event); err != nil {
		m.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
