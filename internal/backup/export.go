package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	EventCount  int       `json:"event_count"`
	MemberCount int       `json:"member_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all events and members from the store as JSONL to w.
// Events are sorted by ID and include their RSVP lists.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	// Fetch all events (no filter, no limit).
	events, err := s.Events().List(ctx, model.EventFilter{})
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	for _, e := range events {
		rsvps, err := s.Events().RSVPs(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("get rsvps for %s: %w", e.ID, err)
		}
		e.RSVPs = rsvps
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].ID < events[j].ID
	})

	members, err := s.Users().List(ctx)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		EventCount:  len(events),
		MemberCount: len(members),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, e := range events {
		if err := enc.Encode(record{Type: "event", Data: e}); err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
	}

	for _, m := range members {
		if err := enc.Encode(record{Type: "member", Data: m}); err != nil {
			return fmt.Errorf("encode member %s: %w", m.ID, err)
		}
	}

	return nil
}
