package model

import "time"

// DefaultImageURL is the sentinel image value for events without an uploaded
// image. It is never stored in, nor deleted from, the blob store.
const DefaultImageURL = "/static/img/event-default.png"

// Event is the core club event record.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        string    `json:"date,omitempty"`
	Image       string    `json:"image"`
	Perks       []string  `json:"perks,omitempty"`
	Pinned      bool      `json:"pinned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// RSVPs holds user IDs, populated by queries from the rsvps table.
	RSVPs []string `json:"rsvps,omitempty"`
}

// HasUploadedImage reports whether the event references a blob-store image
// rather than the default sentinel.
func (e *Event) HasUploadedImage() bool {
	return e.Image != "" && e.Image != DefaultImageURL
}

// EventFilter holds criteria for querying events.
type EventFilter struct {
	Pinned *bool  `json:"pinned,omitempty"`
	Search string `json:"search,omitempty"` // substring match on name/description
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
