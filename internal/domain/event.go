package domain

import "time"

// EventStatus represents the publication status of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsValid checks if the status is a valid EventStatus
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}
	return false
}

// Event represents an event entity
type Event struct {
	ID               string      `json:"id"`
	TenantID         string      `json:"tenant_id"`
	Slug             string      `json:"slug"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	VenueID          string      `json:"venue_id"`
	HeadlinerID      string      `json:"headliner_id"`
	UndercardArtists []string    `json:"undercard_artists"`
	ImageURL         string      `json:"image_url"`
	StartTime        *time.Time  `json:"start_time,omitempty"`
	EndTime          *time.Time  `json:"end_time,omitempty"`
	Status           EventStatus `json:"status"`
	PublishedAt      *time.Time  `json:"published_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	DeletedAt        *time.Time  `json:"deleted_at,omitempty"`
}

// CanPublish checks if the event can transition to published
func (e *Event) CanPublish() bool {
	return e.Status == EventStatusDraft
}

// Publish marks the event as published
func (e *Event) Publish() error {
	if !e.CanPublish() {
		return ErrInvalidEventStatus
	}
	now := time.Now()
	e.Status = EventStatusPublished
	e.PublishedAt = &now
	e.UpdatedAt = now
	return nil
}
