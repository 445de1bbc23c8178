package dto

import (
	"time"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type CreateEventRequest struct {
	Title            string     `json:"title" binding:"required,min=1,max=200"`
	Description      string     `json:"description" binding:"omitempty,max=2000"`
	VenueID          string     `json:"venue_id" binding:"required"`
	HeadlinerID      string     `json:"headliner_id" binding:"omitempty"`
	UndercardArtists []string   `json:"undercard_artists" binding:"omitempty,max=10"`
	ImageURL         string     `json:"image_url" binding:"omitempty,url"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
}

func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Title == "" {
		return false, "title is required"
	}
	if r.VenueID == "" {
		return false, "venue_id is required"
	}
	if r.StartTime != nil && r.EndTime != nil && !r.EndTime.After(*r.StartTime) {
		return false, "end_time must be after start_time"
	}
	return true, ""
}

type UpdateEventRequest struct {
	Title            *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description      *string    `json:"description" binding:"omitempty,max=2000"`
	VenueID          *string    `json:"venue_id"`
	HeadlinerID      *string    `json:"headliner_id"`
	UndercardArtists *[]string  `json:"undercard_artists"`
	ImageURL         *string    `json:"image_url" binding:"omitempty,url"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
}

func (r *UpdateEventRequest) Validate() (bool, string) {
	if r.Title == nil && r.Description == nil && r.VenueID == nil &&
		r.HeadlinerID == nil && r.UndercardArtists == nil && r.ImageURL == nil &&
		r.StartTime == nil && r.EndTime == nil {
		return false, "at least one field must be provided"
	}
	if r.Title != nil && *r.Title == "" {
		return false, "title must not be empty"
	}
	return true, ""
}

type EventResponse struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	VenueID          string          `json:"venue_id"`
	HeadlinerID      string          `json:"headliner_id,omitempty"`
	UndercardArtists []string        `json:"undercard_artists,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	StartTime        *time.Time      `json:"start_time,omitempty"`
	EndTime          *time.Time      `json:"end_time,omitempty"`
	Status           string          `json:"status"`
	PublishedAt      *time.Time      `json:"published_at,omitempty"`
	Tiers            []*TierResponse `json:"tiers,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func ToEventResponse(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:               e.ID,
		Slug:             e.Slug,
		Title:            e.Title,
		Description:      e.Description,
		VenueID:          e.VenueID,
		HeadlinerID:      e.HeadlinerID,
		UndercardArtists: e.UndercardArtists,
		ImageURL:         e.ImageURL,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Status:           string(e.Status),
		PublishedAt:      e.PublishedAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func ToEventResponseWithTiers(e *domain.Event, tiers domain.TierList) *EventResponse {
	resp := ToEventResponse(e)
	resp.Tiers = ToTierResponses(tiers)
	return resp
}

type EventListFilter struct {
	Status  string `form:"status" binding:"omitempty,oneof=draft published cancelled"`
	VenueID string `form:"venue_id"`
	Limit   int    `form:"limit"`
	Offset  int    `form:"offset"`
}

func (f *EventListFilter) SetDefaults() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
