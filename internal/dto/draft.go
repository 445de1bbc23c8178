package dto

import (
	"time"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type CreateDraftRequest struct {
	// EventID switches the draft into edit mode, pre-filled from the event.
	EventID *string `json:"event_id"`
}

type SelectVenueRequest struct {
	VenueID string `json:"venue_id" binding:"required"`
}

func (r *SelectVenueRequest) Validate() (bool, string) {
	if r.VenueID == "" {
		return false, "venue_id is required"
	}
	return true, ""
}

type UpdateDraftRequest struct {
	Title            *string    `json:"title" binding:"omitempty,max=200"`
	Description      *string    `json:"description" binding:"omitempty,max=2000"`
	HeadlinerID      *string    `json:"headliner_id"`
	UndercardArtists *[]string  `json:"undercard_artists"`
	ImageURL         *string    `json:"image_url" binding:"omitempty,url"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
}

func (r *UpdateDraftRequest) Validate() (bool, string) {
	if r.Title == nil && r.Description == nil && r.HeadlinerID == nil &&
		r.UndercardArtists == nil && r.ImageURL == nil &&
		r.StartTime == nil && r.EndTime == nil {
		return false, "at least one field must be provided"
	}
	return true, ""
}

type AllocationResponse struct {
	TotalAllocated int    `json:"total_allocated"`
	VenueCapacity  int    `json:"venue_capacity"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
}

type DraftResponse struct {
	ID               string              `json:"id"`
	EventID          *string             `json:"event_id,omitempty"`
	Title            string              `json:"title,omitempty"`
	Description      string              `json:"description,omitempty"`
	VenueID          string              `json:"venue_id,omitempty"`
	HeadlinerID      string              `json:"headliner_id,omitempty"`
	UndercardArtists []string            `json:"undercard_artists,omitempty"`
	ImageURL         string              `json:"image_url,omitempty"`
	StartTime        *time.Time          `json:"start_time,omitempty"`
	EndTime          *time.Time          `json:"end_time,omitempty"`
	VenueCapacity    int                 `json:"venue_capacity"`
	Phase            string              `json:"phase"`
	Tiers            []*TierResponse     `json:"tiers"`
	Allocation       *AllocationResponse `json:"allocation"`
	Warning          string              `json:"warning,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func ToDraftResponse(d *domain.Draft) *DraftResponse {
	alloc := d.Allocation()
	return &DraftResponse{
		ID:               d.ID,
		EventID:          d.EventID,
		Title:            d.Title,
		Description:      d.Description,
		VenueID:          d.VenueID,
		HeadlinerID:      d.HeadlinerID,
		UndercardArtists: d.UndercardArtists,
		ImageURL:         d.ImageURL,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		VenueCapacity:    d.VenueCapacity,
		Phase:            string(d.Phase),
		Tiers:            ToTierResponses(d.TicketTiers),
		Allocation: &AllocationResponse{
			TotalAllocated: alloc.TotalAllocated,
			VenueCapacity:  alloc.VenueCapacity,
			Status:         string(alloc.Status),
			Message:        alloc.Message,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type SubmitDraftResponse struct {
	Event *EventResponse `json:"event"`
}
