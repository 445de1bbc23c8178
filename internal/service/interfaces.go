package service

import (
	"context"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
)

type VenueService interface {
	CreateVenue(ctx context.Context, tenantID, actorID string, req *dto.CreateVenueRequest) (*domain.Venue, error)
	GetVenue(ctx context.Context, tenantID, id string) (*domain.Venue, error)
	ListVenues(ctx context.Context, tenantID string, filter *dto.VenueListFilter) ([]*domain.Venue, int64, error)
	UpdateVenue(ctx context.Context, tenantID, actorID, id string, req *dto.UpdateVenueRequest) (*domain.Venue, error)
	DeleteVenue(ctx context.Context, tenantID, actorID, id string) error
	// GetVenueCapacity returns the venue capacity for tier allocation.
	GetVenueCapacity(ctx context.Context, tenantID, venueID string) (int, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, tenantID, actorID string, req *dto.CreateEventRequest) (*domain.Event, error)
	GetEvent(ctx context.Context, tenantID, id string) (*domain.Event, error)
	GetEventBySlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
	ListEvents(ctx context.Context, tenantID string, filter *dto.EventListFilter) ([]*domain.Event, int64, error)
	UpdateEvent(ctx context.Context, tenantID, actorID, id string, req *dto.UpdateEventRequest) (*domain.Event, error)
	PublishEvent(ctx context.Context, tenantID, actorID, id string) (*domain.Event, error)
	DeleteEvent(ctx context.Context, tenantID, actorID, id string) error
}

type TierService interface {
	CreateTier(ctx context.Context, tenantID, actorID, eventID string, req *dto.CreateTierRequest) (*domain.TicketTier, error)
	GetTiers(ctx context.Context, tenantID, eventID string) (domain.TierList, error)
	UpdateTier(ctx context.Context, tenantID, actorID, tierID string, req *dto.UpdateTierRequest) (*domain.TicketTier, error)
	DeleteTier(ctx context.Context, tenantID, actorID, tierID string) error
}

// ActivityService reads the tenant activity log for the admin surface.
type ActivityService interface {
	ListActivity(ctx context.Context, tenantID string, filter *dto.ActivityListFilter) ([]*domain.ActivityRecord, int64, error)
}

// SelectVenueResult carries the updated draft plus a warning when the
// capacity lookup fell back to the default.
type SelectVenueResult struct {
	Draft   *domain.Draft
	Warning string
}

type DraftService interface {
	CreateDraft(ctx context.Context, tenantID, userID string, req *dto.CreateDraftRequest) (*domain.Draft, error)
	GetDraft(ctx context.Context, tenantID, id string) (*domain.Draft, error)
	UpdateDraft(ctx context.Context, tenantID, id string, req *dto.UpdateDraftRequest) (*domain.Draft, error)
	SelectVenue(ctx context.Context, tenantID, id, venueID string) (*SelectVenueResult, error)
	AddTier(ctx context.Context, tenantID, id string) (*domain.Draft, error)
	UpdateTier(ctx context.Context, tenantID, id string, index int, req *dto.UpdateTierRequest) (*domain.Draft, error)
	RemoveTier(ctx context.Context, tenantID, id string, index int) (*domain.Draft, error)
	ResetDraft(ctx context.Context, tenantID, id string) (*domain.Draft, error)
	SubmitDraft(ctx context.Context, tenantID, actorID, id string) (*domain.Event, error)
	DeleteDraft(ctx context.Context, tenantID, id string) error
}
