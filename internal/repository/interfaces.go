package repository

import (
	"context"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

// Not-found is reported as (nil, nil); callers map it to their own sentinel.
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Venue, error)
	List(ctx context.Context, tenantID, city string, limit, offset int) ([]*domain.Venue, int64, error)
	Update(ctx context.Context, venue *domain.Venue) error
	Delete(ctx context.Context, tenantID, id string) error
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	CreateWithTiers(ctx context.Context, event *domain.Event, tiers domain.TierList) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Event, error)
	GetBySlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
	List(ctx context.Context, tenantID string, filter EventFilter) ([]*domain.Event, int64, error)
	Update(ctx context.Context, event *domain.Event) error
	UpdateWithTiers(ctx context.Context, event *domain.Event, tiers domain.TierList) error
	Delete(ctx context.Context, tenantID, id string) error
}

type EventFilter struct {
	Status  string
	VenueID string
	Limit   int
	Offset  int
}

type TierRepository interface {
	Create(ctx context.Context, tier *domain.TicketTier) error
	GetByID(ctx context.Context, id string) (*domain.TicketTier, error)
	GetByEventID(ctx context.Context, eventID string) (domain.TierList, error)
	Update(ctx context.Context, tier *domain.TicketTier) error
	Delete(ctx context.Context, id string) error
}

// DraftStore is the fast path for in-progress drafts. Dirty tracking feeds
// the autosave worker.
type DraftStore interface {
	Get(ctx context.Context, id string) (*domain.Draft, error)
	Save(ctx context.Context, draft *domain.Draft) error
	// SaveIfVersion writes the draft only while the stored copy still has
	// the expected version. It returns false, without writing, when a
	// concurrent save got there first.
	SaveIfVersion(ctx context.Context, draft *domain.Draft, expected int) (bool, error)
	Delete(ctx context.Context, id string) error
	DirtyIDs(ctx context.Context) ([]string, error)
	ClearDirty(ctx context.Context, ids ...string) error
	// ClearDirtyIfVersion removes the dirty marker only while the stored
	// copy still has the expected version, so a draft edited after it was
	// read for flushing stays queued for the next cycle.
	ClearDirtyIfVersion(ctx context.Context, id string, expected int) (bool, error)
}

// DraftRepository is the durable copy the autosave worker flushes to.
type DraftRepository interface {
	Upsert(ctx context.Context, draft *domain.Draft) error
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	Delete(ctx context.Context, id string) error
}

type ActivityRepository interface {
	Insert(ctx context.Context, record *domain.ActivityRecord) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*domain.ActivityRecord, int64, error)
}
