package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
)

// Map-backed fakes shared by the service tests.

type fakeVenueRepo struct {
	venues  map[string]*domain.Venue
	failGet bool
	// onGet runs at the start of GetByID so tests can interleave other
	// work with an in-flight capacity lookup
	onGet func()
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{venues: make(map[string]*domain.Venue)}
}

func (f *fakeVenueRepo) Create(_ context.Context, venue *domain.Venue) error {
	if venue.ID == "" {
		venue.ID = fmt.Sprintf("venue-%d", len(f.venues)+1)
	}
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeVenueRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Venue, error) {
	if f.onGet != nil {
		f.onGet()
	}
	if f.failGet {
		return nil, errors.New("venue lookup unavailable")
	}
	venue, ok := f.venues[id]
	if !ok || venue.TenantID != tenantID {
		return nil, nil
	}
	return venue, nil
}

func (f *fakeVenueRepo) List(_ context.Context, tenantID, _ string, _, _ int) ([]*domain.Venue, int64, error) {
	var out []*domain.Venue
	for _, v := range f.venues {
		if v.TenantID == tenantID {
			out = append(out, v)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeVenueRepo) Update(_ context.Context, venue *domain.Venue) error {
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeVenueRepo) Delete(_ context.Context, _, id string) error {
	delete(f.venues, id)
	return nil
}

type fakeEventRepo struct {
	events     map[string]*domain.Event
	tiers      map[string]domain.TierList
	failCreate bool
	failUpdate bool
	seq        int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[string]*domain.Event),
		tiers:  make(map[string]domain.TierList),
	}
}

func (f *fakeEventRepo) nextID() string {
	f.seq++
	return fmt.Sprintf("event-%d", f.seq)
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	if event.ID == "" {
		event.ID = f.nextID()
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) CreateWithTiers(ctx context.Context, event *domain.Event, tiers domain.TierList) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	if err := f.Create(ctx, event); err != nil {
		return err
	}
	f.tiers[event.ID] = tiers
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Event, error) {
	event, ok := f.events[id]
	if !ok || event.TenantID != tenantID {
		return nil, nil
	}
	return event, nil
}

func (f *fakeEventRepo) GetBySlug(_ context.Context, tenantID, slug string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.TenantID == tenantID && e.Slug == slug {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) List(_ context.Context, tenantID string, _ repository.EventFilter) ([]*domain.Event, int64, error) {
	var out []*domain.Event
	for _, e := range f.events {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	if f.failUpdate {
		return errors.New("update failed")
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) UpdateWithTiers(ctx context.Context, event *domain.Event, tiers domain.TierList) error {
	if f.failUpdate {
		return errors.New("update failed")
	}
	f.events[event.ID] = event
	f.tiers[event.ID] = tiers
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, _, id string) error {
	delete(f.events, id)
	return nil
}

type fakeTierRepo struct {
	tiers map[string]*domain.TicketTier
	seq   int
}

func newFakeTierRepo() *fakeTierRepo {
	return &fakeTierRepo{tiers: make(map[string]*domain.TicketTier)}
}

func (f *fakeTierRepo) Create(_ context.Context, tier *domain.TicketTier) error {
	if tier.ID == "" {
		f.seq++
		tier.ID = fmt.Sprintf("tier-%d", f.seq)
	}
	clone := *tier
	f.tiers[tier.ID] = &clone
	return nil
}

func (f *fakeTierRepo) GetByID(_ context.Context, id string) (*domain.TicketTier, error) {
	tier, ok := f.tiers[id]
	if !ok {
		return nil, nil
	}
	clone := *tier
	return &clone, nil
}

func (f *fakeTierRepo) GetByEventID(_ context.Context, eventID string) (domain.TierList, error) {
	var out domain.TierList
	for _, t := range f.tiers {
		if t.EventID == eventID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTierRepo) Update(_ context.Context, tier *domain.TicketTier) error {
	clone := *tier
	f.tiers[tier.ID] = &clone
	return nil
}

func (f *fakeTierRepo) Delete(_ context.Context, id string) error {
	delete(f.tiers, id)
	return nil
}

type fakeDraftStore struct {
	drafts map[string]*domain.Draft
	dirty  map[string]bool
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{
		drafts: make(map[string]*domain.Draft),
		dirty:  make(map[string]bool),
	}
}

func (f *fakeDraftStore) Get(_ context.Context, id string) (*domain.Draft, error) {
	draft, ok := f.drafts[id]
	if !ok {
		return nil, nil
	}
	clone := *draft
	return &clone, nil
}

func (f *fakeDraftStore) Save(_ context.Context, draft *domain.Draft) error {
	clone := *draft
	f.drafts[draft.ID] = &clone
	if draft.Dirty {
		f.dirty[draft.ID] = true
	}
	return nil
}

func (f *fakeDraftStore) SaveIfVersion(ctx context.Context, draft *domain.Draft, expected int) (bool, error) {
	if current, ok := f.drafts[draft.ID]; ok && current.Version != expected {
		return false, nil
	}
	return true, f.Save(ctx, draft)
}

func (f *fakeDraftStore) Delete(_ context.Context, id string) error {
	delete(f.drafts, id)
	delete(f.dirty, id)
	return nil
}

func (f *fakeDraftStore) DirtyIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id := range f.dirty {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeDraftStore) ClearDirty(_ context.Context, ids ...string) error {
	for _, id := range ids {
		delete(f.dirty, id)
	}
	return nil
}

func (f *fakeDraftStore) ClearDirtyIfVersion(_ context.Context, id string, expected int) (bool, error) {
	if current, ok := f.drafts[id]; ok && current.Version != expected {
		return false, nil
	}
	delete(f.dirty, id)
	return true, nil
}

type fakeActivityRepo struct {
	records []*domain.ActivityRecord
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Insert(_ context.Context, record *domain.ActivityRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeActivityRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*domain.ActivityRecord, int64, error) {
	var matched []*domain.ActivityRecord
	for _, r := range f.records {
		if r.TenantID == tenantID {
			matched = append(matched, r)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// captureRecorder collects activity records for assertions.
type captureRecorder struct {
	records []*domain.ActivityRecord
}

func (r *captureRecorder) Record(_ context.Context, record *domain.ActivityRecord) {
	r.records = append(r.records, record)
}

func (r *captureRecorder) actions() []string {
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Action
	}
	return out
}

type fakeDraftRepo struct {
	drafts map[string]*domain.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*domain.Draft)}
}

func (f *fakeDraftRepo) Upsert(_ context.Context, draft *domain.Draft) error {
	clone := *draft
	f.drafts[draft.ID] = &clone
	return nil
}

func (f *fakeDraftRepo) GetByID(_ context.Context, id string) (*domain.Draft, error) {
	draft, ok := f.drafts[id]
	if !ok {
		return nil, nil
	}
	clone := *draft
	return &clone, nil
}

func (f *fakeDraftRepo) Delete(_ context.Context, id string) error {
	delete(f.drafts, id)
	return nil
}
