package service

import (
	"context"
	"errors"
	"testing"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/activity"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/logger"
)

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
)

type draftFixture struct {
	svc       DraftService
	store     *fakeDraftStore
	draftRepo *fakeDraftRepo
	eventRepo *fakeEventRepo
	tierRepo  *fakeTierRepo
	venueRepo *fakeVenueRepo
}

func newDraftFixture(t *testing.T, cfg DraftServiceConfig) *draftFixture {
	t.Helper()

	f := &draftFixture{
		store:     newFakeDraftStore(),
		draftRepo: newFakeDraftRepo(),
		eventRepo: newFakeEventRepo(),
		tierRepo:  newFakeTierRepo(),
		venueRepo: newFakeVenueRepo(),
	}
	f.venueRepo.venues["venue-1"] = &domain.Venue{
		ID: "venue-1", TenantID: testTenant, Name: "The Warehouse", Capacity: 300,
	}

	venues := NewVenueService(f.venueRepo, activity.NewNoopRecorder())
	f.svc = NewDraftService(
		f.store, f.draftRepo, f.eventRepo, f.tierRepo, venues,
		activity.NewNoopRecorder(), cfg, logger.Get(),
	)
	return f
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, err := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Phase != domain.DraftPhaseEmpty {
		t.Errorf("expected phase %s, got %s", domain.DraftPhaseEmpty, draft.Phase)
	}

	result, err := f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning != "" {
		t.Errorf("unexpected warning: %q", result.Warning)
	}
	if result.Draft.VenueCapacity != 300 {
		t.Errorf("expected capacity 300, got %d", result.Draft.VenueCapacity)
	}
	if len(result.Draft.TicketTiers) != 1 || result.Draft.TicketTiers[0].Name != "GA" {
		t.Fatalf("expected seeded GA tier, got %v", result.Draft.TicketTiers)
	}
	if result.Draft.TicketTiers[0].Quantity != 300 {
		t.Errorf("expected seeded quantity 300, got %d", result.Draft.TicketTiers[0].Quantity)
	}
	if result.Draft.Phase != domain.DraftPhaseTiersSeeded {
		t.Errorf("expected phase %s, got %s", domain.DraftPhaseTiersSeeded, result.Draft.Phase)
	}
}

func TestSelectVenueSeedingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	if _, err := f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Edit a tier so the second selection can be observed not to reseed
	qty := 50
	if _, err := f.svc.UpdateTier(ctx, testTenant, draft.ID, 0, &dto.UpdateTierRequest{Quantity: &qty}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Draft.TicketTiers) != 1 {
		t.Fatalf("expected 1 tier, got %d", len(result.Draft.TicketTiers))
	}
	if result.Draft.TicketTiers[0].Quantity != 50 {
		t.Errorf("expected tier edit preserved at 50, got %d", result.Draft.TicketTiers[0].Quantity)
	}
}

func TestSelectVenueKeepsConcurrentEdit(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})

	// Another request saves a title edit while the capacity lookup is in
	// flight
	f.venueRepo.onGet = func() {
		f.venueRepo.onGet = nil
		stored, err := f.store.Get(ctx, draft.ID)
		if err != nil || stored == nil {
			t.Fatalf("failed to load draft mid-selection: %v", err)
		}
		stored.Title = "Midnight Special"
		stored.MarkDirty()
		if err := f.store.Save(ctx, stored); err != nil {
			t.Fatalf("failed to save edit: %v", err)
		}
	}

	result, err := f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Draft.Title != "Midnight Special" {
		t.Errorf("expected concurrent edit preserved, got title %q", result.Draft.Title)
	}
	if len(result.Draft.TicketTiers) != 1 || result.Draft.TicketTiers[0].Quantity != 300 {
		t.Fatalf("expected GA tier seeded at 300 alongside the edit, got %v", result.Draft.TicketTiers)
	}

	stored, err := f.store.Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Title != "Midnight Special" {
		t.Errorf("expected stored edit preserved, got title %q", stored.Title)
	}
	if len(stored.TicketTiers) != 1 {
		t.Errorf("expected stored draft seeded, got %d tiers", len(stored.TicketTiers))
	}
}

func TestSelectVenueFallbackCapacity(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})
	f.venueRepo.failGet = true

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	result, err := f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")
	if err != nil {
		t.Fatalf("lookup failure must not fail the operation: %v", err)
	}
	if result.Warning == "" {
		t.Error("expected a fallback warning")
	}
	if result.Draft.VenueCapacity != 100 {
		t.Errorf("expected fallback capacity 100, got %d", result.Draft.VenueCapacity)
	}
	if len(result.Draft.TicketTiers) != 1 || result.Draft.TicketTiers[0].Quantity != 100 {
		t.Errorf("expected GA tier seeded at fallback capacity, got %v", result.Draft.TicketTiers)
	}
}

func TestSelectVenueSplitPolicy(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySplit, DefaultVenueCapacity: 100})
	f.venueRepo.venues["venue-1"].Capacity = 100

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	result, err := f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Draft.TicketTiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(result.Draft.TicketTiers))
	}
	for i, want := range []int{34, 33, 33} {
		if got := result.Draft.TicketTiers[i].Quantity; got != want {
			t.Errorf("tier %d: expected quantity %d, got %d", i, want, got)
		}
	}
}

func TestDraftTenantIsolation(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	if _, err := f.svc.GetDraft(ctx, "other-tenant", draft.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected ErrDraftNotFound for foreign tenant, got %v", err)
	}
}

func TestSubmitDraftCreatesEvent(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")
	title := "Summer Fest"
	f.svc.UpdateDraft(ctx, testTenant, draft.ID, &dto.UpdateDraftRequest{Title: &title})

	event, err := f.svc.SubmitDraft(ctx, testTenant, testUser, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Title != "Summer Fest" {
		t.Errorf("expected title carried over, got %q", event.Title)
	}
	if event.Slug != "summer-fest" {
		t.Errorf("expected slug summer-fest, got %q", event.Slug)
	}
	if len(f.eventRepo.tiers[event.ID]) != 1 {
		t.Errorf("expected 1 tier persisted, got %d", len(f.eventRepo.tiers[event.ID]))
	}

	// Submit consumes the draft
	if _, err := f.svc.GetDraft(ctx, testTenant, draft.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected draft gone after submit, got %v", err)
	}
}

func TestSubmitDraftFailureLeavesDraftIntact(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")
	f.eventRepo.failCreate = true

	_, err := f.svc.SubmitDraft(ctx, testTenant, testUser, draft.ID)
	if err == nil {
		t.Fatal("expected submit to fail")
	}

	got, err := f.svc.GetDraft(ctx, testTenant, draft.ID)
	if err != nil {
		t.Fatalf("draft must survive a failed submit: %v", err)
	}
	if got.VenueCapacity != 300 || len(got.TicketTiers) != 1 {
		t.Error("draft state must be unchanged after a failed submit")
	}
}

func TestSubmitDraftEditMode(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	event := &domain.Event{
		ID: "event-77", TenantID: testTenant, Slug: "old-show", Title: "Old Show",
		VenueID: "venue-1", Status: domain.EventStatusDraft,
	}
	f.eventRepo.events[event.ID] = event
	f.tierRepo.Create(ctx, &domain.TicketTier{EventID: event.ID, Name: "GA", Quantity: 120})

	eventID := event.ID
	draft, err := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{EventID: &eventID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !draft.IsEditMode() {
		t.Fatal("expected edit mode")
	}
	if draft.Phase != domain.DraftPhaseEditing {
		t.Errorf("expected phase %s, got %s", domain.DraftPhaseEditing, draft.Phase)
	}
	if draft.Title != "Old Show" || draft.VenueCapacity != 300 {
		t.Errorf("expected draft pre-filled from event, got title=%q capacity=%d", draft.Title, draft.VenueCapacity)
	}
	if len(draft.TicketTiers) != 1 || draft.TicketTiers[0].Quantity != 120 {
		t.Fatalf("expected event tiers loaded, got %v", draft.TicketTiers)
	}

	title := "New Show"
	f.svc.UpdateDraft(ctx, testTenant, draft.ID, &dto.UpdateDraftRequest{Title: &title})

	updated, err := f.svc.SubmitDraft(ctx, testTenant, testUser, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != event.ID {
		t.Errorf("edit mode must update the same event, got %s", updated.ID)
	}
	if updated.Title != "New Show" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
	if updated.Slug != "old-show" {
		t.Errorf("slug must be stable across edits, got %q", updated.Slug)
	}
}

func TestResetDraft(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")

	got, err := f.svc.ResetDraft(ctx, testTenant, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Phase != domain.DraftPhaseEmpty || got.VenueID != "" || len(got.TicketTiers) != 0 {
		t.Error("expected draft restored to initial state")
	}
}

func TestDraftTierMutations(t *testing.T) {
	ctx := context.Background()
	f := newDraftFixture(t, DraftServiceConfig{SeedPolicy: domain.SeedPolicySingle, DefaultVenueCapacity: 100})

	draft, _ := f.svc.CreateDraft(ctx, testTenant, testUser, &dto.CreateDraftRequest{})
	f.svc.SelectVenue(ctx, testTenant, draft.ID, "venue-1")

	got, err := f.svc.AddTier(ctx, testTenant, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.TicketTiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(got.TicketTiers))
	}
	if got.Phase != domain.DraftPhaseEditing {
		t.Errorf("expected phase %s, got %s", domain.DraftPhaseEditing, got.Phase)
	}

	price := -10.0
	got, err = f.svc.UpdateTier(ctx, testTenant, draft.ID, 1, &dto.UpdateTierRequest{Price: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TicketTiers[1].PriceCents != 0 {
		t.Errorf("expected negative price clamped to 0, got %d", got.TicketTiers[1].PriceCents)
	}

	if _, err := f.svc.RemoveTier(ctx, testTenant, draft.ID, 5); !errors.Is(err, domain.ErrTierIndexInvalid) {
		t.Errorf("expected ErrTierIndexInvalid, got %v", err)
	}
	if _, err := f.svc.RemoveTier(ctx, testTenant, draft.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.RemoveTier(ctx, testTenant, draft.ID, 0); !errors.Is(err, domain.ErrTierMinimum) {
		t.Errorf("expected ErrTierMinimum, got %v", err)
	}
}
