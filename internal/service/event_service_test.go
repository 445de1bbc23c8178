package service

import (
	"context"
	"errors"
	"testing"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/activity"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
)

func newEventFixture(t *testing.T) (EventService, *fakeEventRepo, *fakeVenueRepo) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	venueRepo := newFakeVenueRepo()
	venueRepo.venues["venue-1"] = &domain.Venue{
		ID: "venue-1", TenantID: testTenant, Name: "The Warehouse", Capacity: 300,
	}
	svc := NewEventService(eventRepo, venueRepo, activity.NewNoopRecorder())
	return svc, eventRepo, venueRepo
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Summer Fest", "summer-fest"},
		{"  Rock & Roll Night!  ", "rock-roll-night"},
		{"already-slugged", "already-slugged"},
		{"Ünïcode Show", "n-code-show"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q): expected %q, got %q", tt.title, tt.want, got)
		}
	}
}

func TestCreateEventAllocatesUniqueSlug(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventFixture(t)

	req := &dto.CreateEventRequest{Title: "Summer Fest", VenueID: "venue-1"}

	first, err := svc.CreateEvent(ctx, testTenant, testUser, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Slug != "summer-fest" {
		t.Errorf("expected slug summer-fest, got %q", first.Slug)
	}

	second, err := svc.CreateEvent(ctx, testTenant, testUser, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Slug != "summer-fest-2" {
		t.Errorf("expected slug summer-fest-2, got %q", second.Slug)
	}

	third, err := svc.CreateEvent(ctx, testTenant, testUser, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Slug != "summer-fest-3" {
		t.Errorf("expected slug summer-fest-3, got %q", third.Slug)
	}
}

func TestCreateEventUnknownVenue(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventFixture(t)

	_, err := svc.CreateEvent(ctx, testTenant, testUser, &dto.CreateEventRequest{
		Title: "Show", VenueID: "missing",
	})
	if !errors.Is(err, ErrVenueNotFound) {
		t.Errorf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestPublishEvent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventFixture(t)

	event, err := svc.CreateEvent(ctx, testTenant, testUser, &dto.CreateEventRequest{
		Title: "Show", VenueID: "venue-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	published, err := svc.PublishEvent(ctx, testTenant, testUser, event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if published.Status != domain.EventStatusPublished {
		t.Errorf("expected status published, got %s", published.Status)
	}
	if published.PublishedAt == nil {
		t.Error("expected published_at set")
	}

	// Publishing twice is a status conflict
	if _, err := svc.PublishEvent(ctx, testTenant, testUser, event.ID); !errors.Is(err, domain.ErrInvalidEventStatus) {
		t.Errorf("expected ErrInvalidEventStatus, got %v", err)
	}
}

func TestGetEventTenantIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEventFixture(t)

	event, _ := svc.CreateEvent(ctx, testTenant, testUser, &dto.CreateEventRequest{
		Title: "Show", VenueID: "venue-1",
	})

	if _, err := svc.GetEvent(ctx, "other-tenant", event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound for foreign tenant, got %v", err)
	}
}
