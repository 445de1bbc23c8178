package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/activity"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrSlugTaken     = errors.New("event slug is already taken")
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type eventService struct {
	events   repository.EventRepository
	venues   repository.VenueRepository
	recorder activity.Recorder
}

func NewEventService(events repository.EventRepository, venues repository.VenueRepository, recorder activity.Recorder) EventService {
	return &eventService{
		events:   events,
		venues:   venues,
		recorder: recorder,
	}
}

// Slugify turns a title into a URL-safe slug.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug appends a numeric suffix until the slug is free within the
// tenant.
func (s *eventService) uniqueSlug(ctx context.Context, tenantID, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "event"
	}

	slug := base
	for i := 2; ; i++ {
		existing, err := s.events.GetBySlug(ctx, tenantID, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if existing == nil {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *eventService) CreateEvent(ctx context.Context, tenantID, actorID string, req *dto.CreateEventRequest) (*domain.Event, error) {
	venue, err := s.venues.GetByID(ctx, tenantID, req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to check venue: %w", err)
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}

	slug, err := s.uniqueSlug(ctx, tenantID, req.Title)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		TenantID:         tenantID,
		Slug:             slug,
		Title:            req.Title,
		Description:      req.Description,
		VenueID:          req.VenueID,
		HeadlinerID:      req.HeadlinerID,
		UndercardArtists: req.UndercardArtists,
		ImageURL:         req.ImageURL,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           domain.EventStatusDraft,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityEventCreated,
		SubjectType: "event",
		SubjectID:   event.ID,
		Metadata:    map[string]string{"title": event.Title},
	})
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, tenantID, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, tenantID, slug string) (*domain.Event, error) {
	event, err := s.events.GetBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, tenantID string, filter *dto.EventListFilter) ([]*domain.Event, int64, error) {
	filter.SetDefaults()
	return s.events.List(ctx, tenantID, repository.EventFilter{
		Status:  filter.Status,
		VenueID: filter.VenueID,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

func (s *eventService) UpdateEvent(ctx context.Context, tenantID, actorID, id string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	event, err := s.GetEvent(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.VenueID != nil {
		venue, err := s.venues.GetByID(ctx, tenantID, *req.VenueID)
		if err != nil {
			return nil, fmt.Errorf("failed to check venue: %w", err)
		}
		if venue == nil {
			return nil, ErrVenueNotFound
		}
		event.VenueID = *req.VenueID
	}
	if req.HeadlinerID != nil {
		event.HeadlinerID = *req.HeadlinerID
	}
	if req.UndercardArtists != nil {
		event.UndercardArtists = *req.UndercardArtists
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.StartTime != nil {
		event.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityEventUpdated,
		SubjectType: "event",
		SubjectID:   event.ID,
	})
	return event, nil
}

func (s *eventService) PublishEvent(ctx context.Context, tenantID, actorID, id string) (*domain.Event, error) {
	event, err := s.GetEvent(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := event.Publish(); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityEventPublished,
		SubjectType: "event",
		SubjectID:   event.ID,
		Metadata:    map[string]string{"slug": event.Slug},
	})
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, tenantID, actorID, id string) error {
	if _, err := s.GetEvent(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityEventDeleted,
		SubjectType: "event",
		SubjectID:   id,
	})
	return nil
}
