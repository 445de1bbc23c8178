package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/activity"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/logger"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
)

// selectVenueSaveRetries bounds how often the capacity apply re-reads the
// draft after losing a version race to a concurrent edit.
const selectVenueSaveRetries = 3

// DraftServiceConfig carries the seeding and fallback settings.
type DraftServiceConfig struct {
	SeedPolicy           domain.SeedPolicy
	DefaultVenueCapacity int
}

type draftService struct {
	store    repository.DraftStore
	drafts   repository.DraftRepository
	events   repository.EventRepository
	tiers    repository.TierRepository
	venues   VenueService
	recorder activity.Recorder
	cfg      DraftServiceConfig
	log      *logger.Logger
}

func NewDraftService(
	store repository.DraftStore,
	drafts repository.DraftRepository,
	events repository.EventRepository,
	tiers repository.TierRepository,
	venues VenueService,
	recorder activity.Recorder,
	cfg DraftServiceConfig,
	log *logger.Logger,
) DraftService {
	if !cfg.SeedPolicy.IsValid() {
		cfg.SeedPolicy = domain.SeedPolicySingle
	}
	if cfg.DefaultVenueCapacity <= 0 {
		cfg.DefaultVenueCapacity = 100
	}
	return &draftService{
		store:    store,
		drafts:   drafts,
		events:   events,
		tiers:    tiers,
		venues:   venues,
		recorder: recorder,
		cfg:      cfg,
		log:      log,
	}
}

func (s *draftService) CreateDraft(ctx context.Context, tenantID, userID string, req *dto.CreateDraftRequest) (*domain.Draft, error) {
	draft := domain.NewDraft(uuid.New().String(), tenantID, userID)

	if req != nil && req.EventID != nil {
		if err := s.seedFromEvent(ctx, draft, tenantID, *req.EventID); err != nil {
			return nil, err
		}
	}

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// seedFromEvent pre-fills the draft from an existing event for edit mode.
// Persisted tiers come in as-is so order protection carries over.
func (s *draftService) seedFromEvent(ctx context.Context, draft *domain.Draft, tenantID, eventID string) error {
	event, err := s.events.GetByID(ctx, tenantID, eventID)
	if err != nil {
		return fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}
	tiers, err := s.tiers.GetByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load event tiers: %w", err)
	}

	draft.EventID = &event.ID
	draft.Title = event.Title
	draft.Description = event.Description
	draft.StartTime = event.StartTime
	draft.EndTime = event.EndTime
	draft.HeadlinerID = event.HeadlinerID
	draft.UndercardArtists = event.UndercardArtists
	draft.ImageURL = event.ImageURL
	draft.VenueID = event.VenueID
	draft.TicketTiers = tiers
	draft.Phase = domain.DraftPhaseEditing

	capacity, err := s.venues.GetVenueCapacity(ctx, tenantID, event.VenueID)
	if err != nil {
		s.log.Warn("venue capacity lookup failed, using default",
			zap.String("venue_id", event.VenueID),
			zap.Int("default_capacity", s.cfg.DefaultVenueCapacity),
			zap.Error(err))
		capacity = s.cfg.DefaultVenueCapacity
	}
	draft.VenueCapacity = capacity
	draft.MarkDirty()
	return nil
}

// getOwned loads a draft from the store, falling back to the durable copy,
// and verifies tenant ownership.
func (s *draftService) getOwned(ctx context.Context, tenantID, id string) (*domain.Draft, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft == nil {
		draft, err = s.drafts.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load draft: %w", err)
		}
	}
	if draft == nil || draft.TenantID != tenantID {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *draftService) GetDraft(ctx context.Context, tenantID, id string) (*domain.Draft, error) {
	return s.getOwned(ctx, tenantID, id)
}

func (s *draftService) UpdateDraft(ctx context.Context, tenantID, id string, req *dto.UpdateDraftRequest) (*domain.Draft, error) {
	draft, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		draft.Title = *req.Title
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.HeadlinerID != nil {
		draft.HeadlinerID = *req.HeadlinerID
	}
	if req.UndercardArtists != nil {
		draft.UndercardArtists = *req.UndercardArtists
	}
	if req.ImageURL != nil {
		draft.ImageURL = *req.ImageURL
	}
	if req.StartTime != nil {
		draft.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		draft.EndTime = req.EndTime
	}
	draft.MarkDirty()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// SelectVenue records the venue choice and resolves its capacity. The seed
// generation issued before the lookup guards against a concurrent
// re-selection: a stale resolution is dropped on the floor.
func (s *draftService) SelectVenue(ctx context.Context, tenantID, id, venueID string) (*SelectVenueResult, error) {
	draft, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	generation := draft.SelectVenue(venueID)
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	var warning string
	capacity, err := s.venues.GetVenueCapacity(ctx, tenantID, venueID)
	if err != nil {
		s.log.Warn("venue capacity lookup failed, using default",
			zap.String("draft_id", id),
			zap.String("venue_id", venueID),
			zap.Int("default_capacity", s.cfg.DefaultVenueCapacity),
			zap.Error(err))
		capacity = s.cfg.DefaultVenueCapacity
		warning = fmt.Sprintf("venue capacity unavailable, defaulting to %d", capacity)
	}

	// Reload before applying: the draft may have changed while the
	// lookup was in flight. The version-guarded save retries on a lost
	// race so a concurrent edit is never overwritten.
	for attempt := 0; attempt < selectVenueSaveRetries; attempt++ {
		draft, err = s.getOwned(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if generation != draft.SeedGeneration {
			// Venue changed again mid-lookup; this capacity is stale
			break
		}
		expected := draft.Version
		draft.ApplyCapacity(generation, capacity, domain.SeedTiers(s.cfg.SeedPolicy, capacity))
		saved, err := s.store.SaveIfVersion(ctx, draft, expected)
		if err != nil {
			return nil, fmt.Errorf("failed to save draft: %w", err)
		}
		if saved {
			break
		}
	}

	return &SelectVenueResult{Draft: draft, Warning: warning}, nil
}

func (s *draftService) AddTier(ctx context.Context, tenantID, id string) (*domain.Draft, error) {
	return s.mutate(ctx, tenantID, id, func(d *domain.Draft) error {
		return d.AddTier()
	})
}

func (s *draftService) UpdateTier(ctx context.Context, tenantID, id string, index int, req *dto.UpdateTierRequest) (*domain.Draft, error) {
	return s.mutate(ctx, tenantID, id, func(d *domain.Draft) error {
		return d.UpdateTier(index, req.ToPatch())
	})
}

func (s *draftService) RemoveTier(ctx context.Context, tenantID, id string, index int) (*domain.Draft, error) {
	return s.mutate(ctx, tenantID, id, func(d *domain.Draft) error {
		return d.RemoveTier(index)
	})
}

func (s *draftService) ResetDraft(ctx context.Context, tenantID, id string) (*domain.Draft, error) {
	return s.mutate(ctx, tenantID, id, func(d *domain.Draft) error {
		d.Reset()
		return nil
	})
}

func (s *draftService) mutate(ctx context.Context, tenantID, id string, fn func(*domain.Draft) error) (*domain.Draft, error) {
	draft, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

// SubmitDraft turns the draft into a persisted event. Any persistence error
// is returned verbatim and the draft is left untouched so the user loses
// nothing. Only a fully successful submit consumes the draft.
func (s *draftService) SubmitDraft(ctx context.Context, tenantID, actorID, id string) (*domain.Event, error) {
	draft, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if draft.IsEditMode() {
		event, err := s.events.GetByID(ctx, tenantID, *draft.EventID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrEventNotFound
		}
		applyDraftToEvent(draft, event)
		if err := s.events.UpdateWithTiers(ctx, event, draft.TicketTiers); err != nil {
			return nil, err
		}
		s.finishSubmit(ctx, tenantID, actorID, id, event)
		return event, nil
	}

	slug, err := s.uniqueSlug(ctx, tenantID, draft.Title)
	if err != nil {
		return nil, err
	}
	event := &domain.Event{
		TenantID: tenantID,
		Slug:     slug,
		Status:   domain.EventStatusDraft,
	}
	applyDraftToEvent(draft, event)
	if err := s.events.CreateWithTiers(ctx, event, draft.TicketTiers); err != nil {
		return nil, err
	}
	s.finishSubmit(ctx, tenantID, actorID, id, event)
	return event, nil
}

func applyDraftToEvent(draft *domain.Draft, event *domain.Event) {
	event.Title = draft.Title
	event.Description = draft.Description
	event.VenueID = draft.VenueID
	event.HeadlinerID = draft.HeadlinerID
	event.UndercardArtists = draft.UndercardArtists
	event.ImageURL = draft.ImageURL
	event.StartTime = draft.StartTime
	event.EndTime = draft.EndTime
}

// finishSubmit is the post-success cleanup: record activity and consume the
// draft. Failures here are logged, never surfaced, the event is already
// durable.
func (s *draftService) finishSubmit(ctx context.Context, tenantID, actorID, draftID string, event *domain.Event) {
	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityDraftSubmitted,
		SubjectType: "event",
		SubjectID:   event.ID,
		Metadata:    map[string]string{"draft_id": draftID, "slug": event.Slug},
	})
	if err := s.store.Delete(ctx, draftID); err != nil {
		s.log.Warn("failed to delete draft from store after submit",
			zap.String("draft_id", draftID), zap.Error(err))
	}
	if err := s.drafts.Delete(ctx, draftID); err != nil {
		s.log.Warn("failed to delete draft after submit",
			zap.String("draft_id", draftID), zap.Error(err))
	}
}

// uniqueSlug mirrors the event service's slug allocation for drafts that
// become new events.
func (s *draftService) uniqueSlug(ctx context.Context, tenantID, title string) (string, error) {
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

func (s *draftService) DeleteDraft(ctx context.Context, tenantID, id string) error {
	if _, err := s.getOwned(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, id)
}
