package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/activity"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
)

var (
	ErrTierNotFound = errors.New("ticket tier not found")
)

type tierService struct {
	tiers    repository.TierRepository
	events   repository.EventRepository
	recorder activity.Recorder
}

func NewTierService(tiers repository.TierRepository, events repository.EventRepository, recorder activity.Recorder) TierService {
	return &tierService{
		tiers:    tiers,
		events:   events,
		recorder: recorder,
	}
}

func (s *tierService) CreateTier(ctx context.Context, tenantID, actorID, eventID string, req *dto.CreateTierRequest) (*domain.TicketTier, error) {
	event, err := s.events.GetByID(ctx, tenantID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	existing, err := s.tiers.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiers: %w", err)
	}
	if len(existing) >= domain.MaxTiersPerEvent {
		return nil, domain.ErrTierLimit
	}

	tier := req.ToTier()
	tier.EventID = eventID
	tier.SortOrder = len(existing)
	if err := s.tiers.Create(ctx, &tier); err != nil {
		return nil, fmt.Errorf("failed to create tier: %w", err)
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityTierCreated,
		SubjectType: "tier",
		SubjectID:   tier.ID,
		Metadata:    map[string]string{"event_id": eventID, "name": tier.Name},
	})
	return &tier, nil
}

func (s *tierService) GetTiers(ctx context.Context, tenantID, eventID string) (domain.TierList, error) {
	event, err := s.events.GetByID(ctx, tenantID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return s.tiers.GetByEventID(ctx, eventID)
}

// getTenantTier loads a tier and verifies its event belongs to the tenant.
func (s *tierService) getTenantTier(ctx context.Context, tenantID, tierID string) (*domain.TicketTier, error) {
	tier, err := s.tiers.GetByID(ctx, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}
	if tier == nil {
		return nil, ErrTierNotFound
	}
	event, err := s.events.GetByID(ctx, tenantID, tier.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if event == nil {
		return nil, ErrTierNotFound
	}
	return tier, nil
}

func (s *tierService) UpdateTier(ctx context.Context, tenantID, actorID, tierID string, req *dto.UpdateTierRequest) (*domain.TicketTier, error) {
	tier, err := s.getTenantTier(ctx, tenantID, tierID)
	if err != nil {
		return nil, err
	}

	// Route the patch through the list update so price and quantity
	// clamps apply uniformly.
	updated, err := domain.TierList{*tier}.Update(0, req.ToPatch())
	if err != nil {
		return nil, err
	}
	result := updated[0]
	result.SortOrder = tier.SortOrder

	if err := s.tiers.Update(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityTierUpdated,
		SubjectType: "tier",
		SubjectID:   tierID,
	})
	return &result, nil
}

func (s *tierService) DeleteTier(ctx context.Context, tenantID, actorID, tierID string) error {
	tier, err := s.getTenantTier(ctx, tenantID, tierID)
	if err != nil {
		return err
	}
	if tier.HasOrders {
		return domain.ErrTierHasOrders
	}

	siblings, err := s.tiers.GetByEventID(ctx, tier.EventID)
	if err != nil {
		return fmt.Errorf("failed to load tiers: %w", err)
	}
	if len(siblings) <= domain.MinTiersPerEvent {
		return domain.ErrTierMinimum
	}

	if err := s.tiers.Delete(ctx, tierID); err != nil {
		return err
	}

	// Close the sort-order gap left by the removed tier.
	next := 0
	for i := range siblings {
		if siblings[i].ID == tierID {
			continue
		}
		if siblings[i].SortOrder != next {
			siblings[i].SortOrder = next
			if err := s.tiers.Update(ctx, &siblings[i]); err != nil {
				return fmt.Errorf("failed to reorder tiers: %w", err)
			}
		}
		next++
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityTierDeleted,
		SubjectType: "tier",
		SubjectID:   tierID,
		Metadata:    map[string]string{"event_id": tier.EventID},
	})
	return nil
}
