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
	ErrVenueNotFound = errors.New("venue not found")
)

type venueService struct {
	repo     repository.VenueRepository
	recorder activity.Recorder
}

func NewVenueService(repo repository.VenueRepository, recorder activity.Recorder) VenueService {
	return &venueService{repo: repo, recorder: recorder}
}

func (s *venueService) CreateVenue(ctx context.Context, tenantID, actorID string, req *dto.CreateVenueRequest) (*domain.Venue, error) {
	venue := &domain.Venue{
		TenantID: tenantID,
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Capacity: req.Capacity,
	}
	if err := venue.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityVenueCreated,
		SubjectType: "venue",
		SubjectID:   venue.ID,
		Metadata:    map[string]string{"name": venue.Name},
	})
	return venue, nil
}

func (s *venueService) GetVenue(ctx context.Context, tenantID, id string) (*domain.Venue, error) {
	venue, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context, tenantID string, filter *dto.VenueListFilter) ([]*domain.Venue, int64, error) {
	filter.SetDefaults()
	return s.repo.List(ctx, tenantID, filter.City, filter.Limit, filter.Offset)
}

func (s *venueService) UpdateVenue(ctx context.Context, tenantID, actorID, id string, req *dto.UpdateVenueRequest) (*domain.Venue, error) {
	venue, err := s.GetVenue(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	if req.City != nil {
		venue.City = *req.City
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}

	if err := venue.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityVenueUpdated,
		SubjectType: "venue",
		SubjectID:   venue.ID,
	})
	return venue, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, tenantID, actorID, id string) error {
	if _, err := s.GetVenue(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, &domain.ActivityRecord{
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      domain.ActivityVenueDeleted,
		SubjectType: "venue",
		SubjectID:   id,
	})
	return nil
}

func (s *venueService) GetVenueCapacity(ctx context.Context, tenantID, venueID string) (int, error) {
	venue, err := s.repo.GetByID(ctx, tenantID, venueID)
	if err != nil {
		return 0, fmt.Errorf("failed to get venue capacity: %w", err)
	}
	if venue == nil {
		return 0, ErrVenueNotFound
	}
	return venue.Capacity, nil
}
