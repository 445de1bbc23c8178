package service

import (
	"context"
	"fmt"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
)

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) ListActivity(ctx context.Context, tenantID string, filter *dto.ActivityListFilter) ([]*domain.ActivityRecord, int64, error) {
	filter.SetDefaults()
	records, total, err := s.repo.ListByTenant(ctx, tenantID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity: %w", err)
	}
	return records, total, nil
}
