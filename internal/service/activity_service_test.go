package service

import (
	"context"
	"testing"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
)

func TestListActivityScopedToTenant(t *testing.T) {
	ctx := context.Background()
	repo := newFakeActivityRepo()
	repo.records = []*domain.ActivityRecord{
		{ID: "a-1", TenantID: testTenant, Action: domain.ActivityEventCreated},
		{ID: "a-2", TenantID: "tenant-2", Action: domain.ActivityEventDeleted},
		{ID: "a-3", TenantID: testTenant, Action: domain.ActivityDraftSubmitted},
	}
	svc := NewActivityService(repo)

	records, total, err := svc.ListActivity(ctx, testTenant, &dto.ActivityListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("expected 2 records for tenant, got %d (total %d)", len(records), total)
	}
	for _, r := range records {
		if r.TenantID != testTenant {
			t.Errorf("record %s leaked from tenant %s", r.ID, r.TenantID)
		}
	}
}

func TestListActivityPagination(t *testing.T) {
	ctx := context.Background()
	repo := newFakeActivityRepo()
	for i := 0; i < 5; i++ {
		repo.records = append(repo.records, &domain.ActivityRecord{
			ID: string(rune('a' + i)), TenantID: testTenant, Action: domain.ActivityTierUpdated,
		})
	}
	svc := NewActivityService(repo)

	records, total, err := svc.ListActivity(ctx, testTenant, &dto.ActivityListFilter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record on the last page, got %d", len(records))
	}
}
