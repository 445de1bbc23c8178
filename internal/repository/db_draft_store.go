package repository

import (
	"context"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

// dbDraftStore backs the draft store directly with the durable repository
// for deployments without Redis. Every save is already durable, so dirty
// tracking is a no-op and the autosave worker has nothing to flush.
type dbDraftStore struct {
	repo DraftRepository
}

func NewDBDraftStore(repo DraftRepository) DraftStore {
	return &dbDraftStore{repo: repo}
}

func (s *dbDraftStore) Get(ctx context.Context, id string) (*domain.Draft, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *dbDraftStore) Save(ctx context.Context, draft *domain.Draft) error {
	draft.MarkSaved()
	return s.repo.Upsert(ctx, draft)
}

func (s *dbDraftStore) SaveIfVersion(ctx context.Context, draft *domain.Draft, expected int) (bool, error) {
	current, err := s.repo.GetByID(ctx, draft.ID)
	if err != nil {
		return false, err
	}
	if current != nil && current.Version != expected {
		return false, nil
	}
	draft.MarkSaved()
	return true, s.repo.Upsert(ctx, draft)
}

func (s *dbDraftStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *dbDraftStore) DirtyIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *dbDraftStore) ClearDirty(ctx context.Context, ids ...string) error {
	return nil
}

func (s *dbDraftStore) ClearDirtyIfVersion(ctx context.Context, id string, expected int) (bool, error) {
	return true, nil
}
