package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/redis"
)

const (
	draftKeyPrefix = "draft:"
	draftDirtySet  = "draft:dirty"
)

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) DraftStore {
	return &redisDraftStore{client: client, ttl: ttl}
}

func draftKey(id string) string {
	return draftKeyPrefix + id
}

func (s *redisDraftStore) Get(ctx context.Context, id string) (*domain.Draft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft domain.Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *redisDraftStore) Save(ctx context.Context, draft *domain.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if draft.Dirty {
		if err := s.client.SAdd(ctx, draftDirtySet, draft.ID).Err(); err != nil {
			return fmt.Errorf("failed to mark draft dirty: %w", err)
		}
	}
	return nil
}

func (s *redisDraftStore) SaveIfVersion(ctx context.Context, draft *domain.Draft, expected int) (bool, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return false, fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := draftKey(draft.ID)
	saved := false
	err = s.client.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var current domain.Draft
			if err := json.Unmarshal([]byte(raw), &current); err != nil {
				return fmt.Errorf("failed to unmarshal draft: %w", err)
			}
			if current.Version != expected {
				return nil
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			if draft.Dirty {
				pipe.SAdd(ctx, draftDirtySet, draft.ID)
			}
			return nil
		})
		if err == nil {
			saved = true
		}
		return err
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		// Key changed under WATCH; the caller reloads and retries.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to save draft: %w", err)
	}
	return saved, nil
}

// clearDirtyScript drops the dirty marker only while the stored draft
// still carries the version the flusher read. Checking and removing in
// one script closes the gap where an edit lands between the two.
const clearDirtyScript = `
local raw = redis.call('GET', KEYS[1])
if raw then
  local doc = cjson.decode(raw)
  if tonumber(doc['version']) ~= tonumber(ARGV[2]) then
    return 0
  end
end
redis.call('SREM', KEYS[2], ARGV[1])
return 1
`

func (s *redisDraftStore) ClearDirtyIfVersion(ctx context.Context, id string, expected int) (bool, error) {
	res, err := s.client.Eval(ctx, clearDirtyScript,
		[]string{draftKey(id), draftDirtySet}, id, expected).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return res == 1, nil
}

func (s *redisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if err := s.client.SRem(ctx, draftDirtySet, id).Err(); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return nil
}

func (s *redisDraftStore) DirtyIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, draftDirtySet).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list dirty drafts: %w", err)
	}
	return ids, nil
}

func (s *redisDraftStore) ClearDirty(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := s.client.SRem(ctx, draftDirtySet, members...).Err(); err != nil {
		return fmt.Errorf("failed to clear dirty drafts: %w", err)
	}
	return nil
}
