package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/redis"
)

const venueKeyPrefix = "venue:"

// cachedVenueRepository is a read-through cache in front of the Postgres
// repository. Venue capacity is read on every draft venue selection, so the
// hot path should not hit the database.
type cachedVenueRepository struct {
	inner VenueRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedVenueRepository(inner VenueRepository, cache *redis.Client, ttl time.Duration) VenueRepository {
	return &cachedVenueRepository{inner: inner, cache: cache, ttl: ttl}
}

func venueKey(tenantID, id string) string {
	return venueKeyPrefix + tenantID + ":" + id
}

func (r *cachedVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	return r.inner.Create(ctx, venue)
}

func (r *cachedVenueRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Venue, error) {
	key := venueKey(tenantID, id)

	// Cache miss, corrupt entry and cache outage all fall through to the
	// database.
	if data, err := r.cache.Get(ctx, key).Result(); err == nil {
		var venue domain.Venue
		if err := json.Unmarshal([]byte(data), &venue); err == nil {
			return &venue, nil
		}
	}

	venue, err := r.inner.GetByID(ctx, tenantID, id)
	if err != nil || venue == nil {
		return venue, err
	}

	if data, err := json.Marshal(venue); err == nil {
		r.cache.Set(ctx, key, data, r.ttl)
	}
	return venue, nil
}

func (r *cachedVenueRepository) List(ctx context.Context, tenantID, city string, limit, offset int) ([]*domain.Venue, int64, error) {
	return r.inner.List(ctx, tenantID, city, limit, offset)
}

func (r *cachedVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	if err := r.inner.Update(ctx, venue); err != nil {
		return err
	}
	r.cache.Del(ctx, venueKey(venue.TenantID, venue.ID))
	return nil
}

func (r *cachedVenueRepository) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.inner.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	r.cache.Del(ctx, venueKey(tenantID, id))
	return nil
}
