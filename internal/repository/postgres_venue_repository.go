package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type postgresVenueRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &postgresVenueRepository{pool: pool}
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	now := time.Now()
	venue.CreatedAt = now
	venue.UpdatedAt = now

	query := `
		INSERT INTO venues (id, tenant_id, name, address, city, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		venue.ID, venue.TenantID, venue.Name, venue.Address,
		venue.City, venue.Capacity, venue.CreatedAt, venue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}
	return nil
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Venue, error) {
	query := `
		SELECT id, tenant_id, name, COALESCE(address, ''), COALESCE(city, ''),
		       capacity, created_at, updated_at
		FROM venues
		WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL
	`
	venue := &domain.Venue{}
	err := r.pool.QueryRow(ctx, query, id, tenantID).Scan(
		&venue.ID, &venue.TenantID, &venue.Name, &venue.Address,
		&venue.City, &venue.Capacity, &venue.CreatedAt, &venue.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

func (r *postgresVenueRepository) List(ctx context.Context, tenantID, city string, limit, offset int) ([]*domain.Venue, int64, error) {
	countQuery := `
		SELECT COUNT(*) FROM venues
		WHERE tenant_id = $1 AND deleted_at IS NULL AND ($2 = '' OR city = $2)
	`
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, tenantID, city).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count venues: %w", err)
	}

	query := `
		SELECT id, tenant_id, name, COALESCE(address, ''), COALESCE(city, ''),
		       capacity, created_at, updated_at
		FROM venues
		WHERE tenant_id = $1 AND deleted_at IS NULL AND ($2 = '' OR city = $2)
		ORDER BY name
		LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, tenantID, city, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		venue := &domain.Venue{}
		if err := rows.Scan(
			&venue.ID, &venue.TenantID, &venue.Name, &venue.Address,
			&venue.City, &venue.Capacity, &venue.CreatedAt, &venue.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	return venues, total, rows.Err()
}

func (r *postgresVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	venue.UpdatedAt = time.Now()

	query := `
		UPDATE venues
		SET name = $1, address = $2, city = $3, capacity = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7 AND deleted_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query,
		venue.Name, venue.Address, venue.City, venue.Capacity,
		venue.UpdatedAt, venue.ID, venue.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venue not found: %s", venue.ID)
	}
	return nil
}

func (r *postgresVenueRepository) Delete(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE venues SET deleted_at = $1
		WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venue not found: %s", id)
	}
	return nil
}
