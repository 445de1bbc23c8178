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

type postgresEventRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEventRepository(pool *pgxpool.Pool) EventRepository {
	return &postgresEventRepository{pool: pool}
}

const eventColumns = `
	id, tenant_id, slug, title, COALESCE(description, ''), venue_id,
	COALESCE(headliner_id, ''), undercard_artists, COALESCE(image_url, ''),
	start_time, end_time, status, published_at, created_at, updated_at
`

const insertEventQuery = `
	INSERT INTO events (id, tenant_id, slug, title, description, venue_id,
	                    headliner_id, undercard_artists, image_url, start_time,
	                    end_time, status, published_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

const updateEventQuery = `
	UPDATE events
	SET title = $1, description = $2, venue_id = $3, headliner_id = $4,
	    undercard_artists = $5, image_url = $6, start_time = $7, end_time = $8,
	    status = $9, published_at = $10, updated_at = $11
	WHERE id = $12 AND tenant_id = $13 AND deleted_at IS NULL
`

const insertTierQuery = `
	INSERT INTO ticket_tiers (id, event_id, name, description, price_cents, quantity,
	                          hide_until_previous_sold_out, has_orders, sort_order,
	                          created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func scanEvent(row pgx.Row, event *domain.Event) error {
	return row.Scan(
		&event.ID, &event.TenantID, &event.Slug, &event.Title, &event.Description,
		&event.VenueID, &event.HeadlinerID, &event.UndercardArtists, &event.ImageURL,
		&event.StartTime, &event.EndTime, &event.Status, &event.PublishedAt,
		&event.CreatedAt, &event.UpdatedAt,
	)
}

func prepareEventForInsert(event *domain.Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}
}

func eventInsertArgs(event *domain.Event) []any {
	return []any{
		event.ID, event.TenantID, event.Slug, event.Title, event.Description,
		event.VenueID, event.HeadlinerID, event.UndercardArtists, event.ImageURL,
		event.StartTime, event.EndTime, event.Status, event.PublishedAt,
		event.CreatedAt, event.UpdatedAt,
	}
}

func (r *postgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	prepareEventForInsert(event)
	if _, err := r.pool.Exec(ctx, insertEventQuery, eventInsertArgs(event)...); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// CreateWithTiers writes the event and its tier list atomically. Draft
// submission relies on the whole write failing or succeeding as one unit.
func (r *postgresEventRepository) CreateWithTiers(ctx context.Context, event *domain.Event, tiers domain.TierList) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	prepareEventForInsert(event)
	if _, err := tx.Exec(ctx, insertEventQuery, eventInsertArgs(event)...); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := insertTiersTx(ctx, tx, event.ID, tiers); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit event: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	event := &domain.Event{}
	if err := scanEvent(r.pool.QueryRow(ctx, query, id, tenantID), event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *postgresEventRepository) GetBySlug(ctx context.Context, tenantID, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	event := &domain.Event{}
	if err := scanEvent(r.pool.QueryRow(ctx, query, slug, tenantID), event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event by slug: %w", err)
	}
	return event, nil
}

func (r *postgresEventRepository) List(ctx context.Context, tenantID string, filter EventFilter) ([]*domain.Event, int64, error) {
	countQuery := `
		SELECT COUNT(*) FROM events
		WHERE tenant_id = $1 AND deleted_at IS NULL
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR venue_id = $3)
	`
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, tenantID, filter.Status, filter.VenueID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE tenant_id = $1 AND deleted_at IS NULL
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR venue_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query, tenantID, filter.Status, filter.VenueID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		if err := scanEvent(rows, event); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, total, rows.Err()
}

func (r *postgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	event.UpdatedAt = time.Now()

	tag, err := r.pool.Exec(ctx, updateEventQuery,
		event.Title, event.Description, event.VenueID, event.HeadlinerID,
		event.UndercardArtists, event.ImageURL, event.StartTime, event.EndTime,
		event.Status, event.PublishedAt, event.UpdatedAt, event.ID, event.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %s", event.ID)
	}
	return nil
}

// UpdateWithTiers replaces the event's tier list in the same transaction as
// the event update. Tiers with orders are preserved by the caller; here the
// incoming list is authoritative.
func (r *postgresEventRepository) UpdateWithTiers(ctx context.Context, event *domain.Event, tiers domain.TierList) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	event.UpdatedAt = time.Now()
	tag, err := tx.Exec(ctx, updateEventQuery,
		event.Title, event.Description, event.VenueID, event.HeadlinerID,
		event.UndercardArtists, event.ImageURL, event.StartTime, event.EndTime,
		event.Status, event.PublishedAt, event.UpdatedAt, event.ID, event.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %s", event.ID)
	}

	softDelete := `UPDATE ticket_tiers SET deleted_at = $1 WHERE event_id = $2 AND deleted_at IS NULL`
	if _, err := tx.Exec(ctx, softDelete, time.Now(), event.ID); err != nil {
		return fmt.Errorf("failed to clear ticket tiers: %w", err)
	}

	if err := insertTiersTx(ctx, tx, event.ID, tiers); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit event update: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) Delete(ctx context.Context, tenantID, id string) error {
	query := `UPDATE events SET deleted_at = $1 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %s", id)
	}
	return nil
}

func insertTiersTx(ctx context.Context, tx pgx.Tx, eventID string, tiers domain.TierList) error {
	now := time.Now()
	for i := range tiers {
		tier := &tiers[i]
		// Soft-deleted predecessors keep their row, so every insert gets a
		// fresh id to avoid colliding with a replaced tier.
		tier.ID = uuid.New().String()
		tier.EventID = eventID
		tier.SortOrder = i
		tier.CreatedAt = now
		tier.UpdatedAt = now

		_, err := tx.Exec(ctx, insertTierQuery,
			tier.ID, tier.EventID, tier.Name, tier.Description,
			tier.PriceCents, tier.Quantity, tier.HideUntilPreviousSoldOut,
			tier.HasOrders, tier.SortOrder, tier.CreatedAt, tier.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ticket tier: %w", err)
		}
	}
	return nil
}
