package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type postgresDraftRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresDraftRepository(pool *pgxpool.Pool) DraftRepository {
	return &postgresDraftRepository{pool: pool}
}

// Upsert persists the whole draft, tiers included, as a JSONB snapshot.
// Drafts are working copies, not queryable entities, so a single row per
// draft is enough.
func (r *postgresDraftRepository) Upsert(ctx context.Context, draft *domain.Draft) error {
	tiers, err := json.Marshal(draft.TicketTiers)
	if err != nil {
		return fmt.Errorf("failed to marshal draft tiers: %w", err)
	}

	query := `
		INSERT INTO event_drafts (id, tenant_id, user_id, event_id, title, description,
		                          start_time, end_time, venue_id, headliner_id,
		                          undercard_artists, image_url, venue_capacity, tiers,
		                          phase, seed_generation, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			event_id = EXCLUDED.event_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			venue_id = EXCLUDED.venue_id,
			headliner_id = EXCLUDED.headliner_id,
			undercard_artists = EXCLUDED.undercard_artists,
			image_url = EXCLUDED.image_url,
			venue_capacity = EXCLUDED.venue_capacity,
			tiers = EXCLUDED.tiers,
			phase = EXCLUDED.phase,
			seed_generation = EXCLUDED.seed_generation,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query,
		draft.ID, draft.TenantID, draft.UserID, draft.EventID, draft.Title,
		draft.Description, draft.StartTime, draft.EndTime, draft.VenueID,
		draft.HeadlinerID, draft.UndercardArtists, draft.ImageURL,
		draft.VenueCapacity, tiers, draft.Phase, draft.SeedGeneration,
		draft.Version, draft.CreatedAt, draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}
	return nil
}

func (r *postgresDraftRepository) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := `
		SELECT id, tenant_id, user_id, event_id, COALESCE(title, ''),
		       COALESCE(description, ''), start_time, end_time,
		       COALESCE(venue_id, ''), COALESCE(headliner_id, ''),
		       undercard_artists, COALESCE(image_url, ''), venue_capacity,
		       tiers, phase, seed_generation, version, created_at, updated_at
		FROM event_drafts
		WHERE id = $1
	`
	draft := &domain.Draft{}
	var tiers []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&draft.ID, &draft.TenantID, &draft.UserID, &draft.EventID, &draft.Title,
		&draft.Description, &draft.StartTime, &draft.EndTime, &draft.VenueID,
		&draft.HeadlinerID, &draft.UndercardArtists, &draft.ImageURL,
		&draft.VenueCapacity, &tiers, &draft.Phase, &draft.SeedGeneration,
		&draft.Version, &draft.CreatedAt, &draft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	if len(tiers) > 0 {
		if err := json.Unmarshal(tiers, &draft.TicketTiers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal draft tiers: %w", err)
		}
	}
	return draft, nil
}

func (r *postgresDraftRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM event_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
