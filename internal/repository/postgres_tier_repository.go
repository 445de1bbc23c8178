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

type postgresTierRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTierRepository(pool *pgxpool.Pool) TierRepository {
	return &postgresTierRepository{pool: pool}
}

const tierColumns = `
	id, event_id, name, COALESCE(description, ''), price_cents, quantity,
	hide_until_previous_sold_out, has_orders, sort_order, created_at, updated_at
`

func scanTier(row pgx.Row, tier *domain.TicketTier) error {
	return row.Scan(
		&tier.ID, &tier.EventID, &tier.Name, &tier.Description,
		&tier.PriceCents, &tier.Quantity, &tier.HideUntilPreviousSoldOut,
		&tier.HasOrders, &tier.SortOrder, &tier.CreatedAt, &tier.UpdatedAt,
	)
}

func (r *postgresTierRepository) Create(ctx context.Context, tier *domain.TicketTier) error {
	if tier.ID == "" {
		tier.ID = uuid.New().String()
	}
	now := time.Now()
	tier.CreatedAt = now
	tier.UpdatedAt = now

	query := `
		INSERT INTO ticket_tiers (id, event_id, name, description, price_cents, quantity,
		                          hide_until_previous_sold_out, has_orders, sort_order,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		tier.ID, tier.EventID, tier.Name, tier.Description,
		tier.PriceCents, tier.Quantity, tier.HideUntilPreviousSoldOut,
		tier.HasOrders, tier.SortOrder, tier.CreatedAt, tier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket tier: %w", err)
	}
	return nil
}

func (r *postgresTierRepository) GetByID(ctx context.Context, id string) (*domain.TicketTier, error) {
	query := `SELECT ` + tierColumns + ` FROM ticket_tiers WHERE id = $1 AND deleted_at IS NULL`

	tier := &domain.TicketTier{}
	if err := scanTier(r.pool.QueryRow(ctx, query, id), tier); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket tier: %w", err)
	}
	return tier, nil
}

func (r *postgresTierRepository) GetByEventID(ctx context.Context, eventID string) (domain.TierList, error) {
	query := `
		SELECT ` + tierColumns + `
		FROM ticket_tiers
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY sort_order
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket tiers: %w", err)
	}
	defer rows.Close()

	var tiers domain.TierList
	for rows.Next() {
		var tier domain.TicketTier
		if err := scanTier(rows, &tier); err != nil {
			return nil, fmt.Errorf("failed to scan ticket tier: %w", err)
		}
		tiers = append(tiers, tier)
	}
	return tiers, rows.Err()
}

func (r *postgresTierRepository) Update(ctx context.Context, tier *domain.TicketTier) error {
	tier.UpdatedAt = time.Now()

	query := `
		UPDATE ticket_tiers
		SET name = $1, description = $2, price_cents = $3, quantity = $4,
		    hide_until_previous_sold_out = $5, sort_order = $6, updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query,
		tier.Name, tier.Description, tier.PriceCents, tier.Quantity,
		tier.HideUntilPreviousSoldOut, tier.SortOrder, tier.UpdatedAt, tier.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ticket tier not found: %s", tier.ID)
	}
	return nil
}

func (r *postgresTierRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE ticket_tiers SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ticket tier not found: %s", id)
	}
	return nil
}
