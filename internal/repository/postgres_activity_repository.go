package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type postgresActivityRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &postgresActivityRepository{pool: pool}
}

func (r *postgresActivityRepository) Insert(ctx context.Context, record *domain.ActivityRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal activity metadata: %w", err)
	}

	query := `
		INSERT INTO activity_log (id, tenant_id, actor_id, action, subject_type,
		                          subject_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.pool.Exec(ctx, query,
		record.ID, record.TenantID, record.ActorID, record.Action,
		record.SubjectType, record.SubjectID, metadata, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity record: %w", err)
	}
	return nil
}

func (r *postgresActivityRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*domain.ActivityRecord, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM activity_log WHERE tenant_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity records: %w", err)
	}

	query := `
		SELECT id, tenant_id, actor_id, action, subject_type, subject_id,
		       metadata, created_at
		FROM activity_log
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity records: %w", err)
	}
	defer rows.Close()

	var records []*domain.ActivityRecord
	for rows.Next() {
		record := &domain.ActivityRecord{}
		var metadata []byte
		if err := rows.Scan(
			&record.ID, &record.TenantID, &record.ActorID, &record.Action,
			&record.SubjectType, &record.SubjectID, &metadata, &record.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity record: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal activity metadata: %w", err)
			}
		}
		records = append(records, record)
	}
	return records, total, rows.Err()
}
