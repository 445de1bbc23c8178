package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/kafka"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/logger"
)

// Recorder publishes activity records. Recording is best-effort: failures
// are logged, never returned, so a broken broker cannot fail a user request.
type Recorder interface {
	Record(ctx context.Context, record *domain.ActivityRecord)
}

type kafkaRecorder struct {
	producer *kafka.Producer
	repo     repository.ActivityRepository
	topic    string
	log      *logger.Logger
}

// NewKafkaRecorder writes each record to the activity log table and publishes
// it to the activity topic keyed by tenant, so per-tenant ordering holds.
func NewKafkaRecorder(producer *kafka.Producer, repo repository.ActivityRepository, topic string, log *logger.Logger) Recorder {
	return &kafkaRecorder{
		producer: producer,
		repo:     repo,
		topic:    topic,
		log:      log,
	}
}

func (r *kafkaRecorder) Record(ctx context.Context, record *domain.ActivityRecord) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := r.repo.Insert(ctx, record); err != nil {
		r.log.Warn("failed to persist activity record",
			zap.String("action", record.Action),
			zap.String("subject_id", record.SubjectID),
			zap.Error(err))
	}

	payload, err := json.Marshal(record)
	if err != nil {
		r.log.Warn("failed to marshal activity record",
			zap.String("action", record.Action),
			zap.Error(err))
		return
	}

	if err := r.producer.Publish(ctx, r.topic, record.TenantID, payload); err != nil {
		r.log.Warn("failed to publish activity record",
			zap.String("action", record.Action),
			zap.String("topic", r.topic),
			zap.Error(err))
	}
}

type dbRecorder struct {
	repo repository.ActivityRepository
	log  *logger.Logger
}

// NewDBRecorder records activity to Postgres only, for deployments without
// a Kafka broker.
func NewDBRecorder(repo repository.ActivityRepository, log *logger.Logger) Recorder {
	return &dbRecorder{repo: repo, log: log}
}

func (r *dbRecorder) Record(ctx context.Context, record *domain.ActivityRecord) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := r.repo.Insert(ctx, record); err != nil {
		r.log.Warn("failed to persist activity record",
			zap.String("action", record.Action),
			zap.Error(err))
	}
}

type noopRecorder struct{}

// NewNoopRecorder is used in tests and when activity logging is disabled.
func NewNoopRecorder() Recorder {
	return noopRecorder{}
}

func (noopRecorder) Record(context.Context, *domain.ActivityRecord) {}
