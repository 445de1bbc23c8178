package di

import (
	"github.com/godspeedtalent/force-majeure-ticketing/internal/activity"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/handler"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/repository"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/service"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/worker"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/config"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/database"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/kafka"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/logger"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/redis"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

// ContainerConfig holds the external dependencies needed to build the
// container. Redis and Kafka are optional; the container degrades to
// database-only paths when they are nil.
type ContainerConfig struct {
	DB       *database.PostgresDB
	Redis    *redis.Client
	Producer *kafka.Producer
	Config   *config.Config
	Logger   *logger.Logger
}

// Container wires repositories, services and handlers
type Container struct {
	// Repositories
	VenueRepo    repository.VenueRepository
	EventRepo    repository.EventRepository
	TierRepo     repository.TierRepository
	DraftStore   repository.DraftStore
	DraftRepo    repository.DraftRepository
	ActivityRepo repository.ActivityRepository

	// Services
	Recorder        activity.Recorder
	VenueService    service.VenueService
	EventService    service.EventService
	TierService     service.TierService
	DraftService    service.DraftService
	ActivityService service.ActivityService

	// Handlers
	HealthHandler   *handler.HealthHandler
	VenueHandler    *handler.VenueHandler
	EventHandler    *handler.EventHandler
	TierHandler     *handler.TierHandler
	DraftHandler    *handler.DraftHandler
	ActivityHandler *handler.ActivityHandler

	// Workers
	AutosaveWorker *worker.AutosaveWorker
}

// NewContainer builds the full dependency graph
func NewContainer(cfg ContainerConfig) *Container {
	c := &Container{}
	pool := cfg.DB.Pool()
	tiering := cfg.Config.Tiering

	// Repositories
	c.VenueRepo = repository.NewPostgresVenueRepository(pool)
	if cfg.Redis != nil {
		c.VenueRepo = repository.NewCachedVenueRepository(c.VenueRepo, cfg.Redis, tiering.VenueCacheTTL)
	}
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.TierRepo = repository.NewPostgresTierRepository(pool)
	c.DraftRepo = repository.NewPostgresDraftRepository(pool)
	c.ActivityRepo = repository.NewPostgresActivityRepository(pool)
	if cfg.Redis != nil {
		c.DraftStore = repository.NewRedisDraftStore(cfg.Redis, tiering.DraftTTL)
	} else {
		c.DraftStore = repository.NewDBDraftStore(c.DraftRepo)
	}

	// Activity recorder
	switch {
	case cfg.Producer != nil:
		c.Recorder = activity.NewKafkaRecorder(cfg.Producer, c.ActivityRepo, cfg.Config.Kafka.ActivityTopic, cfg.Logger)
	default:
		c.Recorder = activity.NewDBRecorder(c.ActivityRepo, cfg.Logger)
	}

	// Services
	c.VenueService = service.NewVenueService(c.VenueRepo, c.Recorder)
	c.EventService = service.NewEventService(c.EventRepo, c.VenueRepo, c.Recorder)
	c.TierService = service.NewTierService(c.TierRepo, c.EventRepo, c.Recorder)
	c.ActivityService = service.NewActivityService(c.ActivityRepo)
	c.DraftService = service.NewDraftService(
		c.DraftStore, c.DraftRepo, c.EventRepo, c.TierRepo, c.VenueService,
		c.Recorder,
		service.DraftServiceConfig{
			SeedPolicy:           domain.SeedPolicy(tiering.SeedPolicy),
			DefaultVenueCapacity: tiering.DefaultVenueCapacity,
		},
		cfg.Logger,
	)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(cfg.DB, cfg.Redis)
	c.VenueHandler = handler.NewVenueHandler(c.VenueService)
	c.EventHandler = handler.NewEventHandler(c.EventService, c.TierService)
	c.TierHandler = handler.NewTierHandler(c.TierService)
	c.DraftHandler = handler.NewDraftHandler(c.DraftService)
	c.ActivityHandler = handler.NewActivityHandler(c.ActivityService)

	// Workers
	c.AutosaveWorker = worker.NewAutosaveWorker(
		worker.AutosaveConfig{FlushInterval: tiering.AutosaveInterval},
		c.DraftStore, c.DraftRepo, cfg.Logger,
	)

	return c
}
