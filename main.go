package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/di"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/config"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/database"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/kafka"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/logger"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/middleware"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/redis"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Ticketing Service...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection (optional - draft fast path and venue
	// cache fall back to Postgres if unavailable)
	var redisClient *redis.Client
	redisCfg := &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
	redisClient, err = redis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Redis connection failed (drafts served from database): %v", err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
	}

	// Initialize Kafka producer (optional - activity falls back to
	// database-only recording)
	var producer *kafka.Producer
	producerCfg := &kafka.ProducerConfig{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.Kafka.ClientID,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
	producer, err = kafka.NewProducer(ctx, producerCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Kafka connection failed (activity publishing disabled): %v", err))
		producer = nil
	} else {
		defer producer.Close()
		appLog.Info(fmt.Sprintf("Kafka connected (brokers: %v)", cfg.Kafka.Brokers))
	}

	// Build dependency injection container
	container := di.NewContainer(di.ContainerConfig{
		DB:       db,
		Redis:    redisClient,
		Producer: producer,
		Config:   cfg,
		Logger:   appLog,
	})

	// Start autosave worker
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go container.AutosaveWorker.Start(workerCtx)

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add OpenTelemetry tracing middleware if enabled
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// JWT middleware configuration
	jwtConfig := &middleware.JWTConfig{
		Secret: cfg.JWT.Secret,
		SkipPaths: []string{
			"/health",
			"/ready",
		},
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Venues endpoints - public read, authenticated write
		venues := v1.Group("/venues")
		{
			venues.GET("", container.VenueHandler.List)
			venues.GET("/:id", container.VenueHandler.Get)

			protected := venues.Group("")
			protected.Use(middleware.JWTMiddleware(jwtConfig))
			protected.Use(middleware.RequireRole("admin", "organizer"))
			{
				protected.POST("", container.VenueHandler.Create)
				protected.PUT("/:id", container.VenueHandler.Update)
				protected.DELETE("/:id", container.VenueHandler.Delete)
			}
		}

		// Events endpoints - public read, authenticated write
		events := v1.Group("/events")
		{
			events.GET("", container.EventHandler.List)
			events.GET("/id/:id", container.EventHandler.Get)
			events.GET("/:slug", container.EventHandler.GetBySlug)
			events.GET("/id/:id/tiers", container.TierHandler.ListByEvent)

			protected := events.Group("")
			protected.Use(middleware.JWTMiddleware(jwtConfig))
			protected.Use(middleware.RequireRole("admin", "organizer"))
			{
				protected.POST("", container.EventHandler.Create)
				protected.PUT("/id/:id", container.EventHandler.Update)
				protected.DELETE("/id/:id", container.EventHandler.Delete)
				protected.POST("/id/:id/publish", container.EventHandler.Publish)
				protected.POST("/id/:id/tiers", container.TierHandler.Create)
			}
		}

		// Tiers endpoints - for direct tier access
		tiers := v1.Group("/tiers")
		tiers.Use(middleware.JWTMiddleware(jwtConfig))
		tiers.Use(middleware.RequireRole("admin", "organizer"))
		{
			tiers.PUT("/:id", container.TierHandler.Update)
			tiers.DELETE("/:id", container.TierHandler.Delete)
		}

		// Drafts endpoints - all authenticated
		drafts := v1.Group("/drafts")
		drafts.Use(middleware.JWTMiddleware(jwtConfig))
		drafts.Use(middleware.RequireRole("admin", "organizer"))
		{
			drafts.POST("", container.DraftHandler.Create)
			drafts.GET("/:id", container.DraftHandler.Get)
			drafts.PATCH("/:id", container.DraftHandler.Update)
			drafts.DELETE("/:id", container.DraftHandler.Delete)
			drafts.POST("/:id/venue", container.DraftHandler.SelectVenue)
			drafts.POST("/:id/tiers", container.DraftHandler.AddTier)
			drafts.PUT("/:id/tiers/:index", container.DraftHandler.UpdateTier)
			drafts.DELETE("/:id/tiers/:index", container.DraftHandler.RemoveTier)
			drafts.POST("/:id/reset", container.DraftHandler.Reset)
			drafts.POST("/:id/submit", container.DraftHandler.Submit)
		}

		// Activity log - admin read surface
		activityLog := v1.Group("/activity")
		activityLog.Use(middleware.JWTMiddleware(jwtConfig))
		activityLog.Use(middleware.RequireRole("admin"))
		{
			activityLog.GET("", container.ActivityHandler.List)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Ticketing Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Stop the autosave worker first so it runs its final flush
	stopWorker()

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
