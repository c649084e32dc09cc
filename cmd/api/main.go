package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm_intel_backend/internal/events"
	apphttp "crm_intel_backend/internal/http"
	"crm_intel_backend/internal/http/router"
	"crm_intel_backend/internal/leads"
	"crm_intel_backend/internal/leads/intelligence"
	"crm_intel_backend/internal/leads/stream"
	"crm_intel_backend/platform/config"
	"crm_intel_backend/platform/db"
	"crm_intel_backend/platform/logger"
	"crm_intel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// External mutation stream; optional, invalidation still works
	// in-process without it.
	sub, closeFeed := initMutationFeed(cfg, log)
	if closeFeed != nil {
		defer closeFeed()
	}
	var feed intelligence.MutationFeed
	if sub != nil {
		feed = sub
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(pool, feed, eventBus, cfg, val, log)
	leadsModule.RegisterHandlers(eventBus)

	if feed != nil {
		unsubscribe, err := leadsModule.Intelligence().Subscribe(ctx, nil)
		if err != nil {
			log.Error("failed to subscribe to mutation stream", "error", err)
			panic("failed to subscribe to mutation stream: " + err.Error())
		}
		defer unsubscribe()
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initMutationFeed(cfg *config.Config, log *logger.Logger) (*stream.Subscriber, func()) {
	if !cfg.IsStreamEnabled() {
		log.Warn("REDIS_URL not configured; external mutation stream disabled")
		return nil, nil
	}

	sub, err := stream.New(cfg.GetRedisURL(), cfg.GetMutationChannel(), log)
	if err != nil {
		log.Error("failed to initialize mutation stream", "error", err)
		return nil, nil
	}

	return sub, func() {
		_ = sub.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
