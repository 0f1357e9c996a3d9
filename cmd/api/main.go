package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marinaops_backend/internal/adapters"
	"marinaops_backend/internal/audit"
	"marinaops_backend/internal/catalog"
	"marinaops_backend/internal/closure"
	"marinaops_backend/internal/email"
	"marinaops_backend/internal/events"
	apphttp "marinaops_backend/internal/http"
	"marinaops_backend/internal/http/router"
	"marinaops_backend/internal/leaderboard"
	"marinaops_backend/internal/leaderboard/cache"
	"marinaops_backend/internal/notification"
	"marinaops_backend/internal/status"
	"marinaops_backend/internal/workorders"
	"marinaops_backend/platform/config"
	"marinaops_backend/platform/db"
	"marinaops_backend/platform/logger"
	"marinaops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
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

	// Shared validator instance for dependency injection
	val := validator.New()

	sender := email.NewSender(cfg)

	boardCache, closeCache := initLeaderboardCache(cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// Audit trail shared by the work-order and closure modules
	auditor := audit.NewRecorder(audit.NewPostgresStore(pool), log)

	// Canonical status registry, built once and injected everywhere
	registry := status.NewRegistry()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	workOrdersModule := workorders.NewModule(pool, registry, cfg.GetFlagshipMarker(), auditor, eventBus, val, log)

	catalogModule := catalog.NewModule(pool, cfg.GetJobTypeSeedPath(), val, log)
	catalogModule.RegisterHandlers(eventBus)

	// Anti-Corruption Layer: closure depends only on its own source
	// interfaces, satisfied by adapters over the owning modules.
	closureWorkOrders := adapters.NewClosureWorkOrderAdapter(workOrdersModule.Repository())
	closureJobTypes := adapters.NewClosureJobTypeAdapter(catalogModule.Service())
	closureModule := closure.NewModule(pool, closureWorkOrders, closureJobTypes, auditor, eventBus, val, log)

	scoreSource := adapters.NewLeaderboardScoreAdapter(closureModule.Repository())
	leaderboardModule := leaderboard.NewModule(pool, scoreSource, boardCache, eventBus, val, log)

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, leaderboardModule.Service(), cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			workOrdersModule,
			catalogModule,
			closureModule,
			leaderboardModule,
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

func initLeaderboardCache(cfg *config.Config, log *logger.Logger) (*cache.Cache, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; leaderboard reads are uncached")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL, leaderboard cache disabled", "error", err)
		return nil, nil
	}
	if opt.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
		opt.TLSConfig.InsecureSkipVerify = true
	}

	client := redis.NewClient(opt)
	return cache.New(client, cfg.GetLeaderboardCacheTTL(), log), func() {
		_ = client.Close()
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
