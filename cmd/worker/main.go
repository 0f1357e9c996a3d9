package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marinaops_backend/internal/adapters"
	"marinaops_backend/internal/audit"
	closurerepo "marinaops_backend/internal/closure/repository"
	"marinaops_backend/internal/digest"
	"marinaops_backend/internal/email"
	"marinaops_backend/internal/events"
	"marinaops_backend/internal/leaderboard"
	"marinaops_backend/internal/leaderboard/cache"
	"marinaops_backend/internal/notification"
	"marinaops_backend/internal/scheduler"
	"marinaops_backend/internal/status"
	"marinaops_backend/internal/whatsapp"
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

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	// Worker-side wiring: the digest reads the ordered active list through
	// the work-orders module, the leaderboard reads monthly scores straight
	// from the closure repository. No HTTP handlers are mounted here.
	registry := status.NewRegistry()
	auditor := audit.NewRecorder(audit.NewPostgresStore(pool), log)
	workOrdersModule := workorders.NewModule(pool, registry, cfg.GetFlagshipMarker(), auditor, eventBus, val, log)

	whatsappClient := whatsapp.NewClient(cfg, log)
	digestSource := adapters.NewDigestWorkOrderAdapter(workOrdersModule.Service(), registry)
	digestService := digest.New(digestSource, whatsappClient, cfg, log)

	boardCache, closeCache := initLeaderboardCache(cfg, log)
	if closeCache != nil {
		defer closeCache()
	}
	scoreSource := adapters.NewLeaderboardScoreAdapter(closurerepo.New(pool))
	leaderboardModule := leaderboard.NewModule(pool, scoreSource, boardCache, eventBus, val, log)

	// Publication mails go out from the worker, where publication happens.
	notificationModule := notification.New(email.NewSender(cfg), leaderboardModule.Service(), cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	dispatcher := scheduler.NewDispatcher(pool, client, cfg, log)
	go dispatcher.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, digestService, leaderboardModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("scheduler worker stopped", "error", err)
		panic("scheduler worker stopped: " + err.Error())
	}
}

func initLeaderboardCache(cfg *config.Config, log *logger.Logger) (*cache.Cache, func()) {
	if cfg.GetRedisURL() == "" {
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
		return errors.New(name + ": invalid retry attempts")
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
