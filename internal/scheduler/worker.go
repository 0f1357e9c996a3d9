package scheduler

import (
	"context"
	"fmt"
	"time"

	"marinaops_backend/internal/leaderboard/transport"
	"marinaops_backend/platform/config"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// DigestSender delivers the daily digest for a tenant. Implemented by the
// digest service.
type DigestSender interface {
	Send(ctx context.Context, tenantID uuid.UUID) error
}

// LeaderboardPublisher aggregates and publishes a tenant month. Implemented
// by the leaderboard service.
type LeaderboardPublisher interface {
	PublishMonth(ctx context.Context, tenantID uuid.UUID, year, month int) (transport.PublishResponse, error)
}

// Worker consumes scheduled tasks from Redis and runs them against the
// business services.
type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	digest      DigestSender
	leaderboard LeaderboardPublisher
	log         *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, digest DigestSender, leaderboard LeaderboardPublisher, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.GetAsynqConcurrency(),
		Queues:      map[string]int{queue: 1},
	})

	w := &Worker{
		server:      server,
		mux:         asynq.NewServeMux(),
		digest:      digest,
		leaderboard: leaderboard,
		log:         log,
	}
	w.mux.HandleFunc(TaskDailyDigest, w.handleDailyDigest)
	w.mux.HandleFunc(TaskLeaderboardPublish, w.handleLeaderboardPublish)

	return w, nil
}

// Run starts the worker and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.log.Info("scheduler worker shutting down")
		w.server.Shutdown()
	}()

	w.log.Info("scheduler worker starting")
	return w.server.Run(w.mux)
}

func (w *Worker) handleDailyDigest(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDailyDigestPayload(task)
	if err != nil {
		return fmt.Errorf("parse daily digest payload: %w", err)
	}
	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return fmt.Errorf("invalid tenant id %q: %w", payload.TenantID, err)
	}

	start := time.Now()
	if err := w.digest.Send(ctx, tenantID); err != nil {
		w.log.Error("daily digest task failed", "tenant", tenantID, "error", err)
		return err
	}
	w.log.Info("daily digest task done", "tenant", tenantID, "duration", time.Since(start).String())
	return nil
}

func (w *Worker) handleLeaderboardPublish(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeaderboardPublishPayload(task)
	if err != nil {
		return fmt.Errorf("parse leaderboard publish payload: %w", err)
	}
	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return fmt.Errorf("invalid tenant id %q: %w", payload.TenantID, err)
	}

	result, err := w.leaderboard.PublishMonth(ctx, tenantID, payload.Year, payload.Month)
	if err != nil {
		w.log.Error("leaderboard publish task failed", "tenant", tenantID, "year", payload.Year, "month", payload.Month, "error", err)
		return err
	}
	w.log.Info("leaderboard publish task done", "tenant", tenantID, "year", payload.Year, "month", payload.Month, "ranked", result.Ranked)
	return nil
}
