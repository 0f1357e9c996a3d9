package scheduler

import (
	"context"
	"time"

	"marinaops_backend/platform/config"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dispatchInterval = time.Minute

// Dispatcher enqueues recurring jobs on schedule: the daily digest at the
// configured hour, and the previous month's leaderboard publication on the
// first day of each month. Task IDs make re-enqueues within the same period
// harmless, so running dispatchers on several replicas is safe.
type Dispatcher struct {
	pool        *pgxpool.Pool
	client      *Client
	digestHour  int
	publishHour int
	log         *logger.Logger

	lastDigestDay  string
	lastPublishKey string
}

func NewDispatcher(pool *pgxpool.Pool, client *Client, cfg config.SchedulerConfig, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		pool:        pool,
		client:      client,
		digestHour:  cfg.GetDigestSendHour(),
		publishHour: cfg.GetLeaderboardPublishHour(),
		log:         log,
	}
}

// Run ticks every minute until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(dispatchInterval)
	defer ticker.Stop()

	d.log.Info("scheduler dispatcher started", "digestHour", d.digestHour, "publishHour", d.publishHour)
	for {
		select {
		case <-ctx.Done():
			d.log.Info("scheduler dispatcher stopped")
			return
		case now := <-ticker.C:
			d.tick(ctx, now)
		}
	}
}

func (d *Dispatcher) tick(ctx context.Context, now time.Time) {
	if now.Hour() == d.digestHour {
		day := now.Format("2006-01-02")
		if d.lastDigestDay != day {
			if d.dispatchDigests(ctx) {
				d.lastDigestDay = day
			}
		}
	}

	if now.Day() == 1 && now.Hour() == d.publishHour {
		key := now.Format("2006-01")
		if d.lastPublishKey != key {
			if d.dispatchLeaderboards(ctx, now) {
				d.lastPublishKey = key
			}
		}
	}
}

func (d *Dispatcher) dispatchDigests(ctx context.Context) bool {
	tenants, err := d.listTenants(ctx)
	if err != nil {
		d.log.Error("dispatcher could not list tenants", "error", err)
		return false
	}

	for _, tenantID := range tenants {
		err := d.client.EnqueueDailyDigest(ctx, DailyDigestPayload{TenantID: tenantID.String()})
		if err != nil {
			d.log.Error("enqueue daily digest failed", "tenant", tenantID, "error", err)
			continue
		}
	}
	d.log.Info("daily digests enqueued", "tenants", len(tenants))
	return true
}

func (d *Dispatcher) dispatchLeaderboards(ctx context.Context, now time.Time) bool {
	tenants, err := d.listTenants(ctx)
	if err != nil {
		d.log.Error("dispatcher could not list tenants", "error", err)
		return false
	}

	previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	for _, tenantID := range tenants {
		err := d.client.EnqueueLeaderboardPublish(ctx, LeaderboardPublishPayload{
			TenantID: tenantID.String(),
			Year:     previous.Year(),
			Month:    int(previous.Month()),
		})
		if err != nil {
			d.log.Error("enqueue leaderboard publish failed", "tenant", tenantID, "error", err)
			continue
		}
	}
	d.log.Info("leaderboard publications enqueued", "tenants", len(tenants), "year", previous.Year(), "month", int(previous.Month()))
	return true
}

// listTenants derives the tenant set from the work-order table. Tenancy is
// carried on every row; there is no separate tenant registry to consult.
func (d *Dispatcher) listTenants(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := d.pool.Query(ctx, `SELECT DISTINCT tenant_id FROM work_orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}
