// Package cache provides a Redis-backed read cache for published
// leaderboards. Aggregation is cheap but read traffic is bursty (every
// crew member checks the board when it lands), so reads are served from
// Redis and invalidated on republication.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache stores serialized leaderboard payloads keyed by tenant and period.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New creates a leaderboard cache.
func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// GetMonth loads a cached monthly leaderboard into dest.
// Returns false on a miss; cache errors degrade to a miss.
func (c *Cache) GetMonth(ctx context.Context, tenantID uuid.UUID, year, month int, dest any) bool {
	return c.get(ctx, monthKey(tenantID, year, month), dest)
}

// SetMonth caches a monthly leaderboard payload.
func (c *Cache) SetMonth(ctx context.Context, tenantID uuid.UUID, year, month int, payload any) {
	c.set(ctx, monthKey(tenantID, year, month), payload)
}

// GetYear loads a cached yearly standing into dest.
func (c *Cache) GetYear(ctx context.Context, tenantID uuid.UUID, year int, dest any) bool {
	return c.get(ctx, yearKey(tenantID, year), dest)
}

// SetYear caches a yearly standing payload.
func (c *Cache) SetYear(ctx context.Context, tenantID uuid.UUID, year int, payload any) {
	c.set(ctx, yearKey(tenantID, year), payload)
}

// InvalidateMonth drops the cached month and its enclosing year: a
// republished month changes the yearly standing too.
func (c *Cache) InvalidateMonth(ctx context.Context, tenantID uuid.UUID, year, month int) {
	if err := c.client.Del(ctx, monthKey(tenantID, year, month), yearKey(tenantID, year)).Err(); err != nil {
		c.log.Error("leaderboard cache invalidation failed", "tenant", tenantID, "year", year, "month", month, "error", err)
	}
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Error("leaderboard cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Error("leaderboard cache payload corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("leaderboard cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("leaderboard cache write failed", "key", key, "error", err)
	}
}

func monthKey(tenantID uuid.UUID, year, month int) string {
	return fmt.Sprintf("leaderboard:%s:%d:%02d", tenantID, year, month)
}

func yearKey(tenantID uuid.UUID, year int) string {
	return fmt.Sprintf("leaderboard:%s:%d", tenantID, year)
}
