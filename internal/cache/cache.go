// Package cache provides an optional Redis read-through cache for quota
// and policy rows. The upstream gateway polls these on every request, so
// caching keeps hot lookups off the database. All methods are safe to
// call on a nil *Cache, which behaves as a permanent miss.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/closedcode/gateway-admin/internal/models"
)

const defaultTTL = 60 * time.Second

// Cache wraps a Redis client with entity-aware keys.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis and returns a Cache, or nil when addr is empty.
func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{rdb: rdb, ttl: ttl}
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// QuotaKey returns the cache key for a user's quota row.
func QuotaKey(userID string) string {
	return "gwadmin:quota:" + userID
}

// PolicyKey returns the cache key for a user's policy row.
func PolicyKey(userID string) string {
	return "gwadmin:policy:" + userID
}

// GetQuota fetches a cached quota row.
func (c *Cache) GetQuota(ctx context.Context, userID string) (*models.Quota, bool) {
	var quota models.Quota
	if !c.get(ctx, QuotaKey(userID), &quota) {
		return nil, false
	}
	return &quota, true
}

// SetQuota stores a quota row.
func (c *Cache) SetQuota(ctx context.Context, quota *models.Quota) {
	if quota == nil {
		return
	}
	c.set(ctx, QuotaKey(quota.UserID), quota)
}

// GetPolicy fetches a cached policy row.
func (c *Cache) GetPolicy(ctx context.Context, userID string) (*models.Policy, bool) {
	var policy models.Policy
	if !c.get(ctx, PolicyKey(userID), &policy) {
		return nil, false
	}
	return &policy, true
}

// SetPolicy stores a policy row.
func (c *Cache) SetPolicy(ctx context.Context, policy *models.Policy) {
	if policy == nil {
		return
	}
	c.set(ctx, PolicyKey(policy.UserID), policy)
}

// InvalidateUser drops the cached quota and policy rows for a user.
// Called after every quota/policy write and after provisioning.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, QuotaKey(userID), PolicyKey(userID)).Err(); err != nil {
		log.WithError(err).Warn("cache invalidate failed")
	}
}

func (c *Cache) get(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("cache read failed")
		}
		return false
	}
	if errDecode := json.Unmarshal(raw, out); errDecode != nil {
		log.WithError(errDecode).Warn("cache decode failed")
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).Warn("cache encode failed")
		return
	}
	if errSet := c.rdb.Set(ctx, key, raw, c.ttl).Err(); errSet != nil {
		log.WithError(errSet).Warn("cache write failed")
	}
}
