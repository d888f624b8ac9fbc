package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const accessGenerationKey = "access:generation"

// RedisAccessCache stores per-retailer catalog sets in Redis. Bulk
// invalidation bumps a generation counter instead of scanning keys;
// stale generations age out via TTL.
type RedisAccessCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAccessCache creates a RedisAccessCache
func NewRedisAccessCache(client *redis.Client, ttl time.Duration) *RedisAccessCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisAccessCache{client: client, ttl: ttl}
}

func (c *RedisAccessCache) key(ctx context.Context, retailerID uuid.UUID) (string, error) {
	gen, err := c.client.Get(ctx, accessGenerationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("access:g%d:retailer:%s", gen, retailerID), nil
}

// GetRetailerCatalogs returns the cached catalog set for a retailer.
// Any Redis failure reads as a miss.
func (c *RedisAccessCache) GetRetailerCatalogs(ctx context.Context, retailerID uuid.UUID) ([]uuid.UUID, bool) {
	key, err := c.key(ctx, retailerID)
	if err != nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// SetRetailerCatalogs stores the catalog set for a retailer
func (c *RedisAccessCache) SetRetailerCatalogs(ctx context.Context, retailerID uuid.UUID, catalogIDs []uuid.UUID) {
	key, err := c.key(ctx, retailerID)
	if err != nil {
		return
	}
	raw, err := json.Marshal(catalogIDs)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

// InvalidateRetailer drops one retailer's entry
func (c *RedisAccessCache) InvalidateRetailer(ctx context.Context, retailerID uuid.UUID) {
	key, err := c.key(ctx, retailerID)
	if err != nil {
		return
	}
	c.client.Del(ctx, key)
}

// InvalidateAll moves every reader to a fresh generation
func (c *RedisAccessCache) InvalidateAll(ctx context.Context) {
	c.client.Incr(ctx, accessGenerationKey)
}
