package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultListTTL bounds staleness when an invalidation is missed.
const DefaultListTTL = 5 * time.Minute

const listKeyPrefix = "list"

// ListCache stores one JSON-encoded list per (scope, store).
// Key format: "list:{scope}:{storeID}". Keys are always store-scoped so one
// tenant's list can never be served to another.
type ListCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewListCache returns a ListCache. A non-positive ttl selects DefaultListTTL.
func NewListCache(r *RedisClient, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: r, ttl: ttl}
}

// Get decodes the cached list into dest. It reports false on a miss.
func (c *ListCache) Get(ctx context.Context, scope, storeID string, dest any) (bool, error) {
	data, err := c.client.Client().Get(ctx, ListKey(scope, storeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set encodes v and stores it with the cache TTL.
func (c *ListCache) Set(ctx context.Context, scope, storeID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, ListKey(scope, storeID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached list for (scope, store).
func (c *ListCache) Invalidate(ctx context.Context, scope, storeID string) error {
	if err := c.client.Client().Del(ctx, ListKey(scope, storeID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// ListKey builds the Redis key for a store-scoped list.
func ListKey(scope, storeID string) string {
	return fmt.Sprintf("%s:%s:%s", listKeyPrefix, scope, storeID)
}
