// Package cache holds the shared Redis connection and the per-store list cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ziplofy/storeconfig/pkg/config"
)

const dialCheckTimeout = 2 * time.Second

// RedisClient is the process-wide Redis pool. The list cache, the session
// stores and storefront cart storage all share it.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to cfg.RedisURL using the pool size and I/O
// timeout from cfg.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	return dial(context.Background(), cfg.RedisURL, cfg.ServiceName, cfg.RedisPoolSize, cfg.RedisTimeout)
}

// Dial connects to url with default pool settings. Tests and the CLI use it.
func Dial(ctx context.Context, url string) (*RedisClient, error) {
	return dial(ctx, url, "", 0, 0)
}

func dial(ctx context.Context, url, name string, poolSize int, timeout time.Duration) (*RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	if name != "" {
		opts.ClientName = name
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
		opts.MinIdleConns = max(1, poolSize/5)
	}
	if timeout > 0 {
		opts.ReadTimeout = timeout
		opts.WriteTimeout = timeout
		opts.PoolTimeout = timeout + time.Second
	}
	opts.MaxRetries = 3

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, dialCheckTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: reach redis at %s: %w", opts.Addr, err)
	}
	return &RedisClient{client: rdb}, nil
}

// Ping reports whether Redis answers. It backs the /health redis check.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: ping: %w", err)
	}
	return nil
}

// Close releases the pool. Closing twice is not an error.
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("cache: close: %w", err)
	}
	return nil
}

// Client exposes the pool for packages that talk to Redis directly.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
