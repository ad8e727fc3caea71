// Package redis stores storefront carts and wishlists in Redis, one key per
// visitor and storage key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ziplofy/storeconfig/pkg/auth"
)

// DefaultTTL matches the visitor cookie lifetime. Every save extends it.
const DefaultTTL = 30 * 24 * time.Hour

const keyPrefix = "storefront:"

// Storage implements cart.Storage. The visitor is read from the context set
// by auth.Visitor.
type Storage struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewStorage returns a Storage expiring idle keys after ttl.
func NewStorage(client *goredis.Client, ttl time.Duration) *Storage {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Storage{client: client, ttl: ttl}
}

func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	k, err := Key(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	k, err := Key(ctx, key)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, k, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Key returns the Redis key of key for the visitor in ctx.
func Key(ctx context.Context, key string) (string, error) {
	visitor, err := auth.VisitorIDFromCtx(ctx)
	if err != nil {
		return "", err
	}
	return keyPrefix + visitor + ":" + key, nil
}
