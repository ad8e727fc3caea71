package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ziplofy/storeconfig/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestDial_InvalidURL(t *testing.T) {
	if _, err := Dial(context.Background(), "://nope"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestClose_NilClient(t *testing.T) {
	var rc *RedisClient
	if err := rc.Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestListKey_IsStoreScoped(t *testing.T) {
	a := ListKey("tag", "64b7f0c2a1e4d3b2c1a09f87")
	b := ListKey("tag", "64b7f0c2a1e4d3b2c1a09f88")
	if a == b {
		t.Fatal("expected distinct keys for distinct stores")
	}
	if a != "list:tag:64b7f0c2a1e4d3b2c1a09f87" {
		t.Errorf("unexpected key %q", a)
	}
}

func TestNewListCache_DefaultTTL(t *testing.T) {
	if c := NewListCache(nil, 0); c.ttl != DefaultListTTL {
		t.Errorf("expected default TTL, got %v", c.ttl)
	}
	if c := NewListCache(nil, time.Minute); c.ttl != time.Minute {
		t.Errorf("expected 1m TTL, got %v", c.ttl)
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	t.Run("Ping_Success", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("ListCache_RoundTrip", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		ctx := context.Background()
		c := NewListCache(rc, time.Minute)
		store := "64b7f0c2a1e4d3b2c1a09f87"
		_ = c.Invalidate(ctx, "test", store)

		var got []string
		hit, err := c.Get(ctx, "test", store, &got)
		if err != nil || hit {
			t.Fatalf("expected clean miss, hit=%v err=%v", hit, err)
		}

		if err := c.Set(ctx, "test", store, []string{"a", "b"}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		hit, err = c.Get(ctx, "test", store, &got)
		if err != nil || !hit || len(got) != 2 {
			t.Fatalf("expected hit with 2 items, hit=%v got=%v err=%v", hit, got, err)
		}

		if err := c.Invalidate(ctx, "test", store); err != nil {
			t.Fatalf("Invalidate: %v", err)
		}
		hit, _ = c.Get(ctx, "test", store, &got)
		if hit {
			t.Fatal("expected miss after invalidation")
		}
	})

	t.Run("Close_Idempotent", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("first Close failed: %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("second Close failed: %v", err)
		}
	})

	t.Run("PoolSettingsFromConfig", func(t *testing.T) {
		cfg := newTestConfig(redisURL)
		cfg.ServiceName = "storeconfig-test"
		cfg.RedisPoolSize = 4
		cfg.RedisTimeout = time.Second
		rc, err := NewRedisClient(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck
		opts := rc.Client().Options()
		if opts.PoolSize != 4 || opts.ReadTimeout != time.Second || opts.ClientName != "storeconfig-test" {
			t.Errorf("unexpected options: pool=%d read=%v name=%q", opts.PoolSize, opts.ReadTimeout, opts.ClientName)
		}
	})
}
