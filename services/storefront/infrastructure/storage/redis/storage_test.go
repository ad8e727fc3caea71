package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ziplofy/storeconfig/pkg/auth"
	"github.com/ziplofy/storeconfig/pkg/cache"
)

func TestKey(t *testing.T) {
	ctx := auth.WithVisitorID(context.Background(), "v1")
	k, err := Key(ctx, "theme6_cart_items")
	if err != nil {
		t.Fatal(err)
	}
	if k != "storefront:v1:theme6_cart_items" {
		t.Errorf("unexpected key %q", k)
	}
	if _, err := Key(context.Background(), "cartItems"); !errors.Is(err, auth.ErrVisitorIDNotFound) {
		t.Errorf("expected missing visitor error, got %v", err)
	}
}

func TestStorage_Integration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	rc, err := cache.Dial(context.Background(), url)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })

	s := NewStorage(rc.Client(), time.Minute)
	ctx := auth.WithVisitorID(context.Background(), uuid.NewString())

	data, err := s.Load(ctx, "cartItems")
	if err != nil || data != nil {
		t.Fatalf("absent key: %q %v", data, err)
	}
	if err := s.Save(ctx, "cartItems", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	data, err = s.Load(ctx, "cartItems")
	if err != nil || string(data) != "[]" {
		t.Fatalf("load: %q %v", data, err)
	}

	k, _ := Key(ctx, "cartItems")
	ttl, err := rc.Client().TTL(ctx, k).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Errorf("ttl = %v, %v", ttl, err)
	}

	other := auth.WithVisitorID(context.Background(), uuid.NewString())
	if data, _ := s.Load(other, "cartItems"); data != nil {
		t.Error("visitors must not share carts")
	}
}
