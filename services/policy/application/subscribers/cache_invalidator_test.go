package subscribers

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	policyevents "github.com/ziplofy/storeconfig/services/policy/domain/events"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

func TestHandle_InvalidatesDocument(t *testing.T) {
	ctx := context.Background()
	storeID := ident.New()
	lists := cache.NewMemoryListCache()
	_ = lists.Set(ctx, models.Privacy.CacheScope(), storeID, "cached")

	msg, err := events.NewEventMessage(ctx, policyevents.PolicyEvent{Kind: "privacy", PolicyID: ident.New(), StoreID: storeID})
	if err != nil {
		t.Fatal(err)
	}
	if err := NewCacheInvalidator(lists, logger.Discard()).Handle(ctx, msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if lists.Len() != 0 {
		t.Error("document should be invalidated")
	}
}

func TestHandle_UnknownKindAcked(t *testing.T) {
	ctx := context.Background()
	msg, _ := events.NewEventMessage(ctx, policyevents.PolicyEvent{Kind: "refund", StoreID: ident.New()})
	if err := NewCacheInvalidator(cache.NewMemoryListCache(), logger.Discard()).Handle(ctx, msg); err != nil {
		t.Fatalf("unknown kind should be acked, got %v", err)
	}
	if err := NewCacheInvalidator(nil, logger.Discard()).Handle(ctx, message.NewMessage("x", []byte("{"))); err != nil {
		t.Fatalf("malformed payload should be acked, got %v", err)
	}
}

func TestSubscriptions(t *testing.T) {
	subs := Subscriptions(nil, logger.Discard())
	if len(subs) != 1 || subs[0].Topic != policyevents.TopicPolicySaved {
		t.Fatalf("subs = %+v", subs)
	}
}
