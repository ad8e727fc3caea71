package subscribers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/logger"
	tagevents "github.com/ziplofy/storeconfig/services/tag/domain/events"
)

const storeID = "64b7f0c2a1b2c3d4e5f60718"

func tagMessage(t *testing.T, evt tagevents.TagEvent) *message.Message {
	t.Helper()
	msg, err := events.NewEventMessage(context.Background(), evt)
	if err != nil {
		t.Fatalf("NewEventMessage: %v", err)
	}
	return msg
}

func TestHandle_InvalidatesStoreList(t *testing.T) {
	ctx := context.Background()
	lists := cache.NewMemoryListCache()
	if err := lists.Set(ctx, "vendor", storeID, []string{"Acme"}); err != nil {
		t.Fatal(err)
	}
	if err := lists.Set(ctx, "tag", storeID, []string{"sale"}); err != nil {
		t.Fatal(err)
	}

	h := NewCacheInvalidator(lists, logger.Discard())
	msg := tagMessage(t, tagevents.TagEvent{Kind: "vendor", TagID: "t1", StoreID: storeID, Name: "Acme", OccurredAt: time.Now()})
	if err := h.Handle(ctx, msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	var got []string
	if hit, _ := lists.Get(ctx, "vendor", storeID, &got); hit {
		t.Error("vendor list should be invalidated")
	}
	if hit, _ := lists.Get(ctx, "tag", storeID, &got); !hit {
		t.Error("tag list of another kind should be untouched")
	}
}

func TestHandle_Idempotent(t *testing.T) {
	h := NewCacheInvalidator(cache.NewMemoryListCache(), logger.Discard())
	msg := tagMessage(t, tagevents.TagEvent{Kind: "tag", StoreID: storeID})
	for i := 0; i < 2; i++ {
		if err := h.Handle(context.Background(), msg); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}
}

func TestHandle_MalformedPayloadIsAcked(t *testing.T) {
	h := NewCacheInvalidator(cache.NewMemoryListCache(), logger.Discard())
	msg := message.NewMessage("id", []byte("not json"))
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("malformed payload should be acked, got %v", err)
	}
}

type failingLists struct{ cache.Lists }

func (failingLists) Invalidate(context.Context, string, string) error {
	return errors.New("redis down")
}

func TestHandle_CacheFailureIsRetried(t *testing.T) {
	h := NewCacheInvalidator(failingLists{}, logger.Discard())
	msg := tagMessage(t, tagevents.TagEvent{Kind: "tag", StoreID: storeID})
	if err := h.Handle(context.Background(), msg); err == nil {
		t.Fatal("expected error so the bus redelivers")
	}
}

func TestSubscriptions_Topics(t *testing.T) {
	subs := Subscriptions(nil, logger.Discard())
	if len(subs) != 2 {
		t.Fatalf("got %d subscriptions, want 2", len(subs))
	}
	if subs[0].Topic != tagevents.TopicTagCreated || subs[1].Topic != tagevents.TopicTagDeleted {
		t.Errorf("topics = %q, %q", subs[0].Topic, subs[1].Topic)
	}
	msg := tagMessage(t, tagevents.TagEvent{Kind: "tag", StoreID: storeID})
	if err := subs[0].Handler(context.Background(), msg); err != nil {
		t.Errorf("nil lists should only audit, got %v", err)
	}
}
