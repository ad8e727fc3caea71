// Package subscribers holds the tag family's event consumers. They run in the
// worker process and must be idempotent: the bus redelivers on error.
package subscribers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/logger"
	tagevents "github.com/ziplofy/storeconfig/services/tag/domain/events"
)

// Subscriptions returns the tag family's consumers. lists may be nil, in
// which case events are only audited.
func Subscriptions(lists cache.Lists, log logger.Logger) []events.Subscription {
	h := &CacheInvalidator{lists: lists, log: log}
	return []events.Subscription{
		{Topic: tagevents.TopicTagCreated, Handler: h.Handle},
		{Topic: tagevents.TopicTagDeleted, Handler: h.Handle},
	}
}

// CacheInvalidator drops the cached list of the store an event refers to.
// The API already invalidates synchronously; this covers the case where that
// call failed or raced with a concurrent read that refilled the cache.
type CacheInvalidator struct {
	lists cache.Lists
	log   logger.Logger
}

// NewCacheInvalidator returns a CacheInvalidator.
func NewCacheInvalidator(lists cache.Lists, log logger.Logger) *CacheInvalidator {
	return &CacheInvalidator{lists: lists, log: log}
}

// Handle decodes a TagEvent and invalidates its list. Malformed payloads are
// logged and acked since redelivery cannot fix them.
func (c *CacheInvalidator) Handle(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[tagevents.TagEvent](msg)
	if err != nil {
		c.log.ErrorContext(ctx, "dropping malformed tag event", "message_id", msg.UUID, "error", err)
		return nil
	}
	if evt.Kind == "" || evt.StoreID == "" {
		c.log.WarnContext(ctx, "tag event without kind or store", "message_id", msg.UUID)
		return nil
	}

	c.log.InfoContext(ctx, "tag event",
		"kind", evt.Kind,
		"tag_id", evt.TagID,
		"store_id", evt.StoreID,
		"event_id", msg.Metadata.Get(events.MetaEventID),
	)

	if c.lists == nil {
		return nil
	}
	if err := c.lists.Invalidate(ctx, evt.Kind, evt.StoreID); err != nil {
		return fmt.Errorf("invalidate %s list for store %s: %w", evt.Kind, evt.StoreID, err)
	}
	return nil
}
