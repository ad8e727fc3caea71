// Package subscribers holds the discount event consumers.
package subscribers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/logger"
	discountsvcs "github.com/ziplofy/storeconfig/services/discount/application/services"
	discountevents "github.com/ziplofy/storeconfig/services/discount/domain/events"
)

// Subscriptions returns the discount consumers. lists may be nil.
func Subscriptions(lists cache.Lists, log logger.Logger) []events.Subscription {
	h := NewCacheInvalidator(lists, log)
	return []events.Subscription{
		{Topic: discountevents.TopicDiscountCreated, Handler: h.Handle},
		{Topic: discountevents.TopicDiscountDeleted, Handler: h.Handle},
	}
}

// CacheInvalidator drops a store's cached discount list and writes an audit
// log line per event.
type CacheInvalidator struct {
	lists cache.Lists
	log   logger.Logger
}

// NewCacheInvalidator returns a CacheInvalidator.
func NewCacheInvalidator(lists cache.Lists, log logger.Logger) *CacheInvalidator {
	return &CacheInvalidator{lists: lists, log: log}
}

func (c *CacheInvalidator) Handle(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[discountevents.DiscountEvent](msg)
	if err != nil {
		c.log.ErrorContext(ctx, "dropping malformed discount event", "message_id", msg.UUID, "error", err)
		return nil
	}
	if evt.StoreID == "" {
		c.log.WarnContext(ctx, "discount event without store", "message_id", msg.UUID)
		return nil
	}

	c.log.InfoContext(ctx, "discount event",
		"discount_id", evt.DiscountID,
		"store_id", evt.StoreID,
		"method", evt.Method,
		"discount_code", evt.DiscountCode,
		"event_id", msg.Metadata.Get(events.MetaEventID),
	)

	if c.lists == nil {
		return nil
	}
	if err := c.lists.Invalidate(ctx, discountsvcs.CacheScope, evt.StoreID); err != nil {
		return fmt.Errorf("invalidate discounts for store %s: %w", evt.StoreID, err)
	}
	return nil
}
