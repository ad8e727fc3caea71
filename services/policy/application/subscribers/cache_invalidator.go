// Package subscribers holds the policy documents' event consumers.
package subscribers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/logger"
	policyevents "github.com/ziplofy/storeconfig/services/policy/domain/events"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

// Subscriptions returns the policy consumers. lists may be nil.
func Subscriptions(lists cache.Lists, log logger.Logger) []events.Subscription {
	return []events.Subscription{
		{Topic: policyevents.TopicPolicySaved, Handler: NewCacheInvalidator(lists, log).Handle},
	}
}

// CacheInvalidator drops the cached document a PolicyEvent refers to.
type CacheInvalidator struct {
	lists cache.Lists
	log   logger.Logger
}

// NewCacheInvalidator returns a CacheInvalidator.
func NewCacheInvalidator(lists cache.Lists, log logger.Logger) *CacheInvalidator {
	return &CacheInvalidator{lists: lists, log: log}
}

// Handle acks payloads it cannot act on and retries cache failures.
func (c *CacheInvalidator) Handle(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[policyevents.PolicyEvent](msg)
	if err != nil {
		c.log.ErrorContext(ctx, "dropping malformed policy event", "message_id", msg.UUID, "error", err)
		return nil
	}
	kind, ok := models.KindByName(evt.Kind)
	if !ok || evt.StoreID == "" {
		c.log.WarnContext(ctx, "policy event with unknown kind or no store", "message_id", msg.UUID, "kind", evt.Kind)
		return nil
	}

	c.log.InfoContext(ctx, "policy event",
		"kind", kind.Name,
		"policy_id", evt.PolicyID,
		"store_id", evt.StoreID,
		"created", evt.Created,
		"event_id", msg.Metadata.Get(events.MetaEventID),
	)

	if c.lists == nil {
		return nil
	}
	if err := c.lists.Invalidate(ctx, kind.CacheScope(), evt.StoreID); err != nil {
		return fmt.Errorf("invalidate %s for store %s: %w", kind.Name, evt.StoreID, err)
	}
	return nil
}
