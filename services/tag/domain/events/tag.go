package events

import "time"

// Watermill topics published by the tag family. Kind tells subscribers which
// table the record belongs to.
const (
	TopicTagCreated = "tag.created"
	TopicTagDeleted = "tag.deleted"
)

// TagEvent is published after a tag-family record is created or deleted.
// The worker consumes it through subscribers.Subscriptions.
type TagEvent struct {
	Kind       string    `json:"kind"`
	TagID      string    `json:"tagId"`
	StoreID    string    `json:"storeId"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Store scopes the event for the bus metadata.
func (e TagEvent) Store() string { return e.StoreID }
