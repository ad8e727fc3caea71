package events

import "time"

// Watermill topics published by the discount domain.
const (
	TopicDiscountCreated = "discount.created"
	TopicDiscountDeleted = "discount.deleted"
)

// DiscountEvent is published after a discount is created or deleted.
type DiscountEvent struct {
	DiscountID   string    `json:"discountId"`
	StoreID      string    `json:"storeId"`
	Method       string    `json:"method"`
	DiscountCode string    `json:"discountCode,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func (e DiscountEvent) Store() string { return e.StoreID }
