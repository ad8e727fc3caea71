package models

import (
	"time"

	"github.com/ziplofy/storeconfig/pkg/ident"
)

// Tag is a name record of one kind owned by exactly one store.
type Tag struct {
	ID        string
	StoreID   string // tenant scope, always filter by this in queries
	Name      TagName
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTag constructs a Tag with a generated ID and current timestamps.
func NewTag(storeID string, name TagName) *Tag {
	now := time.Now().UTC()
	return &Tag{
		ID:        ident.New(),
		StoreID:   storeID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
