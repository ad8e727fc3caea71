package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ziplofy/storeconfig/pkg/ident"
)

// MaxContent is the longest document body accepted, in characters.
const MaxContent = 100000

var (
	ErrContentRequired = errors.New("is required")
	ErrContentTooLong  = fmt.Errorf("must be at most %d characters", MaxContent)
)

// Policy is the single document of one kind owned by a store.
type Policy struct {
	ID        string
	StoreID   string
	Kind      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPolicy constructs a Policy with a generated ID and current timestamps.
// On upsert the ID is only used when no document exists yet.
func NewPolicy(kind Kind, storeID, content string) *Policy {
	now := time.Now().UTC()
	return &Policy{
		ID:        ident.New(),
		StoreID:   storeID,
		Kind:      kind.Name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeContent trims s and enforces the length bounds.
func NormalizeContent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrContentRequired
	}
	if utf8.RuneCountInString(s) > MaxContent {
		return "", ErrContentTooLong
	}
	return s, nil
}
