package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ziplofy/storeconfig/pkg/ident"
)

const (
	MaxName        = 50
	MaxDescription = 500
)

var (
	ErrNameRequired       = errors.New("is required")
	ErrNameTooLong        = fmt.Errorf("must be at most %d characters", MaxName)
	ErrDescriptionTooLong = fmt.Errorf("must be at most %d characters", MaxDescription)
)

// Role is a named permission set scoped to one store. System roles are
// seeded per store and only their description may change.
type Role struct {
	ID          string
	StoreID     string
	Name        string
	Description string
	Permissions []Permission
	IsSystem    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRole constructs a custom Role with a generated ID.
func NewRole(storeID, name, description string, perms []Permission) *Role {
	now := time.Now().UTC()
	return &Role{
		ID:          ident.New(),
		StoreID:     storeID,
		Name:        name,
		Description: description,
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Has reports whether the role grants p.
func (r *Role) Has(p Permission) bool {
	for _, have := range r.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// NormalizeName trims s and enforces 1 to MaxName characters.
func NormalizeName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(s) > MaxName {
		return "", ErrNameTooLong
	}
	return s, nil
}

// NormalizeDescription trims s and enforces MaxDescription.
func NormalizeDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxDescription {
		return "", ErrDescriptionTooLong
	}
	return s, nil
}
