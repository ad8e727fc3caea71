// Package ident generates and parses the 24-character hex identifiers used for
// every document and store. They are ObjectIDs so records stay addressable by
// clients that were built against the legacy document store.
package ident

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ziplofy/storeconfig/pkg/apperr"
)

// Length is the length of a hex-encoded identifier.
const Length = 24

var (
	// ErrInvalidID is returned for a malformed document identifier.
	ErrInvalidID = apperr.Validation("Invalid ID")

	// ErrInvalidStoreID is returned for a malformed store identifier.
	ErrInvalidStoreID = apperr.Validation("Invalid store ID")
)

// New returns a fresh identifier in canonical (lowercase hex) form.
func New() string {
	return primitive.NewObjectID().Hex()
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	return primitive.IsValidObjectID(s)
}

// Parse canonicalizes a document identifier or returns ErrInvalidID.
// Surrounding whitespace is not stripped, matching the objectid validation tag.
func Parse(s string) (string, error) {
	return parse(s, ErrInvalidID)
}

// ParseStore canonicalizes a store identifier or returns ErrInvalidStoreID.
func ParseStore(s string) (string, error) {
	return parse(s, ErrInvalidStoreID)
}

func parse(s string, invalid error) (string, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return "", invalid
	}
	return oid.Hex(), nil
}

// Timestamp returns the creation time encoded in the identifier.
// The zero time is returned for malformed input.
func Timestamp(s string) time.Time {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return time.Time{}
	}
	return oid.Timestamp()
}
