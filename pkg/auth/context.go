package auth

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/ziplofy/storeconfig/pkg/apperr"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const (
	userIDKey    contextKey = "user_id"
	storesKey    contextKey = "stores"
	visitorIDKey contextKey = "visitor_id"
)

// ErrUserIDNotFound is returned when no user is attached to the request context.
// Handlers should answer 401 when this error occurs.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// ErrStoreForbidden is returned by CheckStore for a store outside the
// credential's scope.
var ErrStoreForbidden = apperr.Forbidden("Not authorized for this store")

// ErrVisitorIDNotFound is returned when a storefront request carries no visitor.
var ErrVisitorIDNotFound = errors.New("visitor_id not found in context")

// UserIDFromCtx extracts the authenticated admin user from the request context.
func UserIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", ErrUserIDNotFound
	}
	return id, nil
}

// WithUserID returns a new context with the given user attached.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// StoresFromCtx returns the store IDs the token was scoped to. An empty slice
// means the credential carried no store restriction.
func StoresFromCtx(ctx context.Context) []string {
	stores, _ := ctx.Value(storesKey).([]string)
	return stores
}

// WithStores attaches the token's store scope to ctx.
func WithStores(ctx context.Context, stores []string) context.Context {
	return context.WithValue(ctx, storesKey, stores)
}

// Scoped reports whether ctx carries a store restriction.
func Scoped(ctx context.Context) bool {
	return len(StoresFromCtx(ctx)) > 0
}

// CheckStore returns ErrStoreForbidden when ctx carries a store scope that
// does not include storeID. A context without a scope may touch any store.
func CheckStore(ctx context.Context, storeID string) error {
	stores := StoresFromCtx(ctx)
	if len(stores) == 0 {
		return nil
	}
	if slices.ContainsFunc(stores, func(s string) bool { return strings.EqualFold(s, storeID) }) {
		return nil
	}
	return ErrStoreForbidden
}

// VisitorIDFromCtx extracts the anonymous storefront visitor.
func VisitorIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(visitorIDKey).(string)
	if !ok || id == "" {
		return "", ErrVisitorIDNotFound
	}
	return id, nil
}

// WithVisitorID returns a new context with the given visitor attached.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDKey, visitorID)
}
