package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziplofy/storeconfig/pkg/apperr"
)

func TestWithUserID_UserIDFromCtx(t *testing.T) {
	ctx := WithUserID(context.Background(), "64b7f0c2a1e4d3b2c1a09f87")

	got, err := UserIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "64b7f0c2a1e4d3b2c1a09f87" {
		t.Fatalf("unexpected user id %q", got)
	}
}

func TestUserIDFromCtx_EmptyContext(t *testing.T) {
	_, err := UserIDFromCtx(context.Background())
	if !errors.Is(err, ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound, got %v", err)
	}
}

func TestUserIDFromCtx_EmptyString(t *testing.T) {
	_, err := UserIDFromCtx(WithUserID(context.Background(), ""))
	if !errors.Is(err, ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound for empty id, got %v", err)
	}
}

func TestStoresFromCtx(t *testing.T) {
	if got := StoresFromCtx(context.Background()); got != nil {
		t.Fatalf("expected nil stores, got %v", got)
	}
	want := []string{"a", "b"}
	got := StoresFromCtx(WithStores(context.Background(), want))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stores mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckStore(t *testing.T) {
	const storeA, storeB = "64b7f0c2a1e4d3b2c1a09f87", "64b7f0c2a1e4d3b2c1a09f88"
	scoped := WithStores(context.Background(), []string{storeA})

	tests := []struct {
		name    string
		ctx     context.Context
		storeID string
		want    error
	}{
		{"no scope allows any store", context.Background(), storeB, nil},
		{"empty scope allows any store", WithStores(context.Background(), []string{}), storeB, nil},
		{"store in scope", scoped, storeA, nil},
		{"scope compares case-insensitively", scoped, "64B7F0C2A1E4D3B2C1A09F87", nil},
		{"store outside scope", scoped, storeB, ErrStoreForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckStore(tt.ctx, tt.storeID); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if err := CheckStore(scoped, storeB); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected the forbidden kind, got %v", err)
	}
}

func TestVisitorIDFromCtx(t *testing.T) {
	if _, err := VisitorIDFromCtx(context.Background()); !errors.Is(err, ErrVisitorIDNotFound) {
		t.Fatalf("expected ErrVisitorIDNotFound, got %v", err)
	}
	got, err := VisitorIDFromCtx(WithVisitorID(context.Background(), "v1"))
	if err != nil || got != "v1" {
		t.Fatalf("got %q, %v", got, err)
	}
}
