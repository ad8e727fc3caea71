package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ziplofy/storeconfig/pkg/logger"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert tag: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "tags_store_name_key"})
	if got := ConstraintName(err); got != "tags_store_name_key" {
		t.Errorf("ConstraintName() = %q", got)
	}
	if got := ConstraintName(errors.New("x")); got != "" {
		t.Errorf("expected empty constraint, got %q", got)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), "://not-a-url", logger.Discard())
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

// Integration tests: skipped unless DATABASE_URL is set.
func TestDatabaseIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()
	db, err := New(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close() //nolint:errcheck

	t.Run("Ping", func(t *testing.T) {
		if err := db.Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})

	t.Run("WithTx_RollsBackOnError", func(t *testing.T) {
		sentinel := errors.New("abort")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "CREATE TEMP TABLE tx_probe (id int)"); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel error, got %v", err)
		}
	})

	t.Run("WithTx_Commits", func(t *testing.T) {
		var got int
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			return tx.QueryRowContext(ctx, "SELECT 1").Scan(&got)
		})
		if err != nil || got != 1 {
			t.Fatalf("WithTx: got %d, err %v", got, err)
		}
	})
}
