// Package migrator applies goose migrations from an embedded filesystem.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
)

// Up applies all pending migrations.
func Up(ctx context.Context, dbURL string, files fs.FS) error {
	return withDB(dbURL, files, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("failed to up migrations: %w", err)
		}
		return nil
	})
}

// Down rolls back the last steps migrations.
func Down(ctx context.Context, dbURL string, files fs.FS, steps int) error {
	return withDB(dbURL, files, func(db *sql.DB) error {
		for range steps {
			if err := goose.DownContext(ctx, db, "."); err != nil {
				return fmt.Errorf("failed to roll back migration: %w", err)
			}
		}
		return nil
	})
}

// Version returns the current schema version.
func Version(ctx context.Context, dbURL string, files fs.FS) (int64, error) {
	var version int64
	err := withDB(dbURL, files, func(db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func withDB(dbURL string, files fs.FS, fn func(*sql.DB) error) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(db)
}
