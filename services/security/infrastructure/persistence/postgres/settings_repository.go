package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziplofy/storeconfig/pkg/database"
	securitydomain "github.com/ziplofy/storeconfig/services/security/domain"
	"github.com/ziplofy/storeconfig/services/security/domain/models"
)

const settingsColumns = `id, store_id, require_code, code, code_generated_at, created_at, updated_at`

// SettingsRepository implements repositories.SettingsRepository against store_security.
type SettingsRepository struct {
	db *database.Database
}

// NewSettingsRepository returns a SettingsRepository.
func NewSettingsRepository(db *database.Database) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, storeID string) (*models.Settings, error) {
	var (
		s     models.Settings
		code  sql.NullString
		stamp sql.NullTime
	)
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM store_security WHERE store_id = $1`, storeID,
	).Scan(&s.ID, &s.StoreID, &s.RequireCode, &code, &stamp, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, securitydomain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get store security: %w", err)
	}
	s.Code = code.String
	if stamp.Valid {
		t := stamp.Time
		s.CodeGeneratedAt = &t
	}
	return &s, nil
}

// Save upserts on store_id. A concurrent first save from another request
// updates the row it created rather than failing, keeping its id.
func (r *SettingsRepository) Save(ctx context.Context, s *models.Settings) error {
	code := sql.NullString{String: s.Code, Valid: s.Code != ""}
	var stamp sql.NullTime
	if s.CodeGeneratedAt != nil {
		stamp = sql.NullTime{Time: *s.CodeGeneratedAt, Valid: true}
	}
	err := r.db.DB().QueryRowContext(ctx,
		`INSERT INTO store_security (`+settingsColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (store_id) DO UPDATE SET
			require_code = EXCLUDED.require_code,
			code = EXCLUDED.code,
			code_generated_at = EXCLUDED.code_generated_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`,
		s.ID, s.StoreID, s.RequireCode, code, stamp, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("save store security: %w", err)
	}
	return nil
}
