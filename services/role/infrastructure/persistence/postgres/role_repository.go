package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ziplofy/storeconfig/pkg/database"
	roledomain "github.com/ziplofy/storeconfig/services/role/domain"
	"github.com/ziplofy/storeconfig/services/role/domain/models"
)

const roleColumns = `id, store_id, name, description, permissions, is_system, created_at, updated_at`

// RoleRepository implements repositories.RoleRepository against store_roles.
// Permissions are a JSONB array of strings.
type RoleRepository struct {
	db *database.Database
}

// NewRoleRepository returns a RoleRepository.
func NewRoleRepository(db *database.Database) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	perms, err := json.Marshal(role.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	_, err = r.db.DB().ExecContext(ctx,
		`INSERT INTO store_roles (`+roleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		role.ID, role.StoreID, role.Name, role.Description, perms, role.IsSystem, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return roledomain.ErrRoleAlreadyExists
		}
		return fmt.Errorf("insert store role: %w", err)
	}
	return nil
}

func (r *RoleRepository) ListByStore(ctx context.Context, storeID string) ([]*models.Role, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+roleColumns+` FROM store_roles WHERE store_id = $1 ORDER BY lower(name), id`, storeID)
	if err != nil {
		return nil, fmt.Errorf("query store roles: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	roles := make([]*models.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	role, err := scanRole(r.db.DB().QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM store_roles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, roledomain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("get store role: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	perms, err := json.Marshal(role.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE store_roles SET name = $1, description = $2, permissions = $3, updated_at = $4 WHERE id = $5`,
		role.Name, role.Description, perms, role.UpdatedAt, role.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return roledomain.ErrRoleAlreadyExists
		}
		return fmt.Errorf("update store role: %w", err)
	}
	return expectOne(res)
}

// Delete refuses system rows at the statement level as well, so a role that
// became a system role concurrently is never removed.
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM store_roles WHERE id = $1 AND NOT is_system`, id)
	if err != nil {
		return fmt.Errorf("delete store role: %w", err)
	}
	return expectOne(res)
}

// InsertMissing runs in one transaction and skips names the store already
// uses, so reseeding is a no-op.
func (r *RoleRepository) InsertMissing(ctx context.Context, roles []*models.Role) (models.SeedOutcome, error) {
	var out models.SeedOutcome
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, role := range roles {
			perms, err := json.Marshal(role.Permissions)
			if err != nil {
				return fmt.Errorf("encode permissions: %w", err)
			}
			res, err := tx.ExecContext(ctx,
				`INSERT INTO store_roles (`+roleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (store_id, lower(name)) DO NOTHING`,
				role.ID, role.StoreID, role.Name, role.Description, perms, role.IsSystem, role.CreatedAt, role.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("seed store role %s: %w", role.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("seed store role %s: %w", role.Name, err)
			}
			if n > 0 {
				out.Inserted++
				continue
			}
			var system bool
			if err := tx.QueryRowContext(ctx,
				`SELECT is_system FROM store_roles WHERE store_id = $1 AND lower(name) = lower($2)`,
				role.StoreID, role.Name,
			).Scan(&system); err != nil {
				return fmt.Errorf("seed store role %s: %w", role.Name, err)
			}
			if !system {
				out.Shadowed = append(out.Shadowed, role.Name)
			}
		}
		return nil
	})
	if err != nil {
		return models.SeedOutcome{}, err
	}
	return out, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return roledomain.ErrRoleNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRole(s scanner) (*models.Role, error) {
	var (
		role  models.Role
		perms []byte
	)
	if err := s.Scan(&role.ID, &role.StoreID, &role.Name, &role.Description, &perms, &role.IsSystem, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(perms, &role.Permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	if role.Permissions == nil {
		role.Permissions = []models.Permission{}
	}
	return &role, nil
}
