package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ziplofy/storeconfig/pkg/apperr"
	"github.com/ziplofy/storeconfig/pkg/auth"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	roledomain "github.com/ziplofy/storeconfig/services/role/domain"
	"github.com/ziplofy/storeconfig/services/role/domain/models"
	"github.com/ziplofy/storeconfig/services/role/domain/repositories"
)

// RolePatch is a partial update. Nil fields are left unchanged.
type RolePatch struct {
	Name        *string
	Description *string
	Permissions *[]string
}

// RoleService manages store roles and seeds the system roles.
type RoleService struct {
	repo    repositories.RoleRepository
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewRoleService returns a RoleService. metrics may be nil.
func NewRoleService(repo repositories.RoleRepository, metrics *telemetry.Metrics, log logger.Logger) *RoleService {
	return &RoleService{repo: repo, metrics: metrics, log: log}
}

// Create adds a custom role to the store.
func (s *RoleService) Create(ctx context.Context, storeID, name, description string, permissions []string) (*models.Role, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}
	name, err = models.NormalizeName(name)
	if err != nil {
		return nil, roledomain.InvalidField("name", err)
	}
	description, err = models.NormalizeDescription(description)
	if err != nil {
		return nil, roledomain.InvalidField("description", err)
	}
	perms, unknown := models.ParsePermissions(permissions)
	if len(unknown) > 0 {
		return nil, roledomain.UnknownPermissions(unknown)
	}

	role := models.NewRole(storeID, name, description, perms)
	if err := s.repo.Create(ctx, role); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			s.metrics.Conflict(ctx, "store-role")
		}
		return nil, fmt.Errorf("create store role: %w", err)
	}

	s.metrics.Created(ctx, "store-role")
	s.log.InfoContext(ctx, "store role created", "role_id", role.ID, "store_id", storeID)
	return role, nil
}

// ListByStore returns the store's roles ordered by name.
func (s *RoleService) ListByStore(ctx context.Context, storeID string) ([]*models.Role, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}
	roles, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list store roles: %w", err)
	}
	return roles, nil
}

// Update applies patch to the role. System roles accept description
// changes only.
func (s *RoleService) Update(ctx context.Context, id string, patch RolePatch) (*models.Role, error) {
	id, err := ident.Parse(id)
	if err != nil {
		return nil, err
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get store role: %w", err)
	}
	if err := auth.CheckStore(ctx, role.StoreID); err != nil {
		return nil, err
	}
	if role.IsSystem && (patch.Name != nil || patch.Permissions != nil) {
		return nil, roledomain.ErrSystemRoleReadOnly
	}

	if patch.Name != nil {
		if role.Name, err = models.NormalizeName(*patch.Name); err != nil {
			return nil, roledomain.InvalidField("name", err)
		}
	}
	if patch.Description != nil {
		if role.Description, err = models.NormalizeDescription(*patch.Description); err != nil {
			return nil, roledomain.InvalidField("description", err)
		}
	}
	if patch.Permissions != nil {
		perms, unknown := models.ParsePermissions(*patch.Permissions)
		if len(unknown) > 0 {
			return nil, roledomain.UnknownPermissions(unknown)
		}
		role.Permissions = perms
	}
	role.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("update store role: %w", err)
	}
	s.log.InfoContext(ctx, "store role updated", "role_id", role.ID, "store_id", role.StoreID)
	return role, nil
}

// Delete removes a custom role and returns it.
func (s *RoleService) Delete(ctx context.Context, id string) (*models.Role, error) {
	id, err := ident.Parse(id)
	if err != nil {
		return nil, err
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get store role: %w", err)
	}
	if err := auth.CheckStore(ctx, role.StoreID); err != nil {
		return nil, err
	}
	if role.IsSystem {
		return nil, roledomain.ErrSystemRoleProtected
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete store role: %w", err)
	}

	s.metrics.Deleted(ctx, "store-role")
	s.log.InfoContext(ctx, "store role deleted", "role_id", role.ID, "store_id", role.StoreID)
	return role, nil
}

// SeedDefaults inserts the system roles the store is missing. Running it
// again is a no-op. A custom role already using a system role's name keeps
// it; that name is reported in the outcome's Shadowed list.
func (s *RoleService) SeedDefaults(ctx context.Context, storeID string) (models.SeedOutcome, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return models.SeedOutcome{}, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return models.SeedOutcome{}, err
	}
	out, err := s.repo.InsertMissing(ctx, models.DefaultRoles(storeID))
	if err != nil {
		return models.SeedOutcome{}, fmt.Errorf("seed store roles: %w", err)
	}
	if len(out.Shadowed) > 0 {
		s.log.WarnContext(ctx, "system roles shadowed by custom roles", "store_id", storeID, "names", out.Shadowed)
	}
	s.log.InfoContext(ctx, "store roles seeded", "store_id", storeID, "inserted", out.Inserted)
	return out, nil
}
