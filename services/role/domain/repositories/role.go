package repositories

import (
	"context"

	"github.com/ziplofy/storeconfig/services/role/domain/models"
)

// RoleRepository persists store roles. Names are unique per store,
// compared case-insensitively; writes that break this return
// ErrRoleAlreadyExists.
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	// ListByStore returns the store's roles ordered by name.
	ListByStore(ctx context.Context, storeID string) ([]*models.Role, error)
	GetByID(ctx context.Context, id string) (*models.Role, error)
	// Update stores name, description and permissions of role.
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error
	// InsertMissing inserts each role whose name the store does not use yet.
	// Names held by a custom role are reported as shadowed.
	InsertMissing(ctx context.Context, roles []*models.Role) (models.SeedOutcome, error)
}
