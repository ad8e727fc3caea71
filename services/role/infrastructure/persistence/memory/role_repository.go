// Package memory is an in-process RoleRepository for tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	roledomain "github.com/ziplofy/storeconfig/services/role/domain"
	"github.com/ziplofy/storeconfig/services/role/domain/models"
)

// RoleRepository stores roles in a map keyed by ID.
type RoleRepository struct {
	mu    sync.Mutex
	roles map[string]models.Role
	Err   error // when set, every call fails with it
}

// NewRoleRepository returns an empty RoleRepository.
func NewRoleRepository() *RoleRepository {
	return &RoleRepository{roles: make(map[string]models.Role)}
}

func (r *RoleRepository) Create(_ context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.nameTaken(role.StoreID, role.Name, "") {
		return roledomain.ErrRoleAlreadyExists
	}
	r.roles[role.ID] = clone(role)
	return nil
}

func (r *RoleRepository) ListByStore(_ context.Context, storeID string) ([]*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*models.Role, 0)
	for _, role := range r.roles {
		if role.StoreID == storeID {
			c := clone(&role)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *RoleRepository) GetByID(_ context.Context, id string) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	role, ok := r.roles[id]
	if !ok {
		return nil, roledomain.ErrRoleNotFound
	}
	c := clone(&role)
	return &c, nil
}

func (r *RoleRepository) Update(_ context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	existing, ok := r.roles[role.ID]
	if !ok {
		return roledomain.ErrRoleNotFound
	}
	if r.nameTaken(existing.StoreID, role.Name, role.ID) {
		return roledomain.ErrRoleAlreadyExists
	}
	existing.Name = role.Name
	existing.Description = role.Description
	existing.Permissions = append([]models.Permission(nil), role.Permissions...)
	existing.UpdatedAt = role.UpdatedAt
	r.roles[role.ID] = existing
	return nil
}

func (r *RoleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	role, ok := r.roles[id]
	if !ok || role.IsSystem {
		return roledomain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *RoleRepository) InsertMissing(_ context.Context, roles []*models.Role) (models.SeedOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return models.SeedOutcome{}, r.Err
	}
	var out models.SeedOutcome
	for _, role := range roles {
		if holder, ok := r.holder(role.StoreID, role.Name); ok {
			if !holder.IsSystem {
				out.Shadowed = append(out.Shadowed, role.Name)
			}
			continue
		}
		r.roles[role.ID] = clone(role)
		out.Inserted++
	}
	return out, nil
}

func (r *RoleRepository) holder(storeID, name string) (models.Role, bool) {
	for _, existing := range r.roles {
		if existing.StoreID == storeID && strings.EqualFold(existing.Name, name) {
			return existing, true
		}
	}
	return models.Role{}, false
}

func (r *RoleRepository) nameTaken(storeID, name, exceptID string) bool {
	for id, existing := range r.roles {
		if id != exceptID && existing.StoreID == storeID && strings.EqualFold(existing.Name, name) {
			return true
		}
	}
	return false
}

func clone(role *models.Role) models.Role {
	c := *role
	c.Permissions = append([]models.Permission{}, role.Permissions...)
	return c
}
