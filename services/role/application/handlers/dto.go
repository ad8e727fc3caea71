package handlers

import (
	"time"

	"github.com/ziplofy/storeconfig/services/role/domain/models"
)

// CreateRoleRequest is the request body for POST /store-roles.
type CreateRoleRequest struct {
	StoreID     string   `json:"storeId"     validate:"required,objectid" example:"64b7f0c2a1e4d3b2c1a09f87"`
	Name        string   `json:"name"        validate:"required,notblank" example:"Packer"`
	Description string   `json:"description"                              example:"Picks and ships orders"`
	Permissions []string `json:"permissions" validate:"required"          example:"orders.read,orders.write"`
} // @name CreateRoleRequest

// UpdateRoleRequest is the request body for PATCH /store-roles/{roleId}.
// Omitted fields are left unchanged.
type UpdateRoleRequest struct {
	Name        *string   `json:"name,omitempty"        example:"Fulfilment"`
	Description *string   `json:"description,omitempty" example:"Picks, packs and ships orders"`
	Permissions *[]string `json:"permissions,omitempty"`
} // @name UpdateRoleRequest

// RoleResponse is the JSON shape of a store role.
type RoleResponse struct {
	ID          string    `json:"_id"         example:"64b7f0c2a1e4d3b2c1a09f88"`
	StoreID     string    `json:"storeId"     example:"64b7f0c2a1e4d3b2c1a09f87"`
	Name        string    `json:"name"        example:"Packer"`
	Description string    `json:"description" example:"Picks and ships orders"`
	Permissions []string  `json:"permissions" example:"orders.read,orders.write"`
	IsSystem    bool      `json:"isSystem"    example:"false"`
	CreatedAt   time.Time `json:"createdAt"   example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updatedAt"   example:"2024-01-15T10:30:00Z"`
} // @name RoleResponse

// RoleSummary is returned by DELETE.
type RoleSummary struct {
	ID      string `json:"_id"     example:"64b7f0c2a1e4d3b2c1a09f88"`
	StoreID string `json:"storeId" example:"64b7f0c2a1e4d3b2c1a09f87"`
	Name    string `json:"name"    example:"Packer"`
} // @name RoleSummary

func toResponse(r *models.Role) RoleResponse {
	perms := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = string(p)
	}
	return RoleResponse{
		ID:          r.ID,
		StoreID:     r.StoreID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
		IsSystem:    r.IsSystem,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
