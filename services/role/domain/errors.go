package domain

import (
	"strings"

	"github.com/ziplofy/storeconfig/pkg/apperr"
)

// Sentinel errors for the role domain. Use errors.Is() to check them.
var (
	ErrRoleNotFound        = apperr.NotFound("Store role not found")
	ErrRoleAlreadyExists   = apperr.Conflict("A role with this name already exists for this store")
	ErrSystemRoleReadOnly  = apperr.Validation("Only the description of a system role can be changed")
	ErrSystemRoleProtected = apperr.Validation("System roles cannot be deleted")
)

// InvalidField wraps a single field rule violation.
func InvalidField(field string, reason error) error {
	return apperr.InvalidFields("Invalid store role", map[string]string{field: reason.Error()})
}

// UnknownPermissions lists the permissions missing from the catalog.
func UnknownPermissions(unknown []string) error {
	return apperr.InvalidFields("Invalid store role", map[string]string{
		"permissions": "Unknown permission(s): " + strings.Join(unknown, ", "),
	})
}
