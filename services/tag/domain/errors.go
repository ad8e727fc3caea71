package domain

import (
	"github.com/ziplofy/storeconfig/pkg/apperr"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// Sentinel errors per kind. Use errors.Is() with the values returned by
// NotFound and AlreadyExists; they are stable for a given kind.
var (
	notFound      = make(map[string]*apperr.Error, len(models.Kinds))
	alreadyExists = make(map[string]*apperr.Error, len(models.Kinds))
)

func init() {
	for _, k := range models.Kinds {
		notFound[k.Name] = apperr.NotFound("%s not found", k.Label)
		alreadyExists[k.Name] = apperr.Conflict("%s with this name already exists for this store", k.Label)
	}
}

// NotFound indicates no record of kind matched the requested ID.
func NotFound(k models.Kind) error { return notFound[k.Name] }

// AlreadyExists indicates the store already has a record of kind with the
// same name, compared case-insensitively.
func AlreadyExists(k models.Kind) error { return alreadyExists[k.Name] }

// InvalidName wraps a name rule violation as a field-level validation error.
func InvalidName(k models.Kind, reason error) error {
	return apperr.InvalidFields("Invalid "+k.Label+" name", map[string]string{"name": reason.Error()})
}
