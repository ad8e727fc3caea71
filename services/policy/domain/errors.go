package domain

import (
	"github.com/ziplofy/storeconfig/pkg/apperr"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

var notFound = make(map[string]*apperr.Error, len(models.Kinds))

func init() {
	for _, k := range models.Kinds {
		notFound[k.Name] = apperr.NotFound("%s not found", k.Label)
	}
}

// NotFound indicates no document of kind matched the requested ID. The value
// is stable per kind so errors.Is works.
func NotFound(k models.Kind) error { return notFound[k.Name] }

// InvalidContent reports a content rule violation under the kind's JSON field.
func InvalidContent(k models.Kind, reason error) error {
	return apperr.InvalidFields("Invalid "+k.Lower(), map[string]string{k.Field: reason.Error()})
}
