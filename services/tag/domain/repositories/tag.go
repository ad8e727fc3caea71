package repositories

import (
	"context"

	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// TagRepository is the persistence interface for every tag-family kind.
// The domain layer owns this interface; infrastructure implements it.
type TagRepository interface {
	// Create inserts tag. It returns domain.AlreadyExists(kind) when the store
	// already holds the name (case-insensitive); there is no pre-check.
	Create(ctx context.Context, kind models.Kind, tag *models.Tag) error

	// ListByStore returns the store's records in the kind's list order.
	ListByStore(ctx context.Context, kind models.Kind, storeID string) ([]*models.Tag, error)

	// GetByID returns a record of kind, or domain.NotFound(kind).
	GetByID(ctx context.Context, kind models.Kind, id string) (*models.Tag, error)

	// Delete removes a record by ID and returns it, or domain.NotFound(kind).
	Delete(ctx context.Context, kind models.Kind, id string) (*models.Tag, error)
}
