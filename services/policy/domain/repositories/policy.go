package repositories

import (
	"context"

	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

// PolicyRepository persists one document per (store, kind).
type PolicyRepository interface {
	// Upsert creates the store's document or overwrites its content in one
	// atomic statement. created reports which happened. The returned policy
	// carries the stored ID and timestamps.
	Upsert(ctx context.Context, kind models.Kind, p *models.Policy) (stored *models.Policy, created bool, err error)
	// GetByStore returns the store's document, or domain.NotFound.
	GetByStore(ctx context.Context, kind models.Kind, storeID string) (*models.Policy, error)
	// GetByID returns the document of kind with id, or domain.NotFound.
	GetByID(ctx context.Context, kind models.Kind, id string) (*models.Policy, error)
	// UpdateContent replaces the content of the document with id, or
	// returns domain.NotFound.
	UpdateContent(ctx context.Context, kind models.Kind, id, content string) (*models.Policy, error)
}
