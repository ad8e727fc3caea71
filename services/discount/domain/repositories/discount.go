package repositories

import (
	"context"

	"github.com/ziplofy/storeconfig/services/discount/domain/models"
)

// DiscountRepository persists amount-off-products discounts.
type DiscountRepository interface {
	// Create returns ErrDiscountCodeExists when the store already uses the
	// code, compared case-insensitively.
	Create(ctx context.Context, d *models.Discount) error
	// ListByStore returns the store's discounts, newest first.
	ListByStore(ctx context.Context, storeID string) ([]*models.Discount, error)
	GetByID(ctx context.Context, id string) (*models.Discount, error)
	Delete(ctx context.Context, id string) (*models.Discount, error)
}
