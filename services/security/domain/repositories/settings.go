package repositories

import (
	"context"

	"github.com/ziplofy/storeconfig/services/security/domain/models"
)

// SettingsRepository persists at most one Settings row per store.
type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the store never saved settings.
	Get(ctx context.Context, storeID string) (*models.Settings, error)
	// Save inserts or replaces the store's settings.
	Save(ctx context.Context, s *models.Settings) error
}
