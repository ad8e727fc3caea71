// Package memory is an in-process SettingsRepository for tests.
package memory

import (
	"context"
	"sync"

	securitydomain "github.com/ziplofy/storeconfig/services/security/domain"
	"github.com/ziplofy/storeconfig/services/security/domain/models"
)

// SettingsRepository keeps one Settings per store.
type SettingsRepository struct {
	mu       sync.Mutex
	settings map[string]models.Settings
	Err      error // when set, every call fails with it
}

// NewSettingsRepository returns an empty SettingsRepository.
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{settings: make(map[string]models.Settings)}
}

func (r *SettingsRepository) Get(_ context.Context, storeID string) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.settings[storeID]
	if !ok {
		return nil, securitydomain.ErrSettingsNotFound
	}
	return &s, nil
}

func (r *SettingsRepository) Save(_ context.Context, s *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if existing, ok := r.settings[s.StoreID]; ok {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	}
	r.settings[s.StoreID] = *s
	return nil
}
