package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ziplofy/storeconfig/pkg/auth"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	securitydomain "github.com/ziplofy/storeconfig/services/security/domain"
	"github.com/ziplofy/storeconfig/services/security/domain/models"
	"github.com/ziplofy/storeconfig/services/security/domain/repositories"
	"github.com/ziplofy/storeconfig/services/security/domain/services"
)

// SecurityService reads and changes a store's access code settings.
type SecurityService struct {
	repo    repositories.SettingsRepository
	metrics *telemetry.Metrics
	log     logger.Logger
	now     func() time.Time
	gen     services.CodeSource
}

// NewSecurityService returns a SecurityService drawing codes from
// models.GenerateCode. metrics may be nil.
func NewSecurityService(repo repositories.SettingsRepository, metrics *telemetry.Metrics, log logger.Logger) *SecurityService {
	return &SecurityService{
		repo:    repo,
		metrics: metrics,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		gen:     models.GenerateCode,
	}
}

// Get returns the store's settings, or the unsaved defaults when the store
// has never configured them.
func (s *SecurityService) Get(ctx context.Context, storeID string) (*models.Settings, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.load(ctx, storeID)
}

// Update applies the desired requireCode state, regenerating the code when
// asked to.
func (s *SecurityService) Update(ctx context.Context, storeID string, requireCode, regenerate bool) (*models.Settings, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}
	cur, err := s.load(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, cur, services.Request{RequireCode: requireCode, Regenerate: regenerate})
}

// Regenerate issues a fresh code. It fails with ErrCodeNotRequired when the
// store does not require one.
func (s *SecurityService) Regenerate(ctx context.Context, storeID string) (*models.Settings, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}
	cur, err := s.load(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !cur.RequireCode {
		return nil, securitydomain.ErrCodeNotRequired
	}
	return s.apply(ctx, cur, services.Request{RequireCode: true, Regenerate: true})
}

func (s *SecurityService) load(ctx context.Context, storeID string) (*models.Settings, error) {
	cur, err := s.repo.Get(ctx, storeID)
	if errors.Is(err, securitydomain.ErrSettingsNotFound) {
		return models.Defaults(storeID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load store security: %w", err)
	}
	return cur, nil
}

func (s *SecurityService) apply(ctx context.Context, cur *models.Settings, req services.Request) (*models.Settings, error) {
	now := s.now()
	next, issued, err := services.Apply(*cur, req, now, s.gen)
	if err != nil {
		return nil, err
	}
	next.EnsureID(now)
	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("save store security: %w", err)
	}

	if issued {
		s.metrics.CodeIssued(ctx)
		s.log.InfoContext(ctx, "store access code issued", "store_id", next.StoreID)
	}
	s.log.InfoContext(ctx, "store security updated", "store_id", next.StoreID, "require_code", next.RequireCode)
	return &next, nil
}
