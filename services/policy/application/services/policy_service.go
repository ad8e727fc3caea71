package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ziplofy/storeconfig/pkg/auth"
	pkgcache "github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	policydomain "github.com/ziplofy/storeconfig/services/policy/domain"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
	"github.com/ziplofy/storeconfig/services/policy/domain/repositories"
)

// PolicyService reads and writes the per-store policy documents.
type PolicyService struct {
	repo    repositories.PolicyRepository
	cache   pkgcache.Lists
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewPolicyService returns a PolicyService. cache and metrics may be nil.
func NewPolicyService(repo repositories.PolicyRepository, cache pkgcache.Lists, metrics *telemetry.Metrics, log logger.Logger) *PolicyService {
	return &PolicyService{repo: repo, cache: cache, metrics: metrics, log: log}
}

type cachedPolicy struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Upsert creates the store's document of kind or overwrites its content.
// created reports whether the document did not exist before.
func (s *PolicyService) Upsert(ctx context.Context, kind models.Kind, storeID, content string) (*models.Policy, bool, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, false, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, false, err
	}
	content, err = models.NormalizeContent(content)
	if err != nil {
		return nil, false, policydomain.InvalidContent(kind, err)
	}

	p, created, err := s.repo.Upsert(ctx, kind, models.NewPolicy(kind, storeID, content))
	if err != nil {
		return nil, false, fmt.Errorf("upsert %s: %w", kind.Name, err)
	}

	s.invalidate(ctx, kind, storeID)
	if created {
		s.metrics.Created(ctx, "policy-"+kind.Name)
	}
	s.log.InfoContext(ctx, "policy saved", "kind", kind.Name, "policy_id", p.ID, "store_id", storeID, "created", created)
	return p, created, nil
}

// GetByStore returns the store's document of kind, or nil when none is
// configured.
func (s *PolicyService) GetByStore(ctx context.Context, kind models.Kind, storeID string) (*models.Policy, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached cachedPolicy
		hit, err := s.cache.Get(ctx, kind.CacheScope(), storeID, &cached)
		if err != nil {
			s.log.WarnContext(ctx, "policy cache read failed", "kind", kind.Name, "error", err)
		} else if hit {
			return &models.Policy{
				ID: cached.ID, StoreID: cached.StoreID, Kind: kind.Name, Content: cached.Content,
				CreatedAt: cached.CreatedAt, UpdatedAt: cached.UpdatedAt,
			}, nil
		}
	}

	p, err := s.repo.GetByStore(ctx, kind, storeID)
	if errors.Is(err, policydomain.NotFound(kind)) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind.Name, err)
	}

	if s.cache != nil {
		c := cachedPolicy{ID: p.ID, StoreID: p.StoreID, Content: p.Content, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
		if err := s.cache.Set(ctx, kind.CacheScope(), storeID, c); err != nil {
			s.log.WarnContext(ctx, "policy cache write failed", "kind", kind.Name, "error", err)
		}
	}
	return p, nil
}

// Update replaces the content of the document with id.
func (s *PolicyService) Update(ctx context.Context, kind models.Kind, id, content string) (*models.Policy, error) {
	id, err := ident.Parse(id)
	if err != nil {
		return nil, err
	}
	content, err = models.NormalizeContent(content)
	if err != nil {
		return nil, policydomain.InvalidContent(kind, err)
	}

	if auth.Scoped(ctx) {
		existing, err := s.repo.GetByID(ctx, kind, id)
		if err != nil {
			return nil, fmt.Errorf("update %s: %w", kind.Name, err)
		}
		if err := auth.CheckStore(ctx, existing.StoreID); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.UpdateContent(ctx, kind, id, content)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", kind.Name, err)
	}

	s.invalidate(ctx, kind, p.StoreID)
	s.log.InfoContext(ctx, "policy updated", "kind", kind.Name, "policy_id", p.ID, "store_id", p.StoreID)
	return p, nil
}

func (s *PolicyService) invalidate(ctx context.Context, kind models.Kind, storeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, kind.CacheScope(), storeID); err != nil {
		s.log.WarnContext(ctx, "policy cache invalidation failed", "kind", kind.Name, "store_id", storeID, "error", err)
	}
}
