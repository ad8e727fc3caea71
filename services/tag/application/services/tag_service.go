package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ziplofy/storeconfig/pkg/apperr"
	"github.com/ziplofy/storeconfig/pkg/auth"
	pkgcache "github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	tagdomain "github.com/ziplofy/storeconfig/services/tag/domain"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
	"github.com/ziplofy/storeconfig/services/tag/domain/repositories"
	domainsvcs "github.com/ziplofy/storeconfig/services/tag/domain/services"
)

// TagService orchestrates the tag family. Event publishing happens in the
// repository (outbox); list reads go through the cache when one is configured.
type TagService struct {
	repo    repositories.TagRepository
	lists   pkgcache.Lists
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewTagService returns a TagService. lists and metrics may be nil.
func NewTagService(repo repositories.TagRepository, lists pkgcache.Lists, metrics *telemetry.Metrics, log logger.Logger) *TagService {
	return &TagService{repo: repo, lists: lists, metrics: metrics, log: log}
}

// cachedTag is the list cache representation of a record.
type cachedTag struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Create validates and persists a record of kind for storeID.
func (s *TagService) Create(ctx context.Context, kind models.Kind, storeID, name string) (*models.Tag, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}

	tagName, err := models.NewTagName(name, kind.MaxName)
	if err != nil {
		return nil, tagdomain.InvalidName(kind, err)
	}
	if err := domainsvcs.ValidateName(tagName); err != nil {
		return nil, tagdomain.InvalidName(kind, err)
	}

	tag := models.NewTag(storeID, tagName)
	if err := s.repo.Create(ctx, kind, tag); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			s.metrics.Conflict(ctx, kind.Name)
		}
		return nil, fmt.Errorf("create %s: %w", kind.Name, err)
	}

	s.invalidate(ctx, kind, storeID)
	s.metrics.Created(ctx, kind.Name)
	s.log.InfoContext(ctx, "tag created", "kind", kind.Name, "tag_id", tag.ID, "store_id", storeID)
	return tag, nil
}

// ListByStore returns the store's records of kind, cache-aside:
//  1. Serve from the list cache on a hit.
//  2. On a miss (or cache error) query Postgres.
//  3. Fill the cache with the result.
func (s *TagService) ListByStore(ctx context.Context, kind models.Kind, storeID string) ([]*models.Tag, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}

	if s.lists != nil {
		var cached []cachedTag
		hit, err := s.lists.Get(ctx, kind.Name, storeID, &cached)
		if err != nil {
			s.log.WarnContext(ctx, "tag list cache read failed", "kind", kind.Name, "error", err)
		} else if hit {
			return fromCache(cached), nil
		}
	}

	tags, err := s.repo.ListByStore(ctx, kind, storeID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Name, err)
	}

	if s.lists != nil {
		if err := s.lists.Set(ctx, kind.Name, storeID, toCache(tags)); err != nil {
			s.log.WarnContext(ctx, "tag list cache write failed", "kind", kind.Name, "error", err)
		}
	}
	return tags, nil
}

// Delete removes a record of kind by ID and returns it.
func (s *TagService) Delete(ctx context.Context, kind models.Kind, id string) (*models.Tag, error) {
	id, err := ident.Parse(id)
	if err != nil {
		return nil, err
	}

	if auth.Scoped(ctx) {
		existing, err := s.repo.GetByID(ctx, kind, id)
		if err != nil {
			return nil, fmt.Errorf("delete %s: %w", kind.Name, err)
		}
		if err := auth.CheckStore(ctx, existing.StoreID); err != nil {
			return nil, err
		}
	}

	tag, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", kind.Name, err)
	}

	s.invalidate(ctx, kind, tag.StoreID)
	s.metrics.Deleted(ctx, kind.Name)
	s.log.InfoContext(ctx, "tag deleted", "kind", kind.Name, "tag_id", tag.ID, "store_id", tag.StoreID)
	return tag, nil
}

func (s *TagService) invalidate(ctx context.Context, kind models.Kind, storeID string) {
	if s.lists == nil {
		return
	}
	// The worker invalidates again on the outbox event, so a failure here
	// only widens the stale window until that event is consumed.
	if err := s.lists.Invalidate(ctx, kind.Name, storeID); err != nil {
		s.log.WarnContext(ctx, "tag list cache invalidation failed", "kind", kind.Name, "store_id", storeID, "error", err)
	}
}

func toCache(tags []*models.Tag) []cachedTag {
	out := make([]cachedTag, len(tags))
	for i, t := range tags {
		out[i] = cachedTag{ID: t.ID, StoreID: t.StoreID, Name: t.Name.String(), CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
	}
	return out
}

func fromCache(cached []cachedTag) []*models.Tag {
	out := make([]*models.Tag, len(cached))
	for i, c := range cached {
		out[i] = &models.Tag{ID: c.ID, StoreID: c.StoreID, Name: models.TagName(c.Name), CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
	}
	return out
}
