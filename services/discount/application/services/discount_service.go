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
	discountdomain "github.com/ziplofy/storeconfig/services/discount/domain"
	"github.com/ziplofy/storeconfig/services/discount/domain/models"
	"github.com/ziplofy/storeconfig/services/discount/domain/repositories"
	domainsvcs "github.com/ziplofy/storeconfig/services/discount/domain/services"
)

// CacheScope is the list cache scope of per-store discount lists.
const CacheScope = "discount"

// DiscountService orchestrates amount-off-products discounts.
type DiscountService struct {
	repo    repositories.DiscountRepository
	lists   pkgcache.Lists
	metrics *telemetry.Metrics
	log     logger.Logger
	now     func() time.Time
}

// NewDiscountService returns a DiscountService. lists and metrics may be nil.
func NewDiscountService(repo repositories.DiscountRepository, lists pkgcache.Lists, metrics *telemetry.Metrics, log logger.Logger) *DiscountService {
	return &DiscountService{repo: repo, lists: lists, metrics: metrics, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// cachedDiscount mirrors models.Discount for the list cache.
type cachedDiscount struct {
	ID              string                 `json:"id"`
	StoreID         string                 `json:"storeId"`
	Method          models.Method          `json:"method"`
	DiscountCode    *string                `json:"discountCode,omitempty"`
	Title           *string                `json:"title,omitempty"`
	ValueType       models.ValueType       `json:"valueType"`
	Percentage      *float64               `json:"percentage,omitempty"`
	FixedAmount     *float64               `json:"fixedAmount,omitempty"`
	AppliesTo       models.AppliesTo       `json:"appliesTo"`
	MinimumPurchase models.MinimumPurchase `json:"minimumPurchase"`
	Eligibility     models.Eligibility     `json:"eligibility"`
	Combinations    models.Combinations    `json:"combinations"`
	MaximumUses     models.MaximumUses     `json:"maximumUses"`
	ActiveDates     models.ActiveDates     `json:"activeDates"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// Create normalizes d, checks every conditional rule and persists it.
// All rule violations are reported together.
func (s *DiscountService) Create(ctx context.Context, d *models.Discount) (*models.Discount, error) {
	storeID, err := ident.ParseStore(d.StoreID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}
	d.StoreID = storeID

	now := s.now()
	d.Normalize(now)
	if failed := domainsvcs.Validate(d); failed != nil {
		return nil, discountdomain.InvalidDiscount(failed)
	}
	d.Stamp(now)

	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			s.metrics.Conflict(ctx, "discount")
		}
		return nil, fmt.Errorf("create discount: %w", err)
	}

	s.invalidate(ctx, storeID)
	s.metrics.Created(ctx, "discount")
	s.log.InfoContext(ctx, "discount created", "discount_id", d.ID, "store_id", storeID, "method", d.Method)
	return d, nil
}

// ListByStore returns the store's discounts, newest first, served from the
// list cache when possible.
func (s *DiscountService) ListByStore(ctx context.Context, storeID string) ([]*models.Discount, error) {
	storeID, err := ident.ParseStore(storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckStore(ctx, storeID); err != nil {
		return nil, err
	}

	if s.lists != nil {
		var cached []cachedDiscount
		hit, err := s.lists.Get(ctx, CacheScope, storeID, &cached)
		if err != nil {
			s.log.WarnContext(ctx, "discount list cache read failed", "error", err)
		} else if hit {
			return fromCache(cached), nil
		}
	}

	discounts, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}

	if s.lists != nil {
		if err := s.lists.Set(ctx, CacheScope, storeID, toCache(discounts)); err != nil {
			s.log.WarnContext(ctx, "discount list cache write failed", "error", err)
		}
	}
	return discounts, nil
}

// Get returns one discount by ID.
func (s *DiscountService) Get(ctx context.Context, id string) (*models.Discount, error) {
	id, err := ident.Parse(id)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get discount: %w", err)
	}
	if err := auth.CheckStore(ctx, d.StoreID); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a discount and returns it.
func (s *DiscountService) Delete(ctx context.Context, id string) (*models.Discount, error) {
	id, err := ident.Parse(id)
	if err != nil {
		return nil, err
	}
	if auth.Scoped(ctx) {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("delete discount: %w", err)
		}
		if err := auth.CheckStore(ctx, existing.StoreID); err != nil {
			return nil, err
		}
	}

	d, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete discount: %w", err)
	}

	s.invalidate(ctx, d.StoreID)
	s.metrics.Deleted(ctx, "discount")
	s.log.InfoContext(ctx, "discount deleted", "discount_id", d.ID, "store_id", d.StoreID)
	return d, nil
}

func (s *DiscountService) invalidate(ctx context.Context, storeID string) {
	if s.lists == nil {
		return
	}
	if err := s.lists.Invalidate(ctx, CacheScope, storeID); err != nil {
		s.log.WarnContext(ctx, "discount list cache invalidation failed", "store_id", storeID, "error", err)
	}
}

func toCache(ds []*models.Discount) []cachedDiscount {
	out := make([]cachedDiscount, len(ds))
	for i, d := range ds {
		out[i] = cachedDiscount{
			ID: d.ID, StoreID: d.StoreID, Method: d.Method, DiscountCode: d.DiscountCode, Title: d.Title,
			ValueType: d.ValueType, Percentage: d.Percentage, FixedAmount: d.FixedAmount,
			AppliesTo: d.AppliesTo, MinimumPurchase: d.MinimumPurchase, Eligibility: d.Eligibility,
			Combinations: d.Combinations, MaximumUses: d.MaximumUses, ActiveDates: d.ActiveDates,
			CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
		}
	}
	return out
}

func fromCache(cached []cachedDiscount) []*models.Discount {
	out := make([]*models.Discount, len(cached))
	for i, c := range cached {
		out[i] = &models.Discount{
			ID: c.ID, StoreID: c.StoreID, Method: c.Method, DiscountCode: c.DiscountCode, Title: c.Title,
			ValueType: c.ValueType, Percentage: c.Percentage, FixedAmount: c.FixedAmount,
			AppliesTo: c.AppliesTo, MinimumPurchase: c.MinimumPurchase, Eligibility: c.Eligibility,
			Combinations: c.Combinations, MaximumUses: c.MaximumUses, ActiveDates: c.ActiveDates,
			CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
		}
	}
	return out
}
