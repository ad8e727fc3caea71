// Package memory is an in-process DiscountRepository for tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	discountdomain "github.com/ziplofy/storeconfig/services/discount/domain"
	"github.com/ziplofy/storeconfig/services/discount/domain/models"
)

// DiscountRepository stores discounts in a map keyed by ID.
type DiscountRepository struct {
	mu        sync.Mutex
	discounts map[string]models.Discount
	Err       error // when set, every call fails with it
}

// NewDiscountRepository returns an empty DiscountRepository.
func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{discounts: make(map[string]models.Discount)}
}

func (r *DiscountRepository) Create(_ context.Context, d *models.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if code := d.Code(); code != "" {
		for _, existing := range r.discounts {
			if existing.StoreID == d.StoreID && strings.EqualFold(existing.Code(), code) {
				return discountdomain.ErrDiscountCodeExists
			}
		}
	}
	r.discounts[d.ID] = *d
	return nil
}

func (r *DiscountRepository) ListByStore(_ context.Context, storeID string) ([]*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*models.Discount, 0)
	for _, d := range r.discounts {
		if d.StoreID == storeID {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *DiscountRepository) GetByID(_ context.Context, id string) (*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	d, ok := r.discounts[id]
	if !ok {
		return nil, discountdomain.ErrDiscountNotFound
	}
	return &d, nil
}

func (r *DiscountRepository) Delete(_ context.Context, id string) (*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	d, ok := r.discounts[id]
	if !ok {
		return nil, discountdomain.ErrDiscountNotFound
	}
	delete(r.discounts, id)
	return &d, nil
}
