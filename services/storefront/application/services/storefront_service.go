package services

import (
	"context"

	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	"github.com/ziplofy/storeconfig/services/storefront/domain/cart"
)

// Metric list labels.
const (
	ListCart     = "cart"
	ListWishlist = "wishlist"
)

// StorefrontService serves a visitor's per-theme cart and wishlist. The
// visitor is taken from the context by the storage adapter.
type StorefrontService struct {
	storage cart.Storage
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewStorefrontService returns a StorefrontService. metrics may be nil.
func NewStorefrontService(storage cart.Storage, metrics *telemetry.Metrics, log logger.Logger) *StorefrontService {
	return &StorefrontService{storage: storage, metrics: metrics, log: log}
}

// Cart returns the theme's cart, seeding a new one.
func (s *StorefrontService) Cart(ctx context.Context, theme string) (cart.View, error) {
	store, err := s.cart(theme)
	if err != nil {
		return cart.View{}, err
	}
	return store.Load(ctx)
}

// Dispatch applies a mutation to the theme's cart.
func (s *StorefrontService) Dispatch(ctx context.Context, theme string, a cart.Action) (cart.View, error) {
	store, err := s.cart(theme)
	if err != nil {
		return cart.View{}, err
	}
	return store.Dispatch(ctx, a)
}

// Wishlist returns the theme's wishlist.
func (s *StorefrontService) Wishlist(ctx context.Context, theme string) ([]cart.Item, error) {
	wl, err := s.wishlist(theme)
	if err != nil {
		return nil, err
	}
	return wl.Items(ctx)
}

// AddToWishlist adds item unless it is already wishlisted.
func (s *StorefrontService) AddToWishlist(ctx context.Context, theme string, item cart.Item) ([]cart.Item, error) {
	wl, err := s.wishlist(theme)
	if err != nil {
		return nil, err
	}
	return wl.Add(ctx, item)
}

// RemoveFromWishlist removes the item with id.
func (s *StorefrontService) RemoveFromWishlist(ctx context.Context, theme, id string) ([]cart.Item, error) {
	wl, err := s.wishlist(theme)
	if err != nil {
		return nil, err
	}
	return wl.Remove(ctx, id)
}

// ToggleWishlist flips the presence of item.
func (s *StorefrontService) ToggleWishlist(ctx context.Context, theme string, item cart.Item) ([]cart.Item, bool, error) {
	wl, err := s.wishlist(theme)
	if err != nil {
		return nil, false, err
	}
	return wl.Toggle(ctx, item)
}

func (s *StorefrontService) cart(theme string) (*cart.Store, error) {
	keys, err := cart.KeysFor(theme)
	if err != nil {
		return nil, err
	}
	store := cart.NewStore(s.storage, keys)
	store.OnChange(s.observe(ListCart))
	return store, nil
}

func (s *StorefrontService) wishlist(theme string) (*cart.Wishlist, error) {
	keys, err := cart.KeysFor(theme)
	if err != nil {
		return nil, err
	}
	wl := cart.NewWishlist(s.storage, keys.Wishlist)
	wl.OnChange(s.observe(ListWishlist))
	return wl, nil
}

func (s *StorefrontService) observe(list string) cart.Listener {
	return func(ctx context.Context, c cart.Change) {
		s.metrics.Mutation(ctx, list, c.Action)
		s.log.DebugContext(ctx, "storefront list changed", "key", c.Key, "action", c.Action, "items", len(c.Items))
	}
}
