package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// Wishlist is an ordered set of items, unique by ID, persisted through a
// Storage. Quantities are not tracked.
type Wishlist struct {
	notifier
	storage Storage
	key     string
}

// NewWishlist returns a Wishlist stored under key.
func NewWishlist(storage Storage, key string) *Wishlist {
	return &Wishlist{storage: storage, key: key}
}

// Items returns the wishlist in insertion order.
func (w *Wishlist) Items(ctx context.Context) ([]Item, error) {
	data, err := w.storage.Load(ctx, w.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", w.key, err)
	}
	items := []Item{}
	if data == nil {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", w.key, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Contains reports whether an item with id is in the wishlist.
func (w *Wishlist) Contains(ctx context.Context, id string) (bool, error) {
	items, err := w.Items(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(items, id) >= 0, nil
}

// Add appends item unless its ID is already present.
func (w *Wishlist) Add(ctx context.Context, item Item) ([]Item, error) {
	if fields := item.Check(); fields != nil {
		return nil, InvalidItem(fields)
	}
	items, err := w.Items(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(items, item.ID) >= 0 {
		return items, nil
	}
	item.Qty = 1
	return w.save(ctx, "add", append(items, item))
}

// Remove deletes the item with id.
func (w *Wishlist) Remove(ctx context.Context, id string) ([]Item, error) {
	items, err := w.Items(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, ErrItemNotInWishlist
	}
	return w.save(ctx, "remove", slices.Delete(items, i, i+1))
}

// Toggle removes item when present and adds it otherwise. added reports
// which happened. Adding needs the item's name.
func (w *Wishlist) Toggle(ctx context.Context, item Item) (items []Item, added bool, err error) {
	items, err = w.Items(ctx)
	if err != nil {
		return nil, false, err
	}
	if i := indexOf(items, item.ID); i >= 0 {
		items, err = w.save(ctx, "toggle-off", slices.Delete(items, i, i+1))
		return items, false, err
	}
	if item.Name == "" {
		return nil, false, ErrItemDetailsMissing
	}
	if fields := item.Check(); fields != nil {
		return nil, false, InvalidItem(fields)
	}
	item.Qty = 1
	items, err = w.save(ctx, "toggle-on", append(items, item))
	return items, err == nil, err
}

func (w *Wishlist) save(ctx context.Context, action string, items []Item) ([]Item, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", w.key, err)
	}
	if err := w.storage.Save(ctx, w.key, data); err != nil {
		return nil, fmt.Errorf("save %s: %w", w.key, err)
	}
	w.notify(ctx, Change{Key: w.key, Action: action, Items: items})
	return items, nil
}

func indexOf(items []Item, id string) int {
	return slices.IndexFunc(items, func(it Item) bool { return it.ID == id })
}
