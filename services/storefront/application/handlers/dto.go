package handlers

import "github.com/ziplofy/storeconfig/services/storefront/domain/cart"

// AddItemRequest is the body of POST .../cart/items and .../wishlist/items.
type AddItemRequest struct {
	ID    string `json:"id" validate:"required,notblank,max=64"`
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Price int64  `json:"price" validate:"gte=0,lte=100000000"`
	Qty   int    `json:"qty" validate:"omitempty,gte=1,lte=999"`
	Image string `json:"image" validate:"omitempty,max=2048"`
}

func (r *AddItemRequest) toItem() cart.Item {
	return cart.Item{ID: r.ID, Name: r.Name, Price: r.Price, Qty: r.Qty, Image: r.Image}
}

// UpdateQtyRequest is the body of PATCH .../cart/items/{itemId}. Zero or
// less removes the line.
type UpdateQtyRequest struct {
	Qty *int `json:"qty" validate:"required,lte=999"`
}

// CouponRequest is the body of POST .../cart/coupon.
type CouponRequest struct {
	Code string `json:"code" validate:"required,notblank,max=32"`
}

// ToggleItemRequest is the optional body of POST .../wishlist/items/{itemId}/toggle.
// It is needed only when the toggle adds the item.
type ToggleItemRequest struct {
	Name  string `json:"name" validate:"max=200"`
	Price int64  `json:"price" validate:"gte=0,lte=100000000"`
	Image string `json:"image" validate:"omitempty,max=2048"`
}

// ToggleResponse reports the wishlist after a toggle.
type ToggleResponse struct {
	Items []cart.Item `json:"items"`
	Added bool        `json:"added"`
}
