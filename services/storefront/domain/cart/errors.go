package cart

import "github.com/ziplofy/storeconfig/pkg/apperr"

// Sentinel errors for cart and wishlist operations.
var (
	ErrUnknownCoupon      = apperr.InvalidFields("Invalid coupon code", map[string]string{"code": "Unknown coupon"})
	ErrItemNotInCart      = apperr.NotFound("Item not found in cart")
	ErrItemNotInWishlist  = apperr.NotFound("Item not found in wishlist")
	ErrInvalidTheme       = apperr.Validation("Invalid theme")
	ErrItemDetailsMissing = apperr.InvalidFields("Item details are required", map[string]string{"name": "is required"})
)

// InvalidItem reports every failing field of an item.
func InvalidItem(fields map[string]string) error {
	return apperr.InvalidFields("Invalid item", fields)
}
