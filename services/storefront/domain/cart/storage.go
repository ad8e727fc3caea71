package cart

import (
	"context"
	"strings"

	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
)

// Storage is the persistence adapter behind carts and wishlists. Load
// returns nil data for a key that was never saved.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Keys are the storage keys of one theme.
type Keys struct {
	Cart     string
	Coupon   string
	Wishlist string
}

// DefaultTheme uses the unprefixed keys.
const DefaultTheme = "default"

// KeysFor returns the keys of theme. The default theme (or an empty name)
// uses cartItems and wishlistItems. Others are prefixed, as in
// theme6_cart_items.
func KeysFor(theme string) (Keys, error) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" || theme == DefaultTheme {
		return Keys{Cart: "cartItems", Coupon: "cartCoupon", Wishlist: "wishlistItems"}, nil
	}
	if !pkgvalidator.IsTheme(theme) {
		return Keys{}, ErrInvalidTheme
	}
	return Keys{
		Cart:     theme + "_cart_items",
		Coupon:   theme + "_cart_coupon",
		Wishlist: theme + "_wishlist_items",
	}, nil
}
