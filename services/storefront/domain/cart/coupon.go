package cart

import "strings"

// Coupon is a storefront promotion code. Exactly one of Percent, Amount or
// FreeShipping is set.
type Coupon struct {
	Code         string
	Percent      int64
	Amount       int64
	FreeShipping bool
}

var coupons = map[string]Coupon{
	"SAVE10":   {Code: "SAVE10", Percent: 10},
	"SAVE20":   {Code: "SAVE20", Percent: 20},
	"FLAT5":    {Code: "FLAT5", Amount: 500},
	"FREESHIP": {Code: "FREESHIP", FreeShipping: true},
}

// LookupCoupon matches code case-insensitively, ignoring surrounding space.
func LookupCoupon(code string) (Coupon, bool) {
	c, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// discount returns the reduction on subtotal, never more than subtotal.
// Percentages round half up to the cent.
func (c Coupon) discount(subtotal int64) int64 {
	var d int64
	switch {
	case c.Percent > 0:
		// Split so subtotal*Percent cannot overflow.
		d = subtotal/100*c.Percent + (subtotal%100*c.Percent+50)/100
	case c.Amount > 0:
		d = c.Amount
	}
	return max(min(d, subtotal), 0)
}
