package cart

const (
	// FreeShippingThreshold is the subtotal from which shipping is free.
	FreeShippingThreshold int64 = 5000
	// FlatShipping is charged below the threshold.
	FlatShipping int64 = 499
)

// Totals are the amounts shown under the cart, in cents.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals prices s. An unknown stored coupon counts as no coupon.
func ComputeTotals(s State) Totals {
	var t Totals
	for _, it := range s.Items {
		t.Subtotal = addSat(t.Subtotal, it.LineTotal())
	}

	coupon, _ := LookupCoupon(s.Coupon)
	t.Discount = coupon.discount(t.Subtotal)

	if len(s.Items) > 0 && t.Subtotal < FreeShippingThreshold && !coupon.FreeShipping {
		t.Shipping = FlatShipping
	}
	t.Total = t.Subtotal - t.Discount + t.Shipping
	return t
}
