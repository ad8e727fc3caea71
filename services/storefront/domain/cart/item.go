// Package cart models the storefront cart and wishlist as explicit state
// containers over a pluggable Storage. Prices are integer cents.
package cart

import (
	"math"
	"strings"
)

const (
	// MaxQty is the largest quantity a single line may hold.
	MaxQty = 999
	// MaxPrice is the largest unit price accepted, in cents.
	MaxPrice int64 = 100_000_000
)

// Item is one line of a cart or wishlist.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
	Image string `json:"image,omitempty"`
}

// LineTotal is Price times Qty. Lines read back from storage are not
// trusted: negative factors count as zero and the product saturates.
func (i Item) LineTotal() int64 {
	if i.Price <= 0 || i.Qty <= 0 {
		return 0
	}
	return mulSat(i.Price, int64(i.Qty))
}

// Check reports the fields of i that cannot be stored, keyed by JSON name.
func (i Item) Check() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(i.ID) == "" {
		fields["id"] = "is required"
	}
	if strings.TrimSpace(i.Name) == "" {
		fields["name"] = "is required"
	}
	switch {
	case i.Price < 0:
		fields["price"] = "Must be zero or more"
	case i.Price > MaxPrice:
		fields["price"] = "Must be at most 100000000"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// DemoItems are placed in a cart that has never been saved.
func DemoItems() []Item {
	return []Item{
		{ID: "demo-tee", Name: "Classic Cotton Tee", Price: 1999, Qty: 1, Image: "/assets/products/classic-tee.jpg"},
		{ID: "demo-mug", Name: "Stoneware Mug", Price: 1250, Qty: 1, Image: "/assets/products/stoneware-mug.jpg"},
	}
}

// mulSat and addSat work on non-negative operands and stop at MaxInt64.
func mulSat(a, b int64) int64 {
	if b != 0 && a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
