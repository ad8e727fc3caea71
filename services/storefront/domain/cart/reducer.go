package cart

import "slices"

// State is the persisted cart.
type State struct {
	Items  []Item
	Coupon string
}

// Action is a cart mutation. Name labels it in metrics and change events.
type Action interface {
	Name() string
}

type (
	// Seed replaces the items with Items.
	Seed struct{ Items []Item }
	// Add puts Item in the cart, adding to the quantity of an existing line.
	// Quantities stop at MaxQty.
	Add struct{ Item Item }
	// SetQty sets the quantity of a line. Zero or less removes it.
	SetQty struct {
		ID  string
		Qty int
	}
	// Remove deletes a line.
	Remove struct{ ID string }
	// ApplyCoupon replaces the applied coupon.
	ApplyCoupon struct{ Code string }
	// ClearCoupon drops the applied coupon.
	ClearCoupon struct{}
	// Clear empties the cart and drops the coupon.
	Clear struct{}
)

func (Seed) Name() string        { return "seed" }
func (Add) Name() string         { return "add" }
func (SetQty) Name() string      { return "set-qty" }
func (Remove) Name() string      { return "remove" }
func (ApplyCoupon) Name() string { return "apply-coupon" }
func (ClearCoupon) Name() string { return "clear-coupon" }
func (Clear) Name() string       { return "clear" }

// Reduce returns the state after a. s is not modified.
func Reduce(s State, a Action) (State, error) {
	next := State{Items: slices.Clone(s.Items), Coupon: s.Coupon}
	if next.Items == nil {
		next.Items = []Item{}
	}

	switch a := a.(type) {
	case Seed:
		next.Items = slices.Clone(a.Items)
		if next.Items == nil {
			next.Items = []Item{}
		}
	case Add:
		if fields := a.Item.Check(); fields != nil {
			return s, InvalidItem(fields)
		}
		item := a.Item
		if item.Qty <= 0 {
			item.Qty = 1
		}
		if i := next.index(item.ID); i >= 0 {
			next.Items[i].Qty = min(min(next.Items[i].Qty, MaxQty)+min(item.Qty, MaxQty), MaxQty)
		} else {
			item.Qty = min(item.Qty, MaxQty)
			next.Items = append(next.Items, item)
		}
	case SetQty:
		i := next.index(a.ID)
		if i < 0 {
			return s, ErrItemNotInCart
		}
		if a.Qty <= 0 {
			next.Items = slices.Delete(next.Items, i, i+1)
		} else {
			next.Items[i].Qty = min(a.Qty, MaxQty)
		}
	case Remove:
		i := next.index(a.ID)
		if i < 0 {
			return s, ErrItemNotInCart
		}
		next.Items = slices.Delete(next.Items, i, i+1)
	case ApplyCoupon:
		c, ok := LookupCoupon(a.Code)
		if !ok {
			return s, ErrUnknownCoupon
		}
		next.Coupon = c.Code
	case ClearCoupon:
		next.Coupon = ""
	case Clear:
		next.Items = []Item{}
		next.Coupon = ""
	}
	return next, nil
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.Items, func(it Item) bool { return it.ID == id })
}
