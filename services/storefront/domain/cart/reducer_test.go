package cart

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziplofy/storeconfig/pkg/apperr"
)

var (
	shirt = Item{ID: "shirt", Name: "Shirt", Price: 2000, Qty: 1}
	socks = Item{ID: "socks", Name: "Socks", Price: 500, Qty: 2}
)

func TestReduce(t *testing.T) {
	base := State{Items: []Item{shirt, socks}}

	tests := []struct {
		name   string
		state  State
		action Action
		want   State
	}{
		{"seed", State{}, Seed{Items: []Item{shirt}}, State{Items: []Item{shirt}}},
		{"add new line", State{Items: []Item{shirt}}, Add{Item: socks}, State{Items: []Item{shirt, socks}}},
		{"add merges quantity", base, Add{Item: Item{ID: "socks", Name: "Socks", Price: 500, Qty: 3}},
			State{Items: []Item{shirt, {ID: "socks", Name: "Socks", Price: 500, Qty: 5}}}},
		{"add defaults quantity", State{}, Add{Item: Item{ID: "hat", Name: "Hat", Price: 900}},
			State{Items: []Item{{ID: "hat", Name: "Hat", Price: 900, Qty: 1}}}},
		{"set quantity", base, SetQty{ID: "shirt", Qty: 4},
			State{Items: []Item{{ID: "shirt", Name: "Shirt", Price: 2000, Qty: 4}, socks}}},
		{"zero quantity removes", base, SetQty{ID: "shirt", Qty: 0}, State{Items: []Item{socks}}},
		{"negative quantity removes", base, SetQty{ID: "socks", Qty: -1}, State{Items: []Item{shirt}}},
		{"remove", base, Remove{ID: "shirt"}, State{Items: []Item{socks}}},
		{"apply coupon canonicalizes", base, ApplyCoupon{Code: " save10 "}, State{Items: []Item{shirt, socks}, Coupon: "SAVE10"}},
		{"clear coupon", State{Items: []Item{shirt}, Coupon: "FLAT5"}, ClearCoupon{}, State{Items: []Item{shirt}}},
		{"clear", State{Items: []Item{shirt}, Coupon: "FLAT5"}, Clear{}, State{Items: []Item{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(tt.state, tt.action)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := State{Items: []Item{shirt, socks}}
	_, _ = Reduce(s, SetQty{ID: "shirt", Qty: 9})
	_, _ = Reduce(s, Remove{ID: "shirt"})
	if diff := cmp.Diff([]Item{shirt, socks}, s.Items); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestReduce_Errors(t *testing.T) {
	s := State{Items: []Item{shirt}}
	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown coupon", ApplyCoupon{Code: "BOGUS"}, ErrUnknownCoupon},
		{"set quantity of missing line", SetQty{ID: "nope", Qty: 1}, ErrItemNotInCart},
		{"remove missing line", Remove{ID: "nope"}, ErrItemNotInCart},
		{"invalid item", Add{Item: Item{ID: "x", Price: -1}}, apperr.ErrValidation},
		{"price above limit", Add{Item: Item{ID: "x", Name: "X", Price: MaxPrice + 1}}, apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(s, tt.action)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if diff := cmp.Diff(s, got); diff != "" {
				t.Errorf("failed action changed state (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_CapsQuantity(t *testing.T) {
	s := State{}
	var err error
	for range 6 {
		s, err = Reduce(s, Add{Item: Item{ID: "bulk", Name: "Bulk", Price: 100, Qty: MaxQty}})
		if err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Items[0].Qty; got != MaxQty {
		t.Errorf("merged qty = %d, want %d", got, MaxQty)
	}

	s, err = Reduce(s, SetQty{ID: "bulk", Qty: 5000})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Items[0].Qty; got != MaxQty {
		t.Errorf("set qty = %d, want %d", got, MaxQty)
	}

	s, err = Reduce(State{}, Add{Item: Item{ID: "big", Name: "Big", Price: 1, Qty: 10_000}})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Items[0].Qty; got != MaxQty {
		t.Errorf("new line qty = %d, want %d", got, MaxQty)
	}
}
