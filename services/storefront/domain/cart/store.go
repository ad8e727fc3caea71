package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// View is a cart as rendered to the shopper.
type View struct {
	Items  []Item `json:"items"`
	Coupon string `json:"coupon,omitempty"`
	Totals Totals `json:"totals"`
}

// Change describes a persisted mutation.
type Change struct {
	Key    string
	Action string
	Items  []Item
}

// Listener is called after a mutation has been saved.
type Listener func(ctx context.Context, c Change)

type notifier struct {
	mu        sync.RWMutex
	listeners []Listener
}

// OnChange registers l for every later mutation.
func (n *notifier) OnChange(l Listener) {
	n.mu.Lock()
	n.listeners = append(n.listeners, l)
	n.mu.Unlock()
}

func (n *notifier) notify(ctx context.Context, c Change) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, l := range n.listeners {
		l(ctx, c)
	}
}

// Store is a cart persisted through a Storage. Every call reads the state
// fresh, so concurrent writers of the same key are last-write-wins.
type Store struct {
	notifier
	storage Storage
	keys    Keys
}

// NewStore returns a cart Store for one theme's keys.
func NewStore(storage Storage, keys Keys) *Store {
	return &Store{storage: storage, keys: keys}
}

// Load returns the cart, seeding DemoItems into a cart that was never saved.
func (s *Store) Load(ctx context.Context) (View, error) {
	state, err := s.read(ctx)
	if err != nil {
		return View{}, err
	}
	return render(state), nil
}

// Dispatch applies a to the stored cart, saves the result and notifies
// listeners.
func (s *Store) Dispatch(ctx context.Context, a Action) (View, error) {
	state, err := s.read(ctx)
	if err != nil {
		return View{}, err
	}
	next, err := Reduce(state, a)
	if err != nil {
		return View{}, err
	}
	if err := s.write(ctx, next); err != nil {
		return View{}, err
	}
	s.notify(ctx, Change{Key: s.keys.Cart, Action: a.Name(), Items: next.Items})
	return render(next), nil
}

func (s *Store) read(ctx context.Context) (State, error) {
	data, err := s.storage.Load(ctx, s.keys.Cart)
	if err != nil {
		return State{}, fmt.Errorf("load %s: %w", s.keys.Cart, err)
	}
	if data == nil {
		seeded, _ := Reduce(State{}, Seed{Items: DemoItems()})
		if err := s.write(ctx, seeded); err != nil {
			return State{}, err
		}
		return seeded, nil
	}

	var state State
	if err := json.Unmarshal(data, &state.Items); err != nil {
		return State{}, fmt.Errorf("decode %s: %w", s.keys.Cart, err)
	}
	coupon, err := s.storage.Load(ctx, s.keys.Coupon)
	if err != nil {
		return State{}, fmt.Errorf("load %s: %w", s.keys.Coupon, err)
	}
	state.Coupon = string(coupon)
	return state, nil
}

func (s *Store) write(ctx context.Context, state State) error {
	data, err := json.Marshal(state.Items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.keys.Cart, err)
	}
	if err := s.storage.Save(ctx, s.keys.Cart, data); err != nil {
		return fmt.Errorf("save %s: %w", s.keys.Cart, err)
	}
	if err := s.storage.Save(ctx, s.keys.Coupon, []byte(state.Coupon)); err != nil {
		return fmt.Errorf("save %s: %w", s.keys.Coupon, err)
	}
	return nil
}

func render(s State) View {
	items := s.Items
	if items == nil {
		items = []Item{}
	}
	return View{Items: items, Coupon: s.Coupon, Totals: ComputeTotals(s)}
}
