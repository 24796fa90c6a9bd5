// Package cart implements the shopping cart store. All mutations go through
// Store methods, which serialize on a mutex and persist the full item list
// to durable storage after every change.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"pc-park/internal/domain"
	"pc-park/internal/storage"

	"go.uber.org/zap"
)

// State is the snapshot published to subscribers after every update.
type State struct {
	Items            []domain.CartItem `json:"items"`
	Count            int               `json:"count"`
	Total            int64             `json:"total"`
	Open             bool              `json:"open"`
	ShowConfirmation bool              `json:"show_confirmation"`
	LastAdded        *domain.CartItem  `json:"last_added,omitempty"`
}

// Store holds the cart line items in insertion order plus the
// presentation flags that travel with them.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *zap.Logger

	items            []domain.CartItem
	open             bool
	showConfirmation bool
	lastAdded        *domain.CartItem

	subscribers map[int]func(State)
	nextSubID   int
}

// Load creates a Store and rehydrates it from kv. A missing or malformed
// snapshot yields an empty cart; a malformed one is logged. Any other read
// error is returned so the caller can retry instead of starting empty and
// overwriting the stored cart.
func Load(ctx context.Context, kv storage.KV, logger *zap.Logger) (*Store, error) {
	s := &Store{
		kv:          kv,
		logger:      logger,
		items:       []domain.CartItem{},
		subscribers: make(map[int]func(State)),
	}

	raw, err := kv.Get(ctx, storage.KeyCartItems)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Error("Failed to parse stored cart, starting empty",
			zap.Error(err),
			zap.Int("bytes", len(raw)),
		)
		return s, nil
	}

	if items != nil {
		s.items = items
	}
	return s, nil
}

// AddItem increments the quantity of an existing line or appends a new
// line with quantity 1. The stored price of an existing line is kept.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem) error {
	return s.mutate(ctx, func() { s.add(item) })
}

// AddItems adds each item in order with AddItem semantics.
func (s *Store) AddItems(ctx context.Context, items ...domain.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.mutate(ctx, func() {
		for _, item := range items {
			s.add(item)
		}
	})
}

// RemoveItem deletes the line with the given id. Unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	return s.mutate(ctx, func() {
		s.items = slices.DeleteFunc(s.items, func(i domain.CartItem) bool { return i.ID == id })
	})
}

// UpdateQuantity sets a line's quantity. Quantities below 1 are ignored;
// use RemoveItem to drop a line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	return s.mutate(ctx, func() {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Quantity = quantity
			}
		}
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() { s.items = []domain.CartItem{} })
}

// SetOpen toggles the cart panel flag. Flags are not persisted.
func (s *Store) SetOpen(open bool) {
	s.mutateFlags(func() { s.open = open })
}

// DismissConfirmation hides the added-to-cart confirmation.
func (s *Store) DismissConfirmation() {
	s.mutateFlags(func() { s.showConfirmation = false })
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Count returns the sum of quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return count(s.items)
}

// Total returns the sum of price times quantity using stored unit prices.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn to receive every new State. The returned function
// unregisters it.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) add(item domain.CartItem) {
	added := item
	added.Quantity = 1
	s.lastAdded = &added
	s.showConfirmation = true

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			return
		}
	}
	s.items = append(s.items, added)
}

// mutate applies fn under the lock, persists the items and then notifies
// subscribers. The in-memory change stands even if persisting fails.
func (s *Store) mutate(ctx context.Context, fn func()) error {
	s.mu.Lock()
	fn()
	err := s.persist(ctx)
	state, subs := s.snapshot(), s.subscriberList()
	s.mu.Unlock()

	notify(subs, state)
	return err
}

func (s *Store) mutateFlags(fn func()) {
	s.mu.Lock()
	fn()
	state, subs := s.snapshot(), s.subscriberList()
	s.mu.Unlock()

	notify(subs, state)
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.kv.Set(ctx, storage.KeyCartItems, raw); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err), zap.Int("items", len(s.items)))
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (s *Store) snapshot() State {
	state := State{
		Items:            slices.Clone(s.items),
		Count:            count(s.items),
		Total:            total(s.items),
		Open:             s.open,
		ShowConfirmation: s.showConfirmation,
	}
	if s.lastAdded != nil {
		last := *s.lastAdded
		state.LastAdded = &last
	}
	return state
}

func (s *Store) subscriberList() []func(State) {
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(State), state State) {
	for _, fn := range subs {
		fn(state)
	}
}

func count(items []domain.CartItem) int {
	n := 0
	for _, i := range items {
		n += i.Quantity
	}
	return n
}

func total(items []domain.CartItem) int64 {
	var sum int64
	for _, i := range items {
		sum += i.Subtotal()
	}
	return sum
}
