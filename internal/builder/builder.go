// Package builder implements the PC configurator: one product per slot,
// a running total and a completeness check over the required slots.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"pc-park/internal/cart"
	"pc-park/internal/catalog"
	"pc-park/internal/domain"
	"pc-park/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrUnknownCategory  = errors.New("unknown component category")
	ErrCategoryMismatch = errors.New("product does not fit this component category")
	ErrIncompleteBuild  = errors.New("not all required components are selected")
)

// Slot is a category together with its current selection.
type Slot struct {
	domain.ComponentCategory
	Selected *domain.Product `json:"selected,omitempty"`
}

// View summarizes a build.
type View struct {
	Slots            []Slot `json:"slots"`
	Total            int64  `json:"total"`
	RequiredSelected int    `json:"required_selected"`
	RequiredCount    int    `json:"required_count"`
	Complete         bool   `json:"complete"`
}

// Builder holds one shopper's in-progress build.
type Builder struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	kv       storage.KV
	logger   *zap.Logger
	now      func() time.Time
	selected map[string]domain.Product
}

// New creates an empty build.
func New(cat *catalog.Catalog, kv storage.KV, logger *zap.Logger) *Builder {
	return &Builder{
		catalog:  cat,
		kv:       kv,
		logger:   logger,
		now:      time.Now,
		selected: make(map[string]domain.Product),
	}
}

// Options lists the catalog products that fit a slot.
func (b *Builder) Options(ctx context.Context, categoryID string) ([]domain.Product, error) {
	slot, ok := LookupCategory(categoryID)
	if !ok {
		return nil, ErrUnknownCategory
	}

	products, err := b.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0)
	for _, p := range products {
		if Fits(slot, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Select puts a product into a slot, replacing any previous choice. The
// product's current effective price is captured.
func (b *Builder) Select(ctx context.Context, categoryID, productID string) (domain.Product, error) {
	slot, ok := LookupCategory(categoryID)
	if !ok {
		return domain.Product{}, ErrUnknownCategory
	}

	p, err := b.catalog.Product(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if !Fits(slot, p) {
		return domain.Product{}, ErrCategoryMismatch
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected[slot.ID] = p
	return p, nil
}

// Remove empties a slot.
func (b *Builder) Remove(categoryID string) error {
	if _, ok := LookupCategory(categoryID); !ok {
		return ErrUnknownCategory
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.selected, categoryID)
	return nil
}

// Selection returns a copy of the chosen products keyed by slot id.
func (b *Builder) Selection() map[string]domain.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.selected)
}

// Total sums the captured prices of every selection.
func (b *Builder) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total()
}

// RequiredSelected counts filled required slots.
func (b *Builder) RequiredSelected() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requiredSelected()
}

// Complete reports whether every required slot is filled.
func (b *Builder) Complete() bool {
	return b.RequiredSelected() == RequiredCount()
}

// View returns every slot with its selection.
func (b *Builder) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	categories := Categories()
	slots := make([]Slot, len(categories))
	for i, c := range categories {
		slots[i] = Slot{ComponentCategory: c}
		if p, ok := b.selected[c.ID]; ok {
			slots[i].Selected = &p
		}
	}

	selected := b.requiredSelected()
	return View{
		Slots:            slots,
		Total:            b.total(),
		RequiredSelected: selected,
		RequiredCount:    RequiredCount(),
		Complete:         selected == RequiredCount(),
	}
}

// AddToCart adds every selection to store in slot order. The build must
// be complete.
func (b *Builder) AddToCart(ctx context.Context, store *cart.Store) (int, error) {
	b.mu.Lock()
	if b.requiredSelected() != RequiredCount() {
		b.mu.Unlock()
		return 0, ErrIncompleteBuild
	}

	items := make([]domain.CartItem, 0, len(b.selected))
	for _, c := range Categories() {
		if p, ok := b.selected[c.ID]; ok {
			items = append(items, domain.CartItemFromProduct(p))
		}
	}
	b.mu.Unlock()

	if err := store.AddItems(ctx, items...); err != nil {
		return len(items), fmt.Errorf("failed to add build to cart: %w", err)
	}
	return len(items), nil
}

// Save writes the current selection under the saved-build key.
func (b *Builder) Save(ctx context.Context) (domain.BuildSnapshot, error) {
	b.mu.Lock()
	snapshot := domain.BuildSnapshot{
		Components: maps.Clone(b.selected),
		Total:      b.total(),
		SavedAt:    b.now(),
	}
	b.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return domain.BuildSnapshot{}, fmt.Errorf("failed to encode build: %w", err)
	}

	if err := b.kv.Set(ctx, storage.KeySavedBuild, raw); err != nil {
		b.logger.Error("Failed to save build", zap.Error(err), zap.Int("components", len(snapshot.Components)))
		return domain.BuildSnapshot{}, fmt.Errorf("failed to save build: %w", err)
	}

	return snapshot, nil
}

func (b *Builder) total() int64 {
	var sum int64
	for _, p := range b.selected {
		sum += p.Price
	}
	return sum
}

func (b *Builder) requiredSelected() int {
	n := 0
	for _, c := range coreCategories {
		if _, ok := b.selected[c.ID]; c.Required && ok {
			n++
		}
	}
	return n
}
