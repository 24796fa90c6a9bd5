package catalog

import (
	"context"
	"slices"

	"pc-park/internal/domain"
)

// Source is the read contract a catalog backend must satisfy. All methods
// are side-effect-free reads returning undiscounted products.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, bool, error)
	ListBundleStubs(ctx context.Context) ([]domain.BundleStub, error)
	ListDiscountRules(ctx context.Context) ([]domain.DiscountRule, error)
}

type staticSource struct {
	products []domain.Product
	stubs    []domain.BundleStub
	rules    []domain.DiscountRule
}

// NewStaticSource serves the built-in seed catalog.
func NewStaticSource() Source {
	return NewStaticSourceFrom(seedProducts, seedBundleStubs, seedDiscountRules)
}

// NewStaticSourceFrom serves the given data. The slices are copied.
func NewStaticSourceFrom(products []domain.Product, stubs []domain.BundleStub, rules []domain.DiscountRule) Source {
	return &staticSource{
		products: cloneProducts(products),
		stubs:    cloneStubs(stubs),
		rules:    slices.Clone(rules),
	}
}

// SeedProducts returns a copy of the built-in products.
func SeedProducts() []domain.Product { return cloneProducts(seedProducts) }

// SeedBundleStubs returns a copy of the built-in bundle definitions.
func SeedBundleStubs() []domain.BundleStub { return cloneStubs(seedBundleStubs) }

// SeedDiscountRules returns a copy of the built-in discount rules.
func SeedDiscountRules() []domain.DiscountRule { return slices.Clone(seedDiscountRules) }

func (s *staticSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return cloneProducts(s.products), nil
}

func (s *staticSource) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	for _, p := range s.products {
		if p.ID == id {
			return cloneProducts([]domain.Product{p})[0], true, nil
		}
	}
	return domain.Product{}, false, nil
}

func (s *staticSource) ListBundleStubs(ctx context.Context) ([]domain.BundleStub, error) {
	return cloneStubs(s.stubs), nil
}

func (s *staticSource) ListDiscountRules(ctx context.Context) ([]domain.DiscountRule, error) {
	return slices.Clone(s.rules), nil
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		p.Compatibility = slices.Clone(p.Compatibility)
		out[i] = p
	}
	return out
}

func cloneStubs(in []domain.BundleStub) []domain.BundleStub {
	out := make([]domain.BundleStub, len(in))
	for i, s := range in {
		s.ProductIDs = slices.Clone(s.ProductIDs)
		out[i] = s
	}
	return out
}
