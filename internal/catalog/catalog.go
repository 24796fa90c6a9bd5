// Package catalog serves the storefront's product and deal reads. Discounts
// and bundles are re-derived from the Source on every call; nothing is
// cached, so a change in the source is visible on the next read.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pc-park/internal/bundle"
	"pc-park/internal/domain"
	"pc-park/internal/pricing"
	"pc-park/internal/query"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBundleNotFound  = errors.New("bundle not found")
)

// RelatedLimit is the number of related products shown on a detail page.
const RelatedLimit = 4

// Catalog is the read service over a Source.
type Catalog struct {
	source Source
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Catalog.
func New(source Source, logger *zap.Logger) *Catalog {
	return &Catalog{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the clock used for discount validity checks.
func (c *Catalog) WithClock(now func() time.Time) *Catalog {
	c.now = now
	return c
}

// Products returns every product with discounts applied, in catalog order.
func (c *Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := c.source.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	rules, err := c.source.ListDiscountRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discount rules: %w", err)
	}

	return pricing.ApplyDiscounts(products, rules), nil
}

// Product returns one discounted product or ErrProductNotFound.
func (c *Catalog) Product(ctx context.Context, id string) (domain.Product, error) {
	p, found, err := c.source.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	if !found {
		return domain.Product{}, ErrProductNotFound
	}

	rules, err := c.source.ListDiscountRules(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to list discount rules: %w", err)
	}

	return pricing.ApplyDiscounts([]domain.Product{p}, rules)[0], nil
}

// ByCategory returns the products of one category; "all" returns everything.
func (c *Catalog) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return c.filtered(ctx, func(ps []domain.Product) []domain.Product { return query.ByCategory(category, ps) })
}

// BySubcategory returns the products of one subcategory.
func (c *Catalog) BySubcategory(ctx context.Context, subcategory string) ([]domain.Product, error) {
	return c.filtered(ctx, func(ps []domain.Product) []domain.Product { return query.BySubcategory(subcategory, ps) })
}

// ByBrand returns the products of one brand.
func (c *Catalog) ByBrand(ctx context.Context, brand string) ([]domain.Product, error) {
	return c.filtered(ctx, func(ps []domain.Product) []domain.Product { return query.ByBrand(brand, ps) })
}

// Search matches keyword against product names and descriptions.
func (c *Catalog) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	return c.filtered(ctx, func(ps []domain.Product) []domain.Product { return query.Search(keyword, ps) })
}

// Compatible returns products tagged with the compatibility tag.
func (c *Catalog) Compatible(ctx context.Context, tag string) ([]domain.Product, error) {
	return c.filtered(ctx, func(ps []domain.Product) []domain.Product { return query.ByCompatibility(tag, ps) })
}

// Discounted returns products that carry a discount.
func (c *Catalog) Discounted(ctx context.Context) ([]domain.Product, error) {
	return c.filtered(ctx, query.Discounted)
}

// ByIDs returns the products whose id is listed, in catalog order. Unknown
// ids are ignored.
func (c *Catalog) ByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return c.filtered(ctx, func(ps []domain.Product) []domain.Product {
		out := make([]domain.Product, 0, len(ids))
		for _, p := range ps {
			if _, ok := want[p.ID]; ok {
				out = append(out, p)
			}
		}
		return out
	})
}

// Related returns up to RelatedLimit products from the same category.
func (c *Catalog) Related(ctx context.Context, product domain.Product) ([]domain.Product, error) {
	return c.filtered(ctx, func(ps []domain.Product) []domain.Product {
		return query.Related(product, ps, RelatedLimit)
	})
}

// Brands returns the sorted distinct brands.
func (c *Catalog) Brands(ctx context.Context) ([]string, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	return query.Brands(products), nil
}

// List filters, sorts and paginates the catalog.
func (c *Catalog) List(ctx context.Context, filter query.ProductFilter, sort query.SortOption, page, pageSize int) (query.Page[domain.Product], error) {
	products, err := c.Products(ctx)
	if err != nil {
		return query.Page[domain.Product]{}, err
	}

	results := query.SortProducts(filter.Apply(products), sort)
	return query.Paginate(results, page, pageSize), nil
}

// DiscountActive reports whether p's discount is still valid now.
func (c *Catalog) DiscountActive(p domain.Product) bool {
	return pricing.HasValidDiscount(p, c.now())
}

// DiscountTimeRemaining renders the remaining discount time, or "" when the
// product has no discount.
func (c *Catalog) DiscountTimeRemaining(p domain.Product) string {
	if !p.DiscountEnabled || p.DiscountExpiry.IsZero() {
		return ""
	}
	return pricing.TimeRemaining(p.DiscountExpiry, c.now())
}

// Bundles resolves every bundle against the discounted catalog.
func (c *Catalog) Bundles(ctx context.Context) ([]domain.DealPackage, error) {
	products, stubs, err := c.bundleInputs(ctx)
	if err != nil {
		return nil, err
	}

	deals := bundle.All(stubs, products)
	for _, d := range deals {
		c.reportDropped(d)
	}
	return deals, nil
}

// Bundle resolves one bundle or returns ErrBundleNotFound.
func (c *Catalog) Bundle(ctx context.Context, id string) (domain.DealPackage, error) {
	products, stubs, err := c.bundleInputs(ctx)
	if err != nil {
		return domain.DealPackage{}, err
	}

	deal, ok := bundle.ByID(id, stubs, products)
	if !ok {
		return domain.DealPackage{}, ErrBundleNotFound
	}
	c.reportDropped(deal)
	return deal, nil
}

// BundlesByDealType resolves the bundles of one deal type.
func (c *Catalog) BundlesByDealType(ctx context.Context, dealType domain.DealType) ([]domain.DealPackage, error) {
	products, stubs, err := c.bundleInputs(ctx)
	if err != nil {
		return nil, err
	}

	deals := bundle.ByDealType(dealType, stubs, products)
	for _, d := range deals {
		c.reportDropped(d)
	}
	return deals, nil
}

// Deals filters bundles by deal type ("all" for every type) and sorts them.
func (c *Catalog) Deals(ctx context.Context, dealType string, sort query.DealSortOption) ([]domain.DealPackage, error) {
	deals, err := c.Bundles(ctx)
	if err != nil {
		return nil, err
	}
	return query.SortDeals(query.DealsByType(dealType, deals), sort), nil
}

func (c *Catalog) filtered(ctx context.Context, fn func([]domain.Product) []domain.Product) ([]domain.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	return fn(products), nil
}

func (c *Catalog) bundleInputs(ctx context.Context) ([]domain.Product, []domain.BundleStub, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, nil, err
	}

	stubs, err := c.source.ListBundleStubs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bundle stubs: %w", err)
	}

	return products, stubs, nil
}

func (c *Catalog) reportDropped(deal domain.DealPackage) {
	if deal.DroppedIDs == 0 {
		return
	}
	c.logger.Warn("Bundle references products missing from catalog",
		zap.String("bundle_id", deal.ID),
		zap.Int("dropped_ids", deal.DroppedIDs),
		zap.Int("declared_ids", len(deal.ProductIDs)),
	)
}
