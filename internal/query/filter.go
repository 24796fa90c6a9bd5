// Package query holds the pure filtering, sorting and pagination functions
// used by the product listing, deal listing and builder selector views.
package query

import (
	"fmt"
	"strings"

	"pc-park/internal/domain"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// PriceRange is an inclusive price interval.
type PriceRange struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// PriceRanges are the listing page's price buckets.
var PriceRanges = []PriceRange{
	{ID: "price-1", Label: "Under BDT 10,000", Min: 0, Max: 9999},
	{ID: "price-2", Label: "BDT 10,000 - 20,000", Min: 10000, Max: 20000},
	{ID: "price-3", Label: "BDT 20,000 - 50,000", Min: 20000, Max: 50000},
	{ID: "price-4", Label: "BDT 50,000 - 100,000", Min: 50000, Max: 100000},
	{ID: "price-5", Label: "Over BDT 100,000", Min: 100000, Max: 10000000},
}

// LookupPriceRanges returns the preset ranges with the given ids, ignoring
// unknown ids.
func LookupPriceRanges(ids []string) []PriceRange {
	var out []PriceRange
	for _, r := range PriceRanges {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// ParsePriceRanges resolves ids like LookupPriceRanges but rejects any id
// that names no preset range.
func ParsePriceRanges(ids []string) ([]PriceRange, error) {
	for _, id := range ids {
		if len(LookupPriceRanges([]string{id})) == 0 {
			return nil, fmt.Errorf("unknown price range %q", id)
		}
	}
	return LookupPriceRanges(ids), nil
}

// ProductFilter combines every listing filter. Zero fields are ignored;
// within Brands and PriceRanges a product must match any one entry.
type ProductFilter struct {
	Category       string
	Subcategory    string
	Brands         []string
	PriceRanges    []PriceRange
	Search         string
	Compatibility  string
	DiscountedOnly bool
}

// Apply returns the products that satisfy every set criterion, preserving
// input order. The input is not modified.
func (f ProductFilter) Apply(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f ProductFilter) matches(p domain.Product) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && p.Subcategory != f.Subcategory {
		return false
	}
	if len(f.Brands) > 0 && !containsString(f.Brands, p.Brand) {
		return false
	}
	if len(f.PriceRanges) > 0 && !inAnyRange(f.PriceRanges, p.Price) {
		return false
	}
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if f.Compatibility != "" && !p.HasCompatibility(f.Compatibility) {
		return false
	}
	if f.DiscountedOnly && !p.DiscountEnabled {
		return false
	}
	return true
}

// ByCategory filters on exact category; "all" returns every product.
func ByCategory(category string, products []domain.Product) []domain.Product {
	return ProductFilter{Category: category}.Apply(products)
}

// BySubcategory filters on exact subcategory.
func BySubcategory(subcategory string, products []domain.Product) []domain.Product {
	return filterFunc(products, func(p domain.Product) bool { return p.Subcategory == subcategory })
}

// ByBrand filters on exact brand.
func ByBrand(brand string, products []domain.Product) []domain.Product {
	return filterFunc(products, func(p domain.Product) bool { return p.Brand == brand })
}

// ByPriceRanges keeps products inside at least one of the ranges.
func ByPriceRanges(ranges []PriceRange, products []domain.Product) []domain.Product {
	return filterFunc(products, func(p domain.Product) bool { return inAnyRange(ranges, p.Price) })
}

// ByCompatibility keeps products whose compatibility set contains tag.
func ByCompatibility(tag string, products []domain.Product) []domain.Product {
	return filterFunc(products, func(p domain.Product) bool { return p.HasCompatibility(tag) })
}

// Discounted keeps products with a discount applied.
func Discounted(products []domain.Product) []domain.Product {
	return filterFunc(products, func(p domain.Product) bool { return p.DiscountEnabled })
}

// Search does a case-insensitive substring match over name and description.
func Search(keyword string, products []domain.Product) []domain.Product {
	return filterFunc(products, func(p domain.Product) bool { return matchesSearch(p, keyword) })
}

// Related returns up to limit products sharing product's category, excluding
// product itself, in catalog order.
func Related(product domain.Product, products []domain.Product, limit int) []domain.Product {
	if product.Category == "" || limit <= 0 {
		return []domain.Product{}
	}

	out := make([]domain.Product, 0, limit)
	for _, p := range products {
		if p.Category == product.Category && p.ID != product.ID {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// DealsByType keeps deals of the given type; "all" or "" keeps every deal.
func DealsByType(dealType string, deals []domain.DealPackage) []domain.DealPackage {
	out := make([]domain.DealPackage, 0, len(deals))
	for _, d := range deals {
		if dealType == "" || dealType == CategoryAll || string(d.DealType) == dealType {
			out = append(out, d)
		}
	}
	return out
}

func filterFunc(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSearch(p domain.Product, keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Name), k) ||
		strings.Contains(strings.ToLower(p.Description), k)
}

func inAnyRange(ranges []PriceRange, price int64) bool {
	for _, r := range ranges {
		if r.Contains(price) {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
