package query

import (
	"cmp"
	"slices"
	"strings"

	"pc-park/internal/domain"
)

// SortOption names a product ordering.
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	// SortNewest reverses catalog order; products carry no timestamps.
	SortNewest   SortOption = "newest"
	SortNameAsc  SortOption = "name-asc"
	SortNameDesc SortOption = "name-desc"
)

// ParseSortOption maps unknown values to SortFeatured.
func ParseSortOption(s string) SortOption {
	switch o := SortOption(s); o {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortNameAsc, SortNameDesc:
		return o
	}
	return SortFeatured
}

// SortProducts returns a sorted copy. Ties keep their relative order.
func SortProducts(products []domain.Product, option SortOption) []domain.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []domain.Product{}
	}

	switch option {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortNewest:
		slices.Reverse(out)
	case SortNameAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return strings.Compare(a.Name, b.Name) })
	case SortNameDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return strings.Compare(b.Name, a.Name) })
	}

	return out
}

// DealSortOption names a deal ordering.
type DealSortOption string

const (
	DealSortSavingsDesc DealSortOption = "savings-desc"
	DealSortPriceAsc    DealSortOption = "price-asc"
	DealSortPriceDesc   DealSortOption = "price-desc"
	DealSortPercentDesc DealSortOption = "percent-desc"
)

// ParseDealSortOption maps unknown values to DealSortSavingsDesc.
func ParseDealSortOption(s string) DealSortOption {
	switch o := DealSortOption(s); o {
	case DealSortPriceAsc, DealSortPriceDesc, DealSortPercentDesc:
		return o
	}
	return DealSortSavingsDesc
}

// SortDeals returns a sorted copy. Price orderings use the fixed bundle price.
func SortDeals(deals []domain.DealPackage, option DealSortOption) []domain.DealPackage {
	out := slices.Clone(deals)
	if out == nil {
		out = []domain.DealPackage{}
	}

	var order func(a, b domain.DealPackage) int
	switch option {
	case DealSortPriceAsc:
		order = func(a, b domain.DealPackage) int { return cmp.Compare(a.DiscountedPrice, b.DiscountedPrice) }
	case DealSortPriceDesc:
		order = func(a, b domain.DealPackage) int { return cmp.Compare(b.DiscountedPrice, a.DiscountedPrice) }
	case DealSortPercentDesc:
		order = func(a, b domain.DealPackage) int { return cmp.Compare(b.SavingsPercent, a.SavingsPercent) }
	default:
		order = func(a, b domain.DealPackage) int { return cmp.Compare(b.Savings, a.Savings) }
	}
	slices.SortStableFunc(out, order)

	return out
}

// Brands returns the distinct non-empty brands, sorted.
func Brands(products []domain.Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	slices.Sort(out)
	return out
}
