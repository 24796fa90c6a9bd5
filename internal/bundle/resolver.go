// Package bundle resolves declarative bundle stubs into priced deal packages.
//
// Resolution is stateless: every call re-reads the catalog it is given, so a
// discounted catalog yields bundle totals over the discounted prices.
package bundle

import (
	"pc-park/internal/domain"
	"pc-park/internal/pricing"
)

// Resolve looks up each of the stub's product ids in catalog, in stub order.
// Ids with no match are skipped and counted in DroppedIDs.
func Resolve(stub domain.BundleStub, catalog []domain.Product) domain.DealPackage {
	index := indexByID(catalog)
	return resolve(stub, index)
}

// All resolves every stub against catalog.
func All(stubs []domain.BundleStub, catalog []domain.Product) []domain.DealPackage {
	index := indexByID(catalog)

	deals := make([]domain.DealPackage, 0, len(stubs))
	for _, stub := range stubs {
		deals = append(deals, resolve(stub, index))
	}
	return deals
}

// ByID resolves the stub with the given id. The boolean is false when no
// stub matches.
func ByID(id string, stubs []domain.BundleStub, catalog []domain.Product) (domain.DealPackage, bool) {
	for _, stub := range stubs {
		if stub.ID == id {
			return Resolve(stub, catalog), true
		}
	}
	return domain.DealPackage{}, false
}

// ByDealType resolves the stubs of one deal type.
func ByDealType(dealType domain.DealType, stubs []domain.BundleStub, catalog []domain.Product) []domain.DealPackage {
	var matching []domain.BundleStub
	for _, stub := range stubs {
		if stub.DealType == dealType {
			matching = append(matching, stub)
		}
	}
	return All(matching, catalog)
}

func resolve(stub domain.BundleStub, index map[string]domain.Product) domain.DealPackage {
	deal := domain.DealPackage{
		BundleStub: stub,
		Products:   make([]domain.Product, 0, len(stub.ProductIDs)),
	}
	deal.ProductIDs = append([]string(nil), stub.ProductIDs...)

	for _, id := range stub.ProductIDs {
		p, ok := index[id]
		if !ok {
			deal.DroppedIDs++
			continue
		}
		deal.Products = append(deal.Products, p)
		deal.TotalPrice += p.Price
	}

	// Savings is not clamped; a fixed price above the sum goes negative.
	deal.Savings = deal.TotalPrice - stub.DiscountedPrice
	if deal.TotalPrice == 0 {
		// Nothing resolved: report no savings rather than the negated price.
		deal.Savings = 0
	}
	deal.SavingsPercent = pricing.Ratio(deal.Savings, deal.TotalPrice)

	return deal
}

func indexByID(catalog []domain.Product) map[string]domain.Product {
	index := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		if _, exists := index[p.ID]; !exists {
			index[p.ID] = p
		}
	}
	return index
}
