package domain

import "time"

// DealType classifies a bundle for filtering.
type DealType string

const (
	DealTypeBundle  DealType = "bundle"
	DealTypeCombo   DealType = "combo"
	DealTypePackage DealType = "package"
)

// Valid reports whether t is one of the known deal types.
func (t DealType) Valid() bool {
	switch t {
	case DealTypeBundle, DealTypeCombo, DealTypePackage:
		return true
	}
	return false
}

// BundleStub is the declarative definition of a fixed-price bundle.
type BundleStub struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	ProductIDs       []string  `json:"product_ids" db:"-"`
	DiscountedPrice  int64     `json:"discounted_price" db:"discounted_price"`
	DealType         DealType  `json:"deal_type" db:"deal_type"`
	EndsAt           time.Time `json:"ends_at,omitzero" db:"ends_at"`
	FeaturedImageURL string    `json:"featured_image_url,omitempty" db:"featured_image_url"`
	Code             string    `json:"code,omitempty" db:"code"`
}

// DealPackage is a BundleStub resolved against the catalog.
type DealPackage struct {
	BundleStub
	Products       []Product `json:"products"`
	TotalPrice     int64     `json:"total_price"`
	Savings        int64     `json:"savings"`
	SavingsPercent int64     `json:"savings_percent"`
	// DroppedIDs counts ProductIDs that did not resolve to a catalog entry.
	DroppedIDs int `json:"dropped_ids"`
}
