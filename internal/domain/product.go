package domain

import "time"

// Product represents a catalog entry. Price is always the currently
// effective price; OriginalPrice is set only when a discount was applied.
type Product struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description,omitempty" db:"description"`
	Price           int64     `json:"price" db:"price"`
	OriginalPrice   int64     `json:"original_price,omitempty" db:"-"`
	DiscountEnabled bool      `json:"discount_enabled,omitempty" db:"-"`
	DiscountPercent int       `json:"discount_percent,omitempty" db:"-"`
	DiscountExpiry  time.Time `json:"discount_expiry,omitzero" db:"-"`
	Image           string    `json:"image,omitempty" db:"image"`
	Emoji           string    `json:"emoji,omitempty" db:"emoji"`
	Category        string    `json:"category,omitempty" db:"category"`
	Subcategory     string    `json:"subcategory,omitempty" db:"subcategory"`
	Brand           string    `json:"brand,omitempty" db:"brand"`
	Compatibility   []string  `json:"compatibility,omitempty" db:"compatibility"`
	Stock           int       `json:"stock,omitempty" db:"stock"`
}

// HasCompatibility reports whether tag is in the product's compatibility set.
func (p Product) HasCompatibility(tag string) bool {
	for _, c := range p.Compatibility {
		if c == tag {
			return true
		}
	}
	return false
}

// DiscountRule is a time-bounded percentage markdown for one product.
type DiscountRule struct {
	ProductID       string    `json:"product_id" db:"product_id"`
	DiscountPercent int       `json:"discount_percent" db:"discount_percent"`
	Expiry          time.Time `json:"expiry" db:"expiry"`
}
