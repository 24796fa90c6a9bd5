// Package pricing implements the discount engine and the money rounding
// shared by discounts, bundle savings and coupons.
package pricing

import (
	"fmt"
	"time"

	"pc-park/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// RoundHalfUp rounds d to the nearest integer, with halves going toward
// positive infinity.
func RoundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// PercentOf returns round(amount * percent / 100).
func PercentOf(amount int64, percent int) int64 {
	return RoundHalfUp(decimal.NewFromInt(amount).Mul(decimal.NewFromInt(int64(percent))).Div(hundred))
}

// DiscountedPrice returns round(price * (1 - percent/100)).
func DiscountedPrice(price int64, percent int) int64 {
	return PercentOf(price, 100-percent)
}

// Ratio returns round(part / whole * 100), or 0 when whole is 0.
func Ratio(part, whole int64) int64 {
	if whole == 0 {
		return 0
	}
	return RoundHalfUp(decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)))
}

// ApplyDiscounts returns a new product list with the matching rule applied to
// each product. The input slice and its elements are never modified. When
// several rules target one product the first one wins.
func ApplyDiscounts(products []domain.Product, rules []domain.DiscountRule) []domain.Product {
	byProduct := make(map[string]domain.DiscountRule, len(rules))
	for _, r := range rules {
		if _, exists := byProduct[r.ProductID]; !exists {
			byProduct[r.ProductID] = r
		}
	}

	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = clone(p)

		rule, ok := byProduct[p.ID]
		if !ok {
			continue
		}

		// A 0% rule still flags the product as discounted.
		out[i].OriginalPrice = p.Price
		out[i].Price = DiscountedPrice(p.Price, rule.DiscountPercent)
		out[i].DiscountPercent = rule.DiscountPercent
		out[i].DiscountEnabled = true
		out[i].DiscountExpiry = rule.Expiry
	}

	return out
}

// HasValidDiscount reports whether the product carries a discount that has
// not yet expired at now. It does not revert an expired discount's price.
func HasValidDiscount(p domain.Product, now time.Time) bool {
	if !p.DiscountEnabled || p.DiscountExpiry.IsZero() {
		return false
	}
	return now.Before(p.DiscountExpiry)
}

// TimeRemaining renders the time left until expiry, e.g. "3 days left".
func TimeRemaining(expiry, now time.Time) string {
	if !now.Before(expiry) {
		return "Expired"
	}

	diff := expiry.Sub(now)
	if days := int(diff / (24 * time.Hour)); days > 0 {
		return fmt.Sprintf("%d %s left", days, plural(days, "day"))
	}

	hours := int(diff / time.Hour)
	return fmt.Sprintf("%d %s left", hours, plural(hours, "hour"))
}

func plural(n int, unit string) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}

func clone(p domain.Product) domain.Product {
	if p.Compatibility != nil {
		p.Compatibility = append([]string(nil), p.Compatibility...)
	}
	return p
}
