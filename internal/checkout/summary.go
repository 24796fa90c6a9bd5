package checkout

import (
	"pc-park/internal/domain"
	"pc-park/internal/pricing"
)

// Summarize prices a checkout. The coupon discount is rounded half up to a
// whole taka.
func Summarize(subtotal int64, coupon *domain.Coupon, shipping int64) domain.OrderSummary {
	summary := domain.OrderSummary{
		Subtotal: subtotal,
		Shipping: shipping,
	}

	if coupon != nil {
		c := *coupon
		summary.Coupon = &c
		summary.Discount = pricing.PercentOf(subtotal, c.DiscountPercent)
	}

	summary.Total = summary.Subtotal - summary.Discount + summary.Shipping
	return summary
}
