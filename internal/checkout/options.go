package checkout

import (
	"strings"

	"pc-park/internal/domain"
)

// DefaultShippingMethod is selected when a checkout starts.
const DefaultShippingMethod = "free"

// DefaultCity prefills the shipping form.
const DefaultCity = "Dhaka"

var coupons = []domain.Coupon{
	{Code: "WELCOME10", DiscountPercent: 10},
	{Code: "SUMMER25", DiscountPercent: 25},
	{Code: "NEWCUSTOMER15", DiscountPercent: 15},
}

var shippingOptions = []domain.ShippingOption{
	{ID: "free", Label: "Standard Shipping (Free, 3-5 days)", Price: 0},
	{ID: "express", Label: "Express Shipping (2 days)", Price: 200},
	{ID: "same-day", Label: "Same Day Delivery (Dhaka Only)", Price: 300},
}

var paymentMethods = []domain.PaymentMethod{
	{ID: "bkash", Name: "bKash", Description: "Pay securely with bKash"},
	{ID: "cod", Name: "Cash on Delivery", Description: "Pay when your order arrives"},
}

// LookupCoupon matches code case-insensitively.
func LookupCoupon(code string) (domain.Coupon, bool) {
	for _, c := range coupons {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return domain.Coupon{}, false
}

// ShippingOptions returns the selectable delivery methods.
func ShippingOptions() []domain.ShippingOption {
	out := make([]domain.ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

// LookupShipping finds a delivery method by id.
func LookupShipping(id string) (domain.ShippingOption, bool) {
	for _, o := range shippingOptions {
		if o.ID == id {
			return o, true
		}
	}
	return domain.ShippingOption{}, false
}

// PaymentMethods returns the selectable payment methods.
func PaymentMethods() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// LookupPayment finds a payment method by id.
func LookupPayment(id string) (domain.PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}
