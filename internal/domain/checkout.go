package domain

import "time"

// Coupon is a cart-wide percentage discount code.
type Coupon struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}

// ShippingOption is a selectable delivery method with a flat price.
type ShippingOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int64  `json:"price"`
}

// PaymentMethod is a selectable (offline) payment method.
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ShippingInfo holds the contact and address fields collected at checkout.
type ShippingInfo struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,bdphone"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	SaveInfo   bool   `json:"save_info"`
}

// OrderSummary is the priced breakdown of a checkout.
type OrderSummary struct {
	Subtotal int64   `json:"subtotal"`
	Discount int64   `json:"discount"`
	Shipping int64   `json:"shipping"`
	Total    int64   `json:"total"`
	Coupon   *Coupon `json:"coupon,omitempty"`
}

// Order is the local receipt produced when an order is placed.
type Order struct {
	Number        string       `json:"number"`
	PlacedAt      time.Time    `json:"placed_at"`
	Items         []CartItem   `json:"items"`
	Summary       OrderSummary `json:"summary"`
	ShippingInfo  ShippingInfo `json:"shipping_info"`
	ShippingID    string       `json:"shipping_method"`
	PaymentMethod string       `json:"payment_method"`
}
