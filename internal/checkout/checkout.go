// Package checkout drives the four-step checkout flow over a cart store.
// Orders never leave the process: placing one clears the cart and returns
// a local receipt.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pc-park/internal/cart"
	"pc-park/internal/domain"
	"pc-park/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCoupon         = errors.New("invalid coupon code")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidShippingInfo   = errors.New("invalid shipping information")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrWrongStep             = errors.New("operation not allowed at this checkout step")
)

// Step is a checkout stage.
type Step int

const (
	StepCart Step = iota + 1
	StepShipping
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepCart:
		return "Cart"
	case StepShipping:
		return "Shipping"
	case StepPayment:
		return "Payment"
	case StepConfirmation:
		return "Confirmation"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// View is the externally visible checkout state.
type View struct {
	Step           Step                `json:"step"`
	StepLabel      string              `json:"step_label"`
	Items          []domain.CartItem   `json:"items"`
	Summary        domain.OrderSummary `json:"summary"`
	ShippingMethod string              `json:"shipping_method"`
	PaymentMethod  string              `json:"payment_method,omitempty"`
	ShippingInfo   domain.ShippingInfo `json:"shipping_info"`
	Order          *domain.Order       `json:"order,omitempty"`
	LoggedIn       bool                `json:"logged_in"`
}

// Checkout holds one shopper's progress through checkout.
type Checkout struct {
	mu       sync.Mutex
	cart     *cart.Store
	kv       storage.KV
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	digits   func() string

	step           Step
	coupon         *domain.Coupon
	shippingMethod string
	paymentMethod  string
	info           domain.ShippingInfo
	order          *domain.Order
}

// New starts a checkout at the cart step for store.
func New(store *cart.Store, kv storage.KV, logger *zap.Logger) (*Checkout, error) {
	digits, err := nanoid.CustomASCII("0123456789", 5)
	if err != nil {
		return nil, fmt.Errorf("failed to create order number generator: %w", err)
	}

	return &Checkout{
		cart:           store,
		kv:             kv,
		logger:         logger,
		validate:       newValidator(),
		now:            time.Now,
		digits:         digits,
		step:           StepCart,
		shippingMethod: DefaultShippingMethod,
		info:           domain.ShippingInfo{City: DefaultCity},
	}, nil
}

// Step returns the current step.
func (c *Checkout) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// ApplyCoupon applies a known coupon. An unknown code removes any applied
// coupon and returns ErrInvalidCoupon.
func (c *Checkout) ApplyCoupon(code string) (domain.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	coupon, ok := LookupCoupon(code)
	if !ok {
		c.coupon = nil
		return domain.Coupon{}, ErrInvalidCoupon
	}

	c.coupon = &coupon
	return coupon, nil
}

// RemoveCoupon clears the applied coupon.
func (c *Checkout) RemoveCoupon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coupon = nil
}

// SetShippingMethod selects a delivery method by id.
func (c *Checkout) SetShippingMethod(id string) error {
	if _, ok := LookupShipping(id); !ok {
		return ErrUnknownShippingMethod
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.shippingMethod = id
	return nil
}

// SetPaymentMethod selects a payment method by id.
func (c *Checkout) SetPaymentMethod(id string) error {
	if _, ok := LookupPayment(id); !ok {
		return ErrUnknownPaymentMethod
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.paymentMethod = id
	return nil
}

// SetShippingInfo replaces the shipping form. It is validated when leaving
// the shipping step.
func (c *Checkout) SetShippingInfo(info domain.ShippingInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = info
}

// Summary prices the current cart with the applied coupon and shipping.
func (c *Checkout) Summary() domain.OrderSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

// Next validates the current step and advances. Advancing from the payment
// step places the order.
func (c *Checkout) Next(ctx context.Context) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case StepCart:
		if len(c.cart.Items()) == 0 {
			return c.step, ErrEmptyCart
		}
	case StepShipping:
		if err := c.validate.Struct(c.info); err != nil {
			return c.step, fmt.Errorf("%w: %w", ErrInvalidShippingInfo, err)
		}
	case StepPayment:
		if _, err := c.placeOrder(ctx); err != nil {
			return c.step, err
		}
		return c.step, nil
	case StepConfirmation:
		return c.step, nil
	}

	c.step++
	return c.step, nil
}

// Back returns to the previous step, never below the cart step. A placed
// order cannot be backed out of.
func (c *Checkout) Back() Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step > StepCart && c.step < StepConfirmation {
		c.step--
	}
	return c.step
}

// PlaceOrder finalizes the checkout from the payment step: it snapshots
// the cart into a receipt, clears the cart and moves to confirmation.
func (c *Checkout) PlaceOrder(ctx context.Context) (domain.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepPayment {
		return domain.Order{}, ErrWrongStep
	}
	return c.placeOrder(ctx)
}

// Reset starts over at the cart step, keeping the shipping form.
func (c *Checkout) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.step = StepCart
	c.order = nil
	c.coupon = nil
	c.paymentMethod = ""
}

// LoggedIn reports whether the durable login flag is set.
func (c *Checkout) LoggedIn(ctx context.Context) bool {
	raw, err := c.kv.Get(ctx, storage.KeyUserLoggedIn)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("Failed to read login flag", zap.Error(err))
		}
		return false
	}
	return string(raw) == "true"
}

// View returns the current state.
func (c *Checkout) View(ctx context.Context) View {
	loggedIn := c.LoggedIn(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Step:           c.step,
		StepLabel:      c.step.String(),
		Items:          c.cart.Items(),
		Summary:        c.summary(),
		ShippingMethod: c.shippingMethod,
		PaymentMethod:  c.paymentMethod,
		ShippingInfo:   c.info,
		LoggedIn:       loggedIn,
	}
	if c.order != nil {
		order := *c.order
		v.Order = &order
	}
	return v
}

func (c *Checkout) placeOrder(ctx context.Context) (domain.Order, error) {
	if c.paymentMethod == "" {
		return domain.Order{}, ErrPaymentMethodRequired
	}

	items := c.cart.Items()
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	order := domain.Order{
		Number:        "BD" + c.digits(),
		PlacedAt:      c.now(),
		Items:         items,
		Summary:       c.summary(),
		ShippingInfo:  c.info,
		ShippingID:    c.shippingMethod,
		PaymentMethod: c.paymentMethod,
	}

	if err := c.cart.Clear(ctx); err != nil {
		c.logger.Warn("Cart cleared in memory but not persisted after order",
			zap.String("order_number", order.Number),
			zap.Error(err),
		)
	}

	c.order = &order
	c.step = StepConfirmation

	c.logger.Info("Order placed",
		zap.String("order_number", order.Number),
		zap.Int("items", len(order.Items)),
		zap.Int64("total", order.Summary.Total),
		zap.String("payment_method", order.PaymentMethod),
	)

	return order, nil
}

func (c *Checkout) summary() domain.OrderSummary {
	var shipping int64
	if opt, ok := LookupShipping(c.shippingMethod); ok {
		shipping = opt.Price
	}
	return Summarize(c.cart.Total(), c.coupon, shipping)
}
