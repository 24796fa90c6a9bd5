package transport

import (
	"net/http"

	"pc-park/internal/checkout"
	"pc-park/internal/domain"
	"pc-park/internal/format"
	"pc-park/internal/middleware"
	"pc-park/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CouponRequest applies a coupon code.
type CouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// MethodRequest selects a shipping or payment method by id.
type MethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// CheckoutOptionsResponse lists the selectable methods.
type CheckoutOptionsResponse struct {
	ShippingOptions []domain.ShippingOption `json:"shipping_options"`
	PaymentMethods  []domain.PaymentMethod  `json:"payment_methods"`
}

// CheckoutHandler drives the session's checkout flow
type CheckoutHandler struct {
	sessions service.SessionService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(sessions service.SessionService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers all checkout routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Get("/", h.GetCheckout)
		r.Get("/options", h.GetOptions)
		r.Post("/coupon", h.ApplyCoupon)
		r.Delete("/coupon", h.RemoveCoupon)
		r.Put("/shipping-method", h.SetShippingMethod)
		r.Put("/shipping-info", h.SetShippingInfo)
		r.Put("/payment-method", h.SetPaymentMethod)
		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Post("/place-order", h.PlaceOrder)
		r.Post("/reset", h.Reset)
	})
}

func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(co *checkout.Checkout) error { return nil })
}

func (h *CheckoutHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, CheckoutOptionsResponse{
		ShippingOptions: checkout.ShippingOptions(),
		PaymentMethods:  checkout.PaymentMethods(),
	})
}

// ApplyCoupon applies a coupon. An unknown code also clears any coupon that
// was applied before.
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req CouponRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	h.run(w, r, func(co *checkout.Checkout) error {
		_, err := co.ApplyCoupon(req.Code)
		return err
	})
}

func (h *CheckoutHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(co *checkout.Checkout) error {
		co.RemoveCoupon()
		return nil
	})
}

func (h *CheckoutHandler) SetShippingMethod(w http.ResponseWriter, r *http.Request) {
	var req MethodRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	h.run(w, r, func(co *checkout.Checkout) error {
		return co.SetShippingMethod(req.Method)
	})
}

// SetShippingInfo stores the form as-is; it is validated by Next.
func (h *CheckoutHandler) SetShippingInfo(w http.ResponseWriter, r *http.Request) {
	var info domain.ShippingInfo
	if err := decodeJSON(r, &info); err != nil {
		h.logger.Debug("Shipping info decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.run(w, r, func(co *checkout.Checkout) error {
		co.SetShippingInfo(info)
		return nil
	})
}

func (h *CheckoutHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req MethodRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	h.run(w, r, func(co *checkout.Checkout) error {
		return co.SetPaymentMethod(req.Method)
	})
}

// Next validates the current step and advances; from the payment step it
// places the order.
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(co *checkout.Checkout) error {
		_, err := co.Next(r.Context())
		return err
	})
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(co *checkout.Checkout) error {
		co.Back()
		return nil
	})
}

func (h *CheckoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(co *checkout.Checkout) error {
		co.Reset()
		return nil
	})
}

// PlaceOrder places the order from the payment step and returns the receipt.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	order, err := sess.Checkout.PlaceOrder(r.Context())
	if err != nil {
		respondWithDomainError(w, h.logger.With(zap.String("session", id)), err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, newReceipt(order))
}

// OrderReceiptResponse is a placed order with its display labels.
type OrderReceiptResponse struct {
	domain.Order
	PlacedOn   string `json:"placed_on"`
	TotalLabel string `json:"total_label"`
	// DiscountLabel is the coupon's percentage, when one was applied.
	DiscountLabel string `json:"discount_label,omitempty"`
}

func newReceipt(order domain.Order) OrderReceiptResponse {
	receipt := OrderReceiptResponse{
		Order:      order,
		PlacedOn:   format.Date(order.PlacedAt),
		TotalLabel: format.Price(order.Summary.Total),
	}
	if c := order.Summary.Coupon; c != nil {
		receipt.DiscountLabel = format.Percent(int64(c.DiscountPercent))
	}
	return receipt
}

// run applies op to the session's checkout and responds with the resulting
// view.
func (h *CheckoutHandler) run(w http.ResponseWriter, r *http.Request, op func(co *checkout.Checkout) error) {
	id, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	if err := op(sess.Checkout); err != nil {
		respondWithDomainError(w, h.logger.With(zap.String("session", id)), err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sess.Checkout.View(r.Context()))
}
