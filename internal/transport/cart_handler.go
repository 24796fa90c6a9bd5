package transport

import (
	"net/http"

	"pc-park/internal/cart"
	"pc-park/internal/middleware"
	"pc-park/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest adds one unit of a product.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateQuantityRequest sets a line quantity. Values below 1 leave the line
// unchanged.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetOpenRequest toggles the cart drawer.
type SetOpenRequest struct {
	Open bool `json:"open"`
}

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{id}", h.UpdateQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Post("/bundles/{id}", h.AddBundle)
		r.Post("/open", h.SetOpen)
		r.Post("/confirmation/dismiss", h.DismissConfirmation)
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(id string) (cart.State, error) {
		return h.cartService.View(r.Context(), id)
	})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(id string) (cart.State, error) {
		return h.cartService.Clear(r.Context(), id)
	})
}

// AddItem adds a product at its current price and opens the confirmation.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	h.run(w, r, http.StatusCreated, func(id string) (cart.State, error) {
		return h.cartService.AddProduct(r.Context(), id, req.ProductID)
	})
}

// AddBundle adds one unit of each product in a bundle.
func (h *CartHandler) AddBundle(w http.ResponseWriter, r *http.Request) {
	bundleID := chi.URLParam(r, "id")
	h.run(w, r, http.StatusCreated, func(id string) (cart.State, error) {
		return h.cartService.AddBundle(r.Context(), id, bundleID)
	})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	productID := chi.URLParam(r, "id")
	h.run(w, r, http.StatusOK, func(id string) (cart.State, error) {
		return h.cartService.UpdateQuantity(r.Context(), id, productID, req.Quantity)
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	h.run(w, r, http.StatusOK, func(id string) (cart.State, error) {
		return h.cartService.RemoveItem(r.Context(), id, productID)
	})
}

func (h *CartHandler) SetOpen(w http.ResponseWriter, r *http.Request) {
	var req SetOpenRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	h.run(w, r, http.StatusOK, func(id string) (cart.State, error) {
		return h.cartService.SetOpen(r.Context(), id, req.Open)
	})
}

func (h *CartHandler) DismissConfirmation(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(id string) (cart.State, error) {
		return h.cartService.DismissConfirmation(r.Context(), id)
	})
}

func (h *CartHandler) run(w http.ResponseWriter, r *http.Request, status int, op func(sessionID string) (cart.State, error)) {
	id, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	state, err := op(id)
	if err != nil {
		respondWithDomainError(w, h.logger.With(zap.String("session", id)), err)
		return
	}

	middleware.RespondWithJSON(w, status, state)
}
