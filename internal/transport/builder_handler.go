package transport

import (
	"net/http"

	"pc-park/internal/builder"
	"pc-park/internal/cart"
	"pc-park/internal/domain"
	"pc-park/internal/middleware"
	"pc-park/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SelectComponentRequest fills a builder slot.
type SelectComponentRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// AddBuildResponse reports a build moved into the cart.
type AddBuildResponse struct {
	Added int        `json:"added"`
	Cart  cart.State `json:"cart"`
}

// BuilderHandler serves the PC configurator
type BuilderHandler struct {
	sessions service.SessionService
	logger   *zap.Logger
}

// NewBuilderHandler creates a new BuilderHandler
func NewBuilderHandler(sessions service.SessionService, logger *zap.Logger) *BuilderHandler {
	return &BuilderHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers all builder routes
func (h *BuilderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/builder", func(r chi.Router) {
		r.Get("/", h.GetBuild)
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{category}/options", h.ListOptions)
		r.Put("/categories/{category}", h.SelectComponent)
		r.Delete("/categories/{category}", h.RemoveComponent)
		r.Post("/add-to-cart", h.AddToCart)
		r.Post("/save", h.SaveBuild)
	})
}

func (h *BuilderHandler) GetBuild(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, sess.Builder.View())
}

func (h *BuilderHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]domain.ComponentCategory{"categories": builder.Categories()})
}

// ListOptions lists the products that fit a slot.
func (h *BuilderHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	options, err := sess.Builder.Options(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]domain.Product{"products": options})
}

func (h *BuilderHandler) SelectComponent(w http.ResponseWriter, r *http.Request) {
	var req SelectComponentRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, err := sess.Builder.Select(r.Context(), chi.URLParam(r, "category"), req.ProductID); err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, sess.Builder.View())
}

func (h *BuilderHandler) RemoveComponent(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.Builder.Remove(chi.URLParam(r, "category")); err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, sess.Builder.View())
}

// AddToCart moves a complete build into the session cart.
func (h *BuilderHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	added, err := sess.Builder.AddToCart(r.Context(), sess.Cart)
	if err != nil {
		respondWithDomainError(w, h.logger.With(zap.String("session", sess.ID)), err)
		return
	}

	h.logger.Info("Build added to cart", zap.String("session", sess.ID), zap.Int("components", added))
	middleware.RespondWithJSON(w, http.StatusCreated, AddBuildResponse{
		Added: added,
		Cart:  sess.Cart.State(),
	})
}

func (h *BuilderHandler) SaveBuild(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	snapshot, err := sess.Builder.Save(r.Context())
	if err != nil {
		respondWithDomainError(w, h.logger.With(zap.String("session", sess.ID)), err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, snapshot)
}

func (h *BuilderHandler) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	id, ok := sessionID(w, r, h.logger)
	if !ok {
		return nil, false
	}

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return nil, false
	}
	return sess, true
}
