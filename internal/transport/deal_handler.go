package transport

import (
	"net/http"

	"pc-park/internal/catalog"
	"pc-park/internal/domain"
	"pc-park/internal/format"
	"pc-park/internal/middleware"
	"pc-park/internal/query"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DealView is a resolved bundle with its display labels.
type DealView struct {
	domain.DealPackage
	PriceLabel   string `json:"price_label"`
	TotalLabel   string `json:"total_price_label"`
	SavingsLabel string `json:"savings_label"`
	PercentLabel string `json:"savings_percent_label"`
	EndsOn       string `json:"ends_on,omitempty"`
}

func newDealView(deal domain.DealPackage) DealView {
	view := DealView{
		DealPackage:  deal,
		PriceLabel:   format.Price(deal.DiscountedPrice),
		TotalLabel:   format.Price(deal.TotalPrice),
		SavingsLabel: format.Price(deal.Savings),
		PercentLabel: format.Percent(deal.SavingsPercent),
	}
	if !deal.EndsAt.IsZero() {
		view.EndsOn = format.Date(deal.EndsAt)
	}
	return view
}

// DealListResponse is the deals page.
type DealListResponse struct {
	Deals []DealView           `json:"deals"`
	Type  string               `json:"type"`
	Sort  query.DealSortOption `json:"sort"`
}

// DealHandler serves resolved bundles
type DealHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewDealHandler creates a new DealHandler
func NewDealHandler(cat *catalog.Catalog, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		catalog: cat,
		logger:  logger,
	}
}

// RegisterRoutes registers all deal routes
func (h *DealHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/deals", func(r chi.Router) {
		r.Get("/", h.ListDeals)
		r.Get("/{id}", h.GetDeal)
	})
}

// ListDeals returns every bundle of the requested type in the requested order.
func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	dealType := r.URL.Query().Get("type")
	if dealType == "" {
		dealType = query.CategoryAll
	}
	if dealType != query.CategoryAll && !domain.DealType(dealType).Valid() {
		middleware.RespondWithError(w, http.StatusBadRequest, "type must be one of: all bundle combo package")
		return
	}

	sort := query.ParseDealSortOption(r.URL.Query().Get("sort"))

	deals, err := h.catalog.Deals(r.Context(), dealType, sort)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	views := make([]DealView, 0, len(deals))
	for _, deal := range deals {
		views = append(views, newDealView(deal))
	}

	middleware.RespondWithJSON(w, http.StatusOK, DealListResponse{
		Deals: views,
		Type:  dealType,
		Sort:  sort,
	})
}

func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := h.catalog.Bundle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newDealView(deal))
}
