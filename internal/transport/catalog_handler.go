package transport

import (
	"net/http"
	"strconv"
	"strings"

	"pc-park/internal/catalog"
	"pc-park/internal/domain"
	"pc-park/internal/format"
	"pc-park/internal/middleware"
	"pc-park/internal/query"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductDetailResponse is a product page.
type ProductDetailResponse struct {
	Product               domain.Product   `json:"product"`
	PriceLabel            string           `json:"price_label"`
	OriginalPriceLabel    string           `json:"original_price_label,omitempty"`
	DiscountActive        bool             `json:"discount_active"`
	DiscountTimeRemaining string           `json:"discount_time_remaining,omitempty"`
	Related               []domain.Product `json:"related"`
}

// CatalogHandler serves product listings and product pages
type CatalogHandler struct {
	catalog  *catalog.Catalog
	pageSize int
	logger   *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cat *catalog.Catalog, pageSize int, logger *zap.Logger) *CatalogHandler {
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &CatalogHandler{
		catalog:  cat,
		pageSize: pageSize,
		logger:   logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)
	r.Get("/api/brands", h.ListBrands)
	r.Get("/api/price-ranges", h.ListPriceRanges)
}

// ListProducts filters, sorts and paginates the catalog.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		page = n
	}

	filter, err := productFilter(q)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.catalog.List(r.Context(), filter, query.ParseSortOption(q.Get("sort")), page, h.pageSize)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// GetProduct returns one product with related items and discount status.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	related, err := h.catalog.Related(r.Context(), p)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	resp := ProductDetailResponse{
		Product:               p,
		PriceLabel:            format.Price(p.Price),
		DiscountActive:        h.catalog.DiscountActive(p),
		DiscountTimeRemaining: h.catalog.DiscountTimeRemaining(p),
		Related:               related,
	}
	if p.OriginalPrice > 0 {
		resp.OriginalPriceLabel = format.Price(p.OriginalPrice)
	}

	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.Brands(r.Context())
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]string{"brands": brands})
}

func (h *CatalogHandler) ListPriceRanges(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]query.PriceRange{"price_ranges": query.PriceRanges})
}

// productFilter reads the listing filters. brand and price_range accept
// repeated parameters or comma separated values. Unknown price range ids are
// an error.
func productFilter(q map[string][]string) (query.ProductFilter, error) {
	get := func(key string) string {
		if v := q[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	priceRanges, err := query.ParsePriceRanges(multiValue(q["price_range"]))
	if err != nil {
		return query.ProductFilter{}, err
	}

	return query.ProductFilter{
		Category:       get("category"),
		Subcategory:    get("subcategory"),
		Brands:         multiValue(q["brand"]),
		PriceRanges:    priceRanges,
		Search:         get("q"),
		Compatibility:  get("compat"),
		DiscountedOnly: get("discounted") == "true",
	}, nil
}

func multiValue(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
