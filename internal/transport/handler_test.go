package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pc-park/internal/builder"
	"pc-park/internal/cart"
	"pc-park/internal/catalog"
	"pc-park/internal/checkout"
	"pc-park/internal/domain"
	"pc-park/internal/format"
	"pc-park/internal/middleware"
	"pc-park/internal/query"
	"pc-park/internal/service"
	"pc-park/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type testAPI struct {
	router   http.Handler
	catalog  *catalog.Catalog
	sessions service.SessionService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := zap.NewNop()
	cat := catalog.New(catalog.NewStaticSource(), logger).WithClock(func() time.Time { return testNow })
	sessions := service.NewSessionService(cat, storage.NewMemory(), logger)

	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(logger))
	NewCatalogHandler(cat, query.DefaultPageSize, logger).RegisterRoutes(r)
	NewDealHandler(cat, logger).RegisterRoutes(r)
	NewCartHandler(service.NewCartService(sessions, cat, logger), logger).RegisterRoutes(r)
	NewCheckoutHandler(sessions, logger).RegisterRoutes(r)
	NewBuilderHandler(sessions, logger).RegisterRoutes(r)

	return &testAPI{router: r, catalog: cat, sessions: sessions}
}

// do sends a request in session (minting one when empty) and returns the
// recorder. Non-nil bodies are JSON encoded.
func (a *testAPI) do(t *testing.T, session, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func newSession(t *testing.T, a *testAPI) string {
	t.Helper()
	w := a.do(t, "", http.MethodGet, "/api/cart", nil)
	return w.Header().Get(middleware.SessionHeader)
}

func TestListProducts_FirstPage(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	all, _ := api.catalog.Products(context.Background())
	page := decodeBody[query.Page[domain.Product]](t, w)
	if page.TotalItems != len(all) {
		t.Errorf("Expected %d items in total, got %d", len(all), page.TotalItems)
	}
	if page.Page != 1 || len(page.Items) != query.DefaultPageSize {
		t.Errorf("Expected first page of %d, got page %d with %d items", query.DefaultPageSize, page.Page, len(page.Items))
	}
}

func TestListProducts_CategoryAndSort(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/products?category=cpu&sort=price-asc", nil)
	page := decodeBody[query.Page[domain.Product]](t, w)

	if page.TotalItems != 6 {
		t.Fatalf("Expected 6 cpu products, got %d", page.TotalItems)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].Price > page.Items[i].Price {
			t.Errorf("Items not sorted by price at %d: %d > %d", i, page.Items[i-1].Price, page.Items[i].Price)
		}
	}
	for _, p := range page.Items {
		if p.Category != "cpu" {
			t.Errorf("Unexpected category %q", p.Category)
		}
	}
}

func TestListProducts_BrandListAndPriceRange(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/products?brand=AMD,Intel&price_range=price-1", nil)
	page := decodeBody[query.Page[domain.Product]](t, w)

	for _, p := range page.Items {
		if p.Brand != "AMD" && p.Brand != "Intel" {
			t.Errorf("Unexpected brand %q", p.Brand)
		}
		if p.Price > 9999 {
			t.Errorf("Price %d outside range", p.Price)
		}
	}
}

func TestListProducts_UnknownPriceRangeIsRejected(t *testing.T) {
	api := newTestAPI(t)

	for _, target := range []string{
		"/api/products?price_range=price-99",
		"/api/products?price_range=price-1,cheap",
	} {
		w := api.do(t, "", http.MethodGet, target, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
		if !strings.Contains(w.Body.String(), "unknown price range") {
			t.Errorf("%s: unexpected body %s", target, w.Body.String())
		}
	}
}

func TestListProducts_InvalidPage(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/products?page=two", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestGetProduct_WithDiscount(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/products/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	resp := decodeBody[ProductDetailResponse](t, w)
	if resp.Product.Price != 5865 || resp.Product.OriginalPrice != 6900 {
		t.Errorf("Expected 5865 from 6900, got %d from %d", resp.Product.Price, resp.Product.OriginalPrice)
	}
	if resp.PriceLabel != "BDT 5,865" || resp.OriginalPriceLabel != "BDT 6,900" {
		t.Errorf("Unexpected labels %q %q", resp.PriceLabel, resp.OriginalPriceLabel)
	}
	if !resp.DiscountActive || resp.DiscountTimeRemaining == "" {
		t.Errorf("Expected an active discount, got %v %q", resp.DiscountActive, resp.DiscountTimeRemaining)
	}
	if len(resp.Related) > catalog.RelatedLimit {
		t.Errorf("Expected at most %d related products, got %d", catalog.RelatedLimit, len(resp.Related))
	}
	for _, p := range resp.Related {
		if p.ID == "3" {
			t.Error("Related products include the product itself")
		}
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/products/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	resp := decodeBody[middleware.ErrorResponse](t, w)
	if resp.Error.Message != "product not found" {
		t.Errorf("Unexpected message %q", resp.Error.Message)
	}
}

func TestListDeals(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/deals?type=package", nil)
	resp := decodeBody[DealListResponse](t, w)
	if len(resp.Deals) != 2 {
		t.Errorf("Expected 2 package deals, got %d", len(resp.Deals))
	}
	if resp.Sort != query.DealSortSavingsDesc {
		t.Errorf("Expected default sort, got %q", resp.Sort)
	}

	w = api.do(t, "", http.MethodGet, "/api/deals?type=mystery", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown type, got %d", w.Code)
	}
}

func TestGetDeal(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/deals/bundle-1", nil)
	deal := decodeBody[DealView](t, w)
	if deal.TotalPrice != 25555 || deal.Savings != 1055 || deal.SavingsPercent != 4 {
		t.Errorf("Unexpected bundle-1 numbers: %d %d %d", deal.TotalPrice, deal.Savings, deal.SavingsPercent)
	}
	if deal.PercentLabel != "4%" || deal.SavingsLabel != "BDT 1,055" || deal.TotalLabel != "BDT 25,555" {
		t.Errorf("Unexpected bundle-1 labels: %q %q %q", deal.PercentLabel, deal.SavingsLabel, deal.TotalLabel)
	}
	if !deal.EndsAt.IsZero() && deal.EndsOn != format.Date(deal.EndsAt) {
		t.Errorf("Expected ends_on %q, got %q", format.Date(deal.EndsAt), deal.EndsOn)
	}

	w = api.do(t, "", http.MethodGet, "/api/deals/bundle-999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestCart_Flow(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	w := api.do(t, session, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "3"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	state := decodeBody[cart.State](t, w)
	if state.Count != 1 || state.Total != 5865 || !state.ShowConfirmation {
		t.Errorf("Unexpected state after add: %+v", state)
	}

	w = api.do(t, session, http.MethodPatch, "/api/cart/items/3", UpdateQuantityRequest{Quantity: 3})
	state = decodeBody[cart.State](t, w)
	if state.Count != 3 || state.Total != 17595 {
		t.Errorf("Expected 3 units totalling 17595, got %d / %d", state.Count, state.Total)
	}

	w = api.do(t, session, http.MethodPatch, "/api/cart/items/3", UpdateQuantityRequest{Quantity: 0})
	state = decodeBody[cart.State](t, w)
	if state.Count != 3 {
		t.Errorf("Quantity 0 should be ignored, got count %d", state.Count)
	}

	w = api.do(t, session, http.MethodPost, "/api/cart/confirmation/dismiss", nil)
	state = decodeBody[cart.State](t, w)
	if state.ShowConfirmation {
		t.Error("Expected confirmation dismissed")
	}

	w = api.do(t, session, http.MethodDelete, "/api/cart/items/3", nil)
	state = decodeBody[cart.State](t, w)
	if state.Count != 0 {
		t.Errorf("Expected empty cart, got %d", state.Count)
	}
}

func TestCart_AddBundle(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	w := api.do(t, session, http.MethodPost, "/api/cart/bundles/bundle-1", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	deal, _ := api.catalog.Bundle(context.Background(), "bundle-1")
	state := decodeBody[cart.State](t, w)
	if len(state.Items) != len(deal.Products) {
		t.Errorf("Expected %d lines, got %d", len(deal.Products), len(state.Items))
	}

	w = api.do(t, session, http.MethodPost, "/api/cart/bundles/bundle-999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown bundle, got %d", w.Code)
	}
}

func TestCart_AddItemRequiresProductID(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodPost, "/api/cart/items", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "product_id") {
		t.Errorf("Expected product_id validation error, got %s", w.Body.String())
	}
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	api := newTestAPI(t)
	a := newSession(t, api)
	b := newSession(t, api)

	api.do(t, a, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "3"})

	state := decodeBody[cart.State](t, api.do(t, b, http.MethodGet, "/api/cart", nil))
	if state.Count != 0 {
		t.Errorf("Session b sees %d items from session a", state.Count)
	}
}

func TestCheckout_FullFlow(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	w := api.do(t, session, http.MethodPost, "/api/checkout/next", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for empty cart, got %d", w.Code)
	}

	api.do(t, session, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "3"})

	w = api.do(t, session, http.MethodPost, "/api/checkout/coupon", CouponRequest{Code: "welcome10"})
	view := decodeBody[checkout.View](t, w)
	if view.Summary.Discount != 587 {
		t.Errorf("Expected 587 discount, got %d", view.Summary.Discount)
	}

	api.do(t, session, http.MethodPut, "/api/checkout/shipping-method", MethodRequest{Method: "express"})

	w = api.do(t, session, http.MethodPost, "/api/checkout/next", nil)
	view = decodeBody[checkout.View](t, w)
	if view.Step != checkout.StepShipping {
		t.Fatalf("Expected shipping step, got %v", view.Step)
	}

	info := domain.ShippingInfo{
		FirstName: "Karim", LastName: "Hossain", Email: "karim@example.com",
		Phone: "1234", Address: "Multiplan Center", City: "Dhaka", PostalCode: "1205",
	}
	api.do(t, session, http.MethodPut, "/api/checkout/shipping-info", info)

	w = api.do(t, session, http.MethodPost, "/api/checkout/next", nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"phone"`) {
		t.Fatalf("Expected phone validation error, got %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), checkout.PhoneMessage) {
		t.Errorf("Expected the phone message in %s", w.Body.String())
	}

	info.Phone = "01712345678"
	api.do(t, session, http.MethodPut, "/api/checkout/shipping-info", info)
	api.do(t, session, http.MethodPost, "/api/checkout/next", nil)

	w = api.do(t, session, http.MethodPost, "/api/checkout/place-order", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422 without payment method, got %d", w.Code)
	}

	api.do(t, session, http.MethodPut, "/api/checkout/payment-method", MethodRequest{Method: "bkash"})

	w = api.do(t, session, http.MethodPost, "/api/checkout/place-order", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	order := decodeBody[OrderReceiptResponse](t, w)
	if !strings.HasPrefix(order.Number, "BD") || len(order.Number) != 7 {
		t.Errorf("Unexpected order number %q", order.Number)
	}
	if order.Summary.Total != 5865-587+200 {
		t.Errorf("Expected total %d, got %d", 5865-587+200, order.Summary.Total)
	}
	if order.PlacedOn != format.Date(order.PlacedAt) || order.PlacedOn == "" {
		t.Errorf("Expected placed_on %q, got %q", format.Date(order.PlacedAt), order.PlacedOn)
	}
	if order.TotalLabel != "BDT 5,478" || order.DiscountLabel != "10%" {
		t.Errorf("Unexpected receipt labels %q %q", order.TotalLabel, order.DiscountLabel)
	}

	state := decodeBody[cart.State](t, api.do(t, session, http.MethodGet, "/api/cart", nil))
	if state.Count != 0 {
		t.Errorf("Expected cart cleared after order, got %d", state.Count)
	}

	w = api.do(t, session, http.MethodPost, "/api/checkout/back", nil)
	view = decodeBody[checkout.View](t, w)
	if view.Step != checkout.StepConfirmation || view.Order == nil {
		t.Errorf("Expected to stay on confirmation with the order, got %v", view.Step)
	}
}

func TestCheckout_InvalidCouponClears(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	api.do(t, session, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "3"})
	api.do(t, session, http.MethodPost, "/api/checkout/coupon", CouponRequest{Code: "SUMMER25"})

	w := api.do(t, session, http.MethodPost, "/api/checkout/coupon", CouponRequest{Code: "BOGUS"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", w.Code)
	}

	view := decodeBody[checkout.View](t, api.do(t, session, http.MethodGet, "/api/checkout", nil))
	if view.Summary.Coupon != nil || view.Summary.Discount != 0 {
		t.Errorf("Expected coupon cleared, got %+v", view.Summary)
	}
}

func TestCheckout_UnknownShippingMethod(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodPut, "/api/checkout/shipping-method", MethodRequest{Method: "drone"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
}

func TestBuilder_Flow(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	w := api.do(t, session, http.MethodGet, "/api/builder/categories/processors/options", nil)
	options := decodeBody[map[string][]domain.Product](t, w)["products"]
	if len(options) == 0 {
		t.Fatal("Expected processor options")
	}

	w = api.do(t, session, http.MethodPut, "/api/builder/categories/processors", SelectComponentRequest{ProductID: options[0].ID})
	view := decodeBody[builder.View](t, w)
	if view.RequiredSelected != 1 || view.Total != options[0].Price {
		t.Errorf("Unexpected view after select: %+v", view)
	}

	w = api.do(t, session, http.MethodPut, "/api/builder/categories/ram", SelectComponentRequest{ProductID: options[0].ID})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for a processor in the ram slot, got %d", w.Code)
	}

	w = api.do(t, session, http.MethodPost, "/api/builder/add-to-cart", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for incomplete build, got %d", w.Code)
	}

	w = api.do(t, session, http.MethodGet, "/api/builder/categories/flux-capacitor/options", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown slot, got %d", w.Code)
	}

	w = api.do(t, session, http.MethodDelete, "/api/builder/categories/processors", nil)
	view = decodeBody[builder.View](t, w)
	if view.RequiredSelected != 0 {
		t.Errorf("Expected empty build, got %d", view.RequiredSelected)
	}
}

func TestBuilder_CompleteBuildGoesToCart(t *testing.T) {
	api := newTestAPI(t)
	session := newSession(t, api)

	for _, c := range builder.Categories() {
		if !c.Required {
			continue
		}
		w := api.do(t, session, http.MethodGet, "/api/builder/categories/"+c.ID+"/options", nil)
		options := decodeBody[map[string][]domain.Product](t, w)["products"]
		if len(options) == 0 {
			t.Fatalf("No options for %s", c.ID)
		}
		api.do(t, session, http.MethodPut, "/api/builder/categories/"+c.ID, SelectComponentRequest{ProductID: options[0].ID})
	}

	w := api.do(t, session, http.MethodPost, "/api/builder/add-to-cart", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody[AddBuildResponse](t, w)
	if resp.Added != builder.RequiredCount() || len(resp.Cart.Items) != builder.RequiredCount() {
		t.Errorf("Expected %d components in cart, got %d", builder.RequiredCount(), resp.Added)
	}

	w = api.do(t, session, http.MethodPost, "/api/builder/save", nil)
	snapshot := decodeBody[domain.BuildSnapshot](t, w)
	if len(snapshot.Components) != builder.RequiredCount() {
		t.Errorf("Expected saved build with %d components, got %d", builder.RequiredCount(), len(snapshot.Components))
	}
}
