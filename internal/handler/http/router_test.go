package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FItraRizky/fro/internal/catalog"
	"github.com/FItraRizky/fro/internal/checkout"
	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/internal/fixture"
	"github.com/FItraRizky/fro/internal/storage/memory"
	"github.com/FItraRizky/fro/internal/store"
	"github.com/FItraRizky/fro/pkg/health"
	"github.com/FItraRizky/fro/pkg/httputil"
	"github.com/FItraRizky/fro/pkg/logger"
	"github.com/FItraRizky/fro/pkg/middleware"
)

// ============================================================================
// Test helpers
// ============================================================================

type testServer struct {
	handler  http.Handler
	sessions *store.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, nil)
}

func newTestServerWith(t *testing.T, configure func(*Deps)) *testServer {
	t.Helper()
	log := logger.Discard()

	engine := catalog.NewEngine(fixture.Products(), log,
		catalog.WithCategories(fixture.Categories()),
		catalog.WithReviews(fixture.Reviews()),
	)
	pricer := checkout.NewPricer(fixture.PromoCodes(), fixture.ShippingMethods(), func() time.Time {
		return time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	})
	svc := checkout.NewService(pricer, checkout.Config{
		SubmitDelay:     10 * time.Millisecond,
		NewsletterDelay: 10 * time.Millisecond,
	}, log, checkout.WithFailureFunc(func() bool { return false }))
	sessions := store.NewRegistry(memory.New(), store.RegistryConfig{NotificationTTL: time.Minute}, log)
	t.Cleanup(func() {
		svc.Close()
		sessions.Close()
	})

	deps := Deps{
		Catalog:  engine,
		Sessions: sessions,
		Checkout: svc,
		Health:   health.NewHandler(),
		Logger:   log,
	}
	if configure != nil {
		configure(&deps)
	}
	return &testServer{handler: NewRouter(deps), sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data part of the envelope into target.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, target))
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error, "body: %s", rec.Body.String())
	return resp.Error
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func validForm() checkout.Form {
	return checkout.Form{
		FirstName:     "Sari",
		LastName:      "Dewi",
		Email:         "sari@example.com",
		Phone:         "081298765432",
		Address:       "Jl. Thamrin No. 10",
		City:          "Jakarta Pusat",
		Province:      "DKI Jakarta",
		PostalCode:    "10350",
		PaymentMethod: checkout.PaymentBankTransfer,
	}
}

// ============================================================================
// Catalog
// ============================================================================

func TestListProducts(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/products?category=fashion&sort=price-low", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	var resp struct {
		Data []domain.Product `json:"data"`
		Meta ListMeta         `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"1", "6", "2", "3"}, ids(resp.Data))
	assert.Equal(t, 4, resp.Meta.TotalCount)
	assert.Equal(t, 1, resp.Meta.TotalPages)
	assert.Equal(t, catalog.SortKey("price-low"), resp.Meta.Params.Sort)
}

func TestListProducts_EmptyResult(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/products?search=tidak-ada", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	decodeData(t, rec, &products)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/products/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page ProductPage
	decodeData(t, rec, &page)
	assert.Equal(t, "Kemeja Kasual Premium", page.Product.Name)
	assert.Equal(t, []string{"2", "3", "6"}, ids(page.Related))
	assert.Equal(t, 2, page.Reviews.Total)
	assert.InDelta(t, 4.5, page.Reviews.Average, 1e-9)

	rec = s.do(t, http.MethodGet, "/api/v1/products/kemeja-kasual-premium", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &page)
	assert.Equal(t, "1", page.Product.ID)

	rec = s.do(t, http.MethodGet, "/api/v1/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErr(t, rec).Code)
}

func TestProductReviews_FilterByRating(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/products/1/reviews?rating=4", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary catalog.ReviewSummary
	decodeData(t, rec, &summary)
	require.Len(t, summary.Reviews, 1)
	assert.Equal(t, 4, summary.Reviews[0].Rating)
	assert.Equal(t, 2, summary.Total)
}

func TestProductRails(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		want []string
	}{
		{"/api/v1/products/featured", []string{"1", "2", "4", "6"}},
		{"/api/v1/products/new", []string{"2", "3", "5"}},
		{"/api/v1/products/bestsellers", []string{"1", "3", "6"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.path, "", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			var products []domain.Product
			decodeData(t, rec, &products)
			assert.Equal(t, tt.want, ids(products))
		})
	}
}

func TestCategoriesAndShippingMethods(t *testing.T) {
	s := newTestServer(t)

	var categories []domain.Category
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/categories", "", nil), &categories)
	assert.Len(t, categories, 3)

	var methods []domain.ShippingMethod
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/shipping-methods", "", nil), &methods)
	require.Len(t, methods, 3)
	assert.Equal(t, "Reguler", methods[0].Name)
}

// ============================================================================
// Session
// ============================================================================

func TestSessionRoutes_RequireHeader(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/state", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/state", "bad id!", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, s.sessions.Len())
}

func TestGetState_Empty(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/state", "shopper-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var state StateResponse
	decodeData(t, rec, &state)
	assert.Empty(t, state.Cart)
	assert.Nil(t, state.User)
	assert.Zero(t, state.CartCount)
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-cart"
	item := AddCartItemRequest{ProductID: "1", Quantity: 1, Variants: map[string]string{"color": "Biru", "size": "L"}}

	rec := s.do(t, http.MethodPost, "/api/v1/cart/items", sid, item)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	item.Quantity = 2
	rec = s.do(t, http.MethodPost, "/api/v1/cart/items", sid, item)
	require.Equal(t, http.StatusCreated, rec.Code)

	var state StateResponse
	decodeData(t, rec, &state)
	require.Len(t, state.Cart, 1, "same product and variants merge into one line")
	assert.Equal(t, 3, state.CartCount)
	assert.Equal(t, int64(897000), state.CartSubtotal)
	lineID := state.Cart[0].ID

	rec = s.do(t, http.MethodPut, "/api/v1/cart/items/"+lineID, sid, UpdateQuantityRequest{Quantity: 5})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &state)
	assert.Equal(t, int64(1495000), state.Cart[0].TotalPrice)

	rec = s.do(t, http.MethodPut, "/api/v1/cart/items/nope", sid, UpdateQuantityRequest{Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/cart/items/"+lineID, sid, UpdateQuantityRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &state)
	assert.Empty(t, state.Cart)

	var notes []domain.Notification
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/notifications", sid, nil), &notes)
	require.Len(t, notes, 2)
	assert.Equal(t, "Kemeja Kasual Premium ditambahkan ke keranjang", notes[0].Message)
}

func TestCartItem_Rejects(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-reject"

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"unknown product", AddCartItemRequest{ProductID: "42", Quantity: 1}, http.StatusNotFound},
		{"negative quantity", AddCartItemRequest{ProductID: "1", Quantity: -1}, http.StatusBadRequest},
		{"too many", AddCartItemRequest{ProductID: "1", Quantity: 100}, http.StatusBadRequest},
		{"unknown variant", AddCartItemRequest{ProductID: "1", Quantity: 1, Variants: map[string]string{"size": "XXS"}}, http.StatusBadRequest},
		{"unknown field", map[string]any{"product_id": "1", "quantity": 1, "price": 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/cart/items", sid, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	var state StateResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/state", sid, nil), &state)
	assert.Empty(t, state.Cart)
}

func TestCartItem_DefaultsToOneUnit(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-default-qty"

	rec := s.do(t, http.MethodPost, "/api/v1/cart/items", sid, map[string]any{"product_id": "4"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var state StateResponse
	decodeData(t, rec, &state)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 1, state.Cart[0].Quantity)
	assert.Equal(t, 1, state.CartCount)

	rec = s.do(t, http.MethodPost, "/api/v1/cart/items", sid, AddCartItemRequest{ProductID: "4", Quantity: 0})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decodeData(t, rec, &state)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 2, state.Cart[0].Quantity)
}

func TestClearCartAndRemoveLine(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-clear"

	for _, id := range []string{"1", "4"} {
		rec := s.do(t, http.MethodPost, "/api/v1/cart/items", sid, AddCartItemRequest{ProductID: id, Quantity: 1})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var state StateResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/state", sid, nil), &state)
	require.Len(t, state.Cart, 2)

	rec := s.do(t, http.MethodDelete, "/api/v1/cart/items/"+state.Cart[0].ID, sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &state)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, "4", state.Cart[0].ProductID)

	rec = s.do(t, http.MethodDelete, "/api/v1/cart", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &state)
	assert.Empty(t, state.Cart)
}

func TestWishlistFlow(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-wish"

	rec := s.do(t, http.MethodPost, "/api/v1/wishlist", sid, AddWishlistRequest{ProductID: "6"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/wishlist", sid, AddWishlistRequest{ProductID: "6"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp WishlistResponse
	decodeData(t, rec, &resp)
	assert.False(t, resp.Added)
	assert.Len(t, resp.State.Wishlist, 1)

	var notes []domain.Notification
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/notifications", sid, nil), &notes)
	require.Len(t, notes, 2)
	assert.Equal(t, domain.LevelWarning, notes[1].Level)

	rec = s.do(t, http.MethodDelete, "/api/v1/wishlist/6", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state StateResponse
	decodeData(t, rec, &state)
	assert.Empty(t, state.Wishlist)
}

func TestUserFlow(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-user"

	rec := s.do(t, http.MethodPut, "/api/v1/user", sid, SetUserRequest{ID: "u1", Email: "not-mail", FirstName: "Budi"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErr(t, rec).Fields, "email")

	rec = s.do(t, http.MethodPut, "/api/v1/user", sid, SetUserRequest{ID: "u1", Email: "Budi@Example.com", FirstName: "Budi"})
	require.Equal(t, http.StatusOK, rec.Code)
	var state StateResponse
	decodeData(t, rec, &state)
	require.NotNil(t, state.User)
	assert.Equal(t, "budi@example.com", state.User.Email)

	rec = s.do(t, http.MethodDelete, "/api/v1/user", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &state)
	assert.Nil(t, state.User)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/cart/items", "alice", AddCartItemRequest{ProductID: "3", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	var state StateResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/state", "bob", nil), &state)
	assert.Empty(t, state.Cart)
	assert.Equal(t, 2, s.sessions.Len())
}

func TestDismissNotification(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-dismiss"

	s.do(t, http.MethodPost, "/api/v1/wishlist", sid, AddWishlistRequest{ProductID: "2"})
	var notes []domain.Notification
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/notifications", sid, nil), &notes)
	require.Len(t, notes, 1)

	rec := s.do(t, http.MethodDelete, "/api/v1/notifications/"+notes[0].ID, sid, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/notifications/"+notes[0].ID, sid, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Checkout
// ============================================================================

func TestCheckoutQuote(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-quote"
	s.do(t, http.MethodPost, "/api/v1/cart/items", sid, AddCartItemRequest{ProductID: "1", Quantity: 2})

	rec := s.do(t, http.MethodPost, "/api/v1/checkout/quote", sid, checkout.QuoteRequest{
		PromoCode: "WELCOME10", ShippingMethodID: "1", Location: "Bandung",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary checkout.Summary
	decodeData(t, rec, &summary)
	assert.Equal(t, int64(570500), summary.Total)

	rec = s.do(t, http.MethodPost, "/api/v1/checkout/quote", sid, checkout.QuoteRequest{PromoCode: "BOGUS"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutValidateStep(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-steps"

	form := validForm()
	form.PostalCode = "abc"
	rec := s.do(t, http.MethodPost, "/api/v1/checkout/validate", sid, ValidateStepRequest{Step: 1, Form: form})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decodeErr(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Contains(t, errResp.Fields, "postal_code")

	rec = s.do(t, http.MethodPost, "/api/v1/checkout/validate", sid, ValidateStepRequest{Step: 2, Form: validForm()})
	require.Equal(t, http.StatusOK, rec.Code)
	var step StepResponse
	decodeData(t, rec, &step)
	assert.Equal(t, StepResponse{Step: 2, Next: 3}, step)

	rec = s.do(t, http.MethodPost, "/api/v1/checkout/validate", sid, ValidateStepRequest{Step: 9, Form: validForm()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutSubmit(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-order"

	rec := s.do(t, http.MethodPost, "/api/v1/checkout", sid, SubmitRequest{Form: validForm()})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty cart")

	s.do(t, http.MethodPost, "/api/v1/cart/items", sid, AddCartItemRequest{ProductID: "4", Quantity: 1})
	rec = s.do(t, http.MethodPost, "/api/v1/checkout", sid, SubmitRequest{
		Form:  validForm(),
		Quote: checkout.QuoteRequest{ShippingMethodID: "2", Location: "Jakarta Barat"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var conf checkout.Confirmation
	decodeData(t, rec, &conf)
	assert.True(t, strings.HasPrefix(conf.OrderID, "FRO-"))
	assert.Equal(t, int64(375000), conf.Summary.Total)

	var state StateResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/v1/state", sid, nil), &state)
	assert.Empty(t, state.Cart)
}

func TestNewsletter(t *testing.T) {
	s := newTestServer(t)
	const sid = "shopper-news"

	rec := s.do(t, http.MethodPost, "/api/v1/newsletter", sid, NewsletterRequest{Email: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/newsletter", sid, NewsletterRequest{Email: "sari@example.com"})
	require.Equal(t, http.StatusAccepted, rec.Code)

	sess, err := s.sessions.Get(context.Background(), sid)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		for _, n := range sess.Notifications.Active() {
			if n.Level == domain.LevelSuccess {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

// ============================================================================
// Plumbing
// ============================================================================

func TestContentTypeJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader("product_id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(middleware.SessionHeader, "shopper-ct")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSessionRoutes_RateLimited(t *testing.T) {
	s := newTestServerWith(t, func(d *Deps) {
		d.RateLimit = middleware.RateLimitConfig{RPS: 0.001, Burst: 2}
	})

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/state", "busy", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/state", "busy", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodGet, "/api/v1/state", "busy", nil).Code)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/state", "calm", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/products", "busy", nil).Code,
		"catalog reads are not throttled")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/ready", "", nil).Code)

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
