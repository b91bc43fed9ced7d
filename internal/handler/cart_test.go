package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshaqua/storefront/internal/cart"
	"github.com/rameshaqua/storefront/internal/catalog"
	"github.com/rameshaqua/storefront/internal/coupon"
	"github.com/rameshaqua/storefront/internal/handler"
)

type stubCatalog struct {
	catalog.Service
	products map[string]*catalog.Product
}

func (s *stubCatalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, catalog.ErrNotFound
}

type stubCoupons struct {
	validateFunc func(ctx context.Context, code string, subtotal float64) (float64, *coupon.Coupon, error)
}

func (s *stubCoupons) Validate(ctx context.Context, code string, subtotal float64) (float64, *coupon.Coupon, error) {
	return s.validateFunc(ctx, code, subtotal)
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	catalogStub := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Title: "Fish Feed 5kg", Price: 200.0},
		"p2": {ID: "p2", Title: "Aerator Pump", Price: "150"},
	}}
	couponStub := &stubCoupons{
		validateFunc: func(ctx context.Context, code string, subtotal float64) (float64, *coupon.Coupon, error) {
			if strings.EqualFold(strings.TrimSpace(code), "save20") {
				return subtotal * 0.20, &coupon.Coupon{Code: "save20", Percent: 20, Active: true}, nil
			}
			return 0, nil, coupon.ErrNotFound
		},
	}

	h := handler.NewCartHandler(cart.NewStore(cart.DefaultRules()), catalogStub, couponStub)

	r := chi.NewRouter()
	r.Route("/cart", func(r chi.Router) {
		r.Use(handler.Session)
		h.RegisterRoutes(r)
	})
	return r
}

// do sends a request reusing the session cookie issued on first contact.
type client struct {
	t       *testing.T
	router  *chi.Mux
	cookies []*http.Cookie
}

func (c *client) do(method, path, body string) (*httptest.ResponseRecorder, cart.Snapshot) {
	c.t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}

	var snap cart.Snapshot
	if rec.Code == http.StatusOK {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &snap))
	}
	return rec, snap
}

func TestCartHandler_AddItem(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	rec, snap := c.do(http.MethodPost, "/cart/items", `{"productId":"p1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Fish Feed 5kg", snap.Items[0].Name)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, 400.0, snap.Subtotal)
	assert.Equal(t, 72.0, snap.TaxAmount)
	assert.Equal(t, 40.0, snap.DeliveryFee)
	assert.Equal(t, 512.0, snap.GrandTotal)
}

func TestCartHandler_AddItem_StringPriceCoerced(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	rec, snap := c.do(http.MethodPost, "/cart/items", `{"productId":"p2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, 150.0, snap.Items[0].UnitPrice)
	assert.Equal(t, 1, snap.Items[0].Quantity, "missing quantity defaults to one")
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	rec, _ := c.do(http.MethodPost, "/cart/items", `{"productId":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_AddItem_MissingProductID(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	rec, _ := c.do(http.MethodPost, "/cart/items", `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_SessionPersistsAcrossRequests(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	c.do(http.MethodPost, "/cart/items", `{"productId":"p1"}`)
	_, snap := c.do(http.MethodGet, "/cart", "")

	require.Len(t, snap.Items, 1, "cart must survive between requests of one session")

	// A fresh client without the cookie sees an empty cart.
	other := &client{t: t, router: c.router}
	_, otherSnap := other.do(http.MethodGet, "/cart", "")
	assert.Empty(t, otherSnap.Items)
}

func TestCartHandler_QuantityLifecycle(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	c.do(http.MethodPost, "/cart/items", `{"productId":"p1"}`)

	_, snap := c.do(http.MethodPost, "/cart/items/p1/increment", "")
	assert.Equal(t, 2, snap.Items[0].Quantity)

	_, snap = c.do(http.MethodPut, "/cart/items/p1", `{"quantity":5}`)
	assert.Equal(t, 5, snap.Items[0].Quantity)

	_, snap = c.do(http.MethodPut, "/cart/items/p1", `{"quantity":0}`)
	assert.Empty(t, snap.Items, "setting quantity to zero removes the line")

	// Mutations on the now-missing item are quiet no-ops.
	rec, snap := c.do(http.MethodPost, "/cart/items/p1/decrement", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, snap.Items)
}

func TestCartHandler_DecrementAtOneRemovesItem(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	c.do(http.MethodPost, "/cart/items", `{"productId":"p1"}`)
	_, snap := c.do(http.MethodPost, "/cart/items/p1/decrement", "")

	assert.Empty(t, snap.Items)
	assert.Equal(t, 0.0, snap.GrandTotal)
}

func TestCartHandler_Discount(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	// 4x200 = 800 subtotal, free delivery, 144 tax.
	c.do(http.MethodPost, "/cart/items", `{"productId":"p1","quantity":4}`)

	rec, snap := c.do(http.MethodPost, "/cart/discount", `{"code":"SAVE20"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 160.0, snap.DiscountAmount)
	assert.Equal(t, 800.0+144.0-160.0, snap.GrandTotal)
}

func TestCartHandler_Discount_InvalidCode(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	c.do(http.MethodPost, "/cart/items", `{"productId":"p1"}`)
	rec, _ := c.do(http.MethodPost, "/cart/discount", `{"code":"NOPE"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_ClearResetsEverything(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	c.do(http.MethodPost, "/cart/items", `{"productId":"p1","quantity":4}`)
	c.do(http.MethodPost, "/cart/discount", `{"code":"save20"}`)

	_, snap := c.do(http.MethodDelete, "/cart", "")
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0.0, snap.DiscountAmount)
	assert.Equal(t, 0.0, snap.GrandTotal)
}
