package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rameshaqua/storefront/internal/cart"
	"github.com/rameshaqua/storefront/internal/catalog"
	"github.com/rameshaqua/storefront/internal/coupon"
)

// CartHandler exposes the session cart over HTTP. Every mutation responds
// with the fresh cart snapshot so clients can re-render from it directly.
type CartHandler struct {
	carts   *cart.Store
	catalog catalog.Service
	coupons coupon.Service
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Store, catalogSvc catalog.Service, couponSvc coupon.Service) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalogSvc, coupons: couponSvc}
}

// RegisterRoutes mounts the cart endpoints on router. The session middleware
// must run before these handlers.
func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.handleGetCart)
	router.Delete("/", h.handleClearCart)
	router.Post("/items", h.handleAddItem)
	router.Put("/items/{productId}", h.handleSetQuantity)
	router.Delete("/items/{productId}", h.handleRemoveItem)
	router.Post("/items/{productId}/increment", h.handleIncrement)
	router.Post("/items/{productId}/decrement", h.handleDecrement)
	router.Post("/discount", h.handleApplyDiscount)
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, h.carts.Snapshot(sessionID))
}

func (h *CartHandler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	snap := h.carts.With(sessionID, func(c *cart.Cart) { c.Clear() })
	respondWithJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		respondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "product not found")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	snap := h.carts.With(sessionID, func(c *cart.Cart) {
		c.AddItem(cart.Product{
			ID:    product.ID,
			Name:  product.Title,
			Price: product.Price,
		}, req.Quantity)
	})

	respondWithJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	snap := h.carts.With(sessionID, func(c *cart.Cart) {
		c.SetQuantity(productID, req.Quantity)
	})
	respondWithJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	sessionID := sessionIDFromContext(r.Context())
	snap := h.carts.With(sessionID, func(c *cart.Cart) {
		c.RemoveItem(productID)
	})
	respondWithJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) handleIncrement(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	sessionID := sessionIDFromContext(r.Context())
	snap := h.carts.With(sessionID, func(c *cart.Cart) {
		c.IncrementQuantity(productID)
	})
	respondWithJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) handleDecrement(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	sessionID := sessionIDFromContext(r.Context())
	snap := h.carts.With(sessionID, func(c *cart.Cart) {
		c.DecrementQuantity(productID)
	})
	respondWithJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) handleApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	subtotal := h.carts.Snapshot(sessionID).Subtotal

	amount, _, err := h.coupons.Validate(r.Context(), req.Code, subtotal)
	if err != nil {
		code := mapErrorToStatusCode(err)
		if code == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Failed to validate coupon")
			respondWithError(w, code, "failed to validate discount code")
			return
		}
		respondWithError(w, code, "invalid discount code")
		return
	}

	snap := h.carts.With(sessionID, func(c *cart.Cart) {
		c.ApplyDiscount(amount)
	})
	respondWithJSON(w, http.StatusOK, snap)
}
