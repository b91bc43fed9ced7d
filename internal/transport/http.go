package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/rameshaqua/storefront/internal/auth"
	"github.com/rameshaqua/storefront/internal/cart"
	"github.com/rameshaqua/storefront/internal/catalog"
	"github.com/rameshaqua/storefront/internal/coupon"
	"github.com/rameshaqua/storefront/internal/handler"
	"github.com/rameshaqua/storefront/internal/user"
)

// Deps are the services the HTTP surface is built from.
type Deps struct {
	Carts   *cart.Store
	Catalog catalog.Service
	Coupons coupon.Service
	Users   user.Service
	Tokens  *auth.Manager
}

// NewRouter wires the full HTTP surface: health check, catalog reads,
// session-scoped cart operations and auth.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(NewRateLimiter(20, 40).Limit)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	catalogHandler.RegisterRoutes(r)

	cartHandler := handler.NewCartHandler(deps.Carts, deps.Catalog, deps.Coupons)
	r.Route("/cart", func(r chi.Router) {
		r.Use(handler.Session)
		cartHandler.RegisterRoutes(r)
	})

	userHandler := handler.NewUserHandler(deps.Users, deps.Tokens)
	userHandler.RegisterRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(deps.Tokens.RequireAuth)
		userHandler.RegisterProtectedRoutes(r)
	})

	// Browser and mobile clients call from other origins; cookies carry the
	// cart session.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
