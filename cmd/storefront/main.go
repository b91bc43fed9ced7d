package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rameshaqua/storefront/internal/auth"
	"github.com/rameshaqua/storefront/internal/cart"
	"github.com/rameshaqua/storefront/internal/catalog"
	"github.com/rameshaqua/storefront/internal/config"
	"github.com/rameshaqua/storefront/internal/coupon"
	"github.com/rameshaqua/storefront/internal/db"
	"github.com/rameshaqua/storefront/internal/transport"
	"github.com/rameshaqua/storefront/internal/user"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	mongoDB, err := db.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoDB.Close(ctx)

	if err := coupon.Seed(ctx, mongoDB.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed coupons")
	}

	catalogRepo := catalog.NewMongoRepository(mongoDB.Database)
	if cfg.Redis.Addr != "" {
		rdb, err := db.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		catalogRepo = catalog.WithCache(catalogRepo, rdb, cfg.Redis.CacheTTL)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, catalog cache disabled")
	}

	rules := cart.Rules{
		TaxRate:          cfg.Pricing.TaxRate,
		DeliveryFee:      cfg.Pricing.DeliveryFee,
		FreeDeliveryOver: cfg.Pricing.FreeDeliveryOver,
	}

	router := transport.NewRouter(transport.Deps{
		Carts:   cart.NewStore(rules),
		Catalog: catalog.NewService(catalogRepo),
		Coupons: coupon.NewService(coupon.NewMongoRepository(mongoDB.Database)),
		Users:   user.NewService(user.NewMongoRepository(mongoDB.Database)),
		Tokens:  auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
