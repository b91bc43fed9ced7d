package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// PricingConfig feeds the cart engine's rules. Defaults match the store's
// production values: 18% GST, a flat fee of 40 and free delivery above 500.
type PricingConfig struct {
	TaxRate          float64
	DeliveryFee      float64
	FreeDeliveryOver float64
}

type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Pricing PricingConfig
}

// Load reads configuration from the environment, optionally seeding it from
// a .env file first. An empty path skips the file and uses the environment
// as-is.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = envOr("APP_PORT", "8080")

	cfg.Mongo.URI = envOr("MONGO_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = envOr("MONGO_DB", "storefront")

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	redisDB, err := envInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.Redis.DB = redisDB

	cacheTTL, err := envDuration("CATALOG_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.Redis.CacheTTL = cacheTTL

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	tokenTTL, err := envDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.Auth.TokenTTL = tokenTTL

	taxRate, err := envFloat("TAX_RATE", 0.18)
	if err != nil {
		return nil, err
	}
	cfg.Pricing.TaxRate = taxRate

	deliveryFee, err := envFloat("DELIVERY_FEE", 40)
	if err != nil {
		return nil, err
	}
	cfg.Pricing.DeliveryFee = deliveryFee

	freeOver, err := envFloat("FREE_DELIVERY_OVER", 500)
	if err != nil {
		return nil, err
	}
	cfg.Pricing.FreeDeliveryOver = freeOver

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return d, nil
}
