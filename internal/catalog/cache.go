package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const categoriesCacheKey = "catalog:categories"

// cachedRepository is a read-through Redis cache in front of another
// Repository. Only the hot lookups are cached: single products and the
// category list. Cache failures degrade to the underlying repository.
type cachedRepository struct {
	Repository
	rdb *redis.Client
	ttl time.Duration
}

// WithCache wraps repo with a Redis read-through cache.
func WithCache(repo Repository, rdb *redis.Client, ttl time.Duration) Repository {
	return &cachedRepository{Repository: repo, rdb: rdb, ttl: ttl}
}

func (r *cachedRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	key := "catalog:product:" + id

	if raw, err := r.rdb.Get(ctx, key).Result(); err == nil {
		var product Product
		if err := json.Unmarshal([]byte(raw), &product); err == nil {
			return &product, nil
		}
		log.Warn().Str("key", key).Msg("Dropping undecodable cache entry")
		r.rdb.Del(ctx, key)
	}

	product, err := r.Repository.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(ctx, key, product)
	return product, nil
}

func (r *cachedRepository) ListCategories(ctx context.Context) ([]Category, error) {
	if raw, err := r.rdb.Get(ctx, categoriesCacheKey).Result(); err == nil {
		var categories []Category
		if err := json.Unmarshal([]byte(raw), &categories); err == nil {
			return categories, nil
		}
		log.Warn().Str("key", categoriesCacheKey).Msg("Dropping undecodable cache entry")
		r.rdb.Del(ctx, categoriesCacheKey)
	}

	categories, err := r.Repository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	r.set(ctx, categoriesCacheKey, categories)
	return categories, nil
}

func (r *cachedRepository) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to marshal cache entry")
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
}
