package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const defaultNewProductsLimit = 10

// Service exposes catalog reads to the HTTP layer.
type Service interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	NewProducts(ctx context.Context, limit int64) ([]Product, error)
	Search(ctx context.Context, term string) ([]Product, error)
}

type service struct {
	repo Repository
}

// NewService creates a catalog Service on top of repo.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list categories")
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("category_id", id).Msg("service: failed to fetch category")
		return nil, fmt.Errorf("service: failed to fetch category: %w", err)
	}
	return category, nil
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) ProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	products, err := s.repo.ProductsByCategory(ctx, categoryID)
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID).Msg("service: failed to fetch category products")
		return nil, fmt.Errorf("service: failed to fetch category products: %w", err)
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("product_id", id).Msg("service: failed to fetch product")
		return nil, fmt.Errorf("service: failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *service) NewProducts(ctx context.Context, limit int64) ([]Product, error) {
	if limit <= 0 {
		limit = defaultNewProductsLimit
	}
	products, err := s.repo.NewProducts(ctx, limit)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch new products")
		return nil, fmt.Errorf("service: failed to fetch new products: %w", err)
	}
	return products, nil
}

func (s *service) Search(ctx context.Context, term string) ([]Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Product{}, nil
	}
	products, err := s.repo.SearchProducts(ctx, term)
	if err != nil {
		log.Error().Err(err).Str("term", term).Msg("service: failed to search products")
		return nil, fmt.Errorf("service: failed to search products: %w", err)
	}
	return products, nil
}
