package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshaqua/storefront/internal/catalog"
)

type mockRepository struct {
	listCategoriesFunc     func(ctx context.Context) ([]catalog.Category, error)
	getCategoryFunc        func(ctx context.Context, id string) (*catalog.Category, error)
	listProductsFunc       func(ctx context.Context) ([]catalog.Product, error)
	productsByCategoryFunc func(ctx context.Context, categoryID string) ([]catalog.Product, error)
	getProductFunc         func(ctx context.Context, id string) (*catalog.Product, error)
	newProductsFunc        func(ctx context.Context, limit int64) ([]catalog.Product, error)
	searchProductsFunc     func(ctx context.Context, term string) ([]catalog.Product, error)
}

func (m *mockRepository) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return m.listCategoriesFunc(ctx)
}

func (m *mockRepository) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	return m.getCategoryFunc(ctx, id)
}

func (m *mockRepository) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return m.listProductsFunc(ctx)
}

func (m *mockRepository) ProductsByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	return m.productsByCategoryFunc(ctx, categoryID)
}

func (m *mockRepository) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return m.getProductFunc(ctx, id)
}

func (m *mockRepository) NewProducts(ctx context.Context, limit int64) ([]catalog.Product, error) {
	return m.newProductsFunc(ctx, limit)
}

func (m *mockRepository) SearchProducts(ctx context.Context, term string) ([]catalog.Product, error) {
	return m.searchProductsFunc(ctx, term)
}

func TestCatalogService_GetProduct(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockRepository{
			getProductFunc: func(ctx context.Context, id string) (*catalog.Product, error) {
				return &catalog.Product{ID: id, Title: "Fish Feed 5kg", Price: "199.50"}, nil
			},
		}
		svc := catalog.NewService(repo)

		product, err := svc.GetProduct(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", product.ID)
		// The loose price type survives the catalog untouched.
		assert.Equal(t, "199.50", product.Price)
	})

	t.Run("not_found_passes_sentinel", func(t *testing.T) {
		repo := &mockRepository{
			getProductFunc: func(ctx context.Context, id string) (*catalog.Product, error) {
				return nil, catalog.ErrNotFound
			},
		}
		svc := catalog.NewService(repo)

		_, err := svc.GetProduct(context.Background(), "missing")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("repository_error_wrapped", func(t *testing.T) {
		repoErr := errors.New("connection reset")
		repo := &mockRepository{
			getProductFunc: func(ctx context.Context, id string) (*catalog.Product, error) {
				return nil, repoErr
			},
		}
		svc := catalog.NewService(repo)

		_, err := svc.GetProduct(context.Background(), "p1")
		require.Error(t, err)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestCatalogService_NewProducts_DefaultLimit(t *testing.T) {
	var gotLimit int64
	repo := &mockRepository{
		newProductsFunc: func(ctx context.Context, limit int64) ([]catalog.Product, error) {
			gotLimit = limit
			return []catalog.Product{}, nil
		},
	}
	svc := catalog.NewService(repo)

	_, err := svc.NewProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), gotLimit)

	_, err = svc.NewProducts(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), gotLimit)
}

func TestCatalogService_Search(t *testing.T) {
	t.Run("blank_term_short_circuits", func(t *testing.T) {
		called := false
		repo := &mockRepository{
			searchProductsFunc: func(ctx context.Context, term string) ([]catalog.Product, error) {
				called = true
				return nil, nil
			},
		}
		svc := catalog.NewService(repo)

		products, err := svc.Search(context.Background(), "   ")
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.False(t, called, "blank search must not hit the repository")
	})

	t.Run("term_trimmed", func(t *testing.T) {
		var gotTerm string
		repo := &mockRepository{
			searchProductsFunc: func(ctx context.Context, term string) ([]catalog.Product, error) {
				gotTerm = term
				return []catalog.Product{{ID: "p1"}}, nil
			},
		}
		svc := catalog.NewService(repo)

		products, err := svc.Search(context.Background(), "  tilapia ")
		require.NoError(t, err)
		assert.Equal(t, "tilapia", gotTerm)
		assert.Len(t, products, 1)
	})
}
