package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/core/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	products      []domain.Product
	categories    []string
	productsErr   error
	categoriesErr error

	productCalls int
}

func (m *mockClient) ListProducts(context.Context) ([]domain.Product, error) {
	m.productCalls++
	return m.products, m.productsErr
}

func (m *mockClient) GetProduct(_ context.Context, id int) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, errors.New("HTTP error: 404 Not Found")
}

func (m *mockClient) ListCategories(context.Context) ([]string, error) {
	return m.categories, m.categoriesErr
}

func (m *mockClient) CreateProduct(_ context.Context, input domain.ProductInput) (*domain.Product, error) {
	p := domain.Product{ID: len(m.products) + 1, Title: input.Title, Price: input.Price, Category: input.Category}
	m.products = append(m.products, p)
	return &p, nil
}

func (m *mockClient) Login(context.Context, domain.Credentials) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockClient) CreateUser(context.Context, domain.SignupForm) (int, error) {
	return 0, errors.New("not implemented")
}

func TestFetchAllReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{products: []domain.Product{{ID: 1, Category: "electronics"}}}
	cache := NewCache(client)

	require.NoError(t, cache.FetchAll(ctx))
	assert.Len(t, cache.Products(), 1)

	client.products = []domain.Product{{ID: 2}, {ID: 3}}
	require.NoError(t, cache.FetchAll(ctx))
	assert.Equal(t, 2, cache.TotalProducts())
	assert.Empty(t, cache.Err())
}

func TestFetchAllFailureKeepsPreviousContents(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{products: []domain.Product{{ID: 1}}}
	cache := NewCache(client)
	require.NoError(t, cache.FetchAll(ctx))

	client.productsErr = errors.New("HTTP error: 500 Internal Server Error")
	err := cache.FetchAll(ctx)

	require.Error(t, err)
	assert.Len(t, cache.Products(), 1, "failed fetch keeps previous contents")
	assert.Contains(t, cache.Err(), "500")
}

func TestFetchCategoriesFallsBackToCachedProducts(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{
		products: []domain.Product{
			{ID: 1, Category: "electronics"},
			{ID: 2, Category: "jewelery"},
			{ID: 3, Category: "electronics"},
		},
		categoriesErr: errors.New("HTTP error: 503 Service Unavailable"),
	}
	cache := NewCache(client)
	require.NoError(t, cache.FetchAll(ctx))

	require.NoError(t, cache.FetchCategories(ctx))
	assert.Equal(t, []string{"electronics", "jewelery"}, cache.Categories())
}

func TestFetchCategoriesFailsWithoutCachedProducts(t *testing.T) {
	client := &mockClient{categoriesErr: errors.New("HTTP error: 503 Service Unavailable")}
	cache := NewCache(client)

	err := cache.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, cache.Err(), "503")
}

func TestRefetchAll(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{
		products:   []domain.Product{{ID: 1, Category: "electronics"}},
		categories: []string{"electronics"},
	}
	cache := NewCache(client)

	require.NoError(t, cache.RefetchAll(ctx))
	assert.Len(t, cache.Products(), 1)
	assert.Equal(t, []string{"electronics"}, cache.Categories())
	assert.False(t, cache.Loading())
	assert.Empty(t, cache.Err())
}

func TestRefetchAllSetsErrorWhenEitherFails(t *testing.T) {
	client := &mockClient{
		productsErr:   errors.New("HTTP error: 500 Internal Server Error"),
		categories:    []string{"electronics"},
		categoriesErr: nil,
	}
	cache := NewCache(client)

	err := cache.RefetchAll(context.Background())
	require.Error(t, err)
	assert.NotEmpty(t, cache.Err())
	assert.False(t, cache.Loading())
}

func TestProductByIDPrefersCache(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{products: []domain.Product{{ID: 7, Title: "Cached"}}}
	cache := NewCache(client)
	require.NoError(t, cache.FetchAll(ctx))

	calls := client.productCalls
	p, err := cache.ProductByID(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "Cached", p.Title)
	assert.Equal(t, calls, client.productCalls, "cache hit makes no API call")
}

func TestProductByIDFallsBackToAPI(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{products: []domain.Product{{ID: 7}}}
	cache := NewCache(client)
	// Nothing fetched yet, the cache is empty

	p, err := cache.ProductByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.ID)

	_, err = cache.ProductByID(ctx, 404)
	assert.Error(t, err)
}
