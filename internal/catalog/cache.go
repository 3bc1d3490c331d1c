package catalog

import (
	"context"
	"sync"

	"storefront/core/internal/client"
	"storefront/core/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Cache holds the full product and category listing fetched from the catalog
// service. Contents are replaced wholesale on refetch and stay valid until the
// next explicit refetch; a failed fetch keeps the previous contents.
type Cache struct {
	client client.StorefrontClient

	mu         sync.RWMutex
	products   []domain.Product
	categories []string
	loading    bool
	lastErr    string
}

func NewCache(client client.StorefrontClient) *Cache {
	return &Cache{
		client: client,
	}
}

// Products returns the cached product list. The returned slice is a copy,
// callers may not observe later refetches through it.
func (c *Cache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]domain.Product, len(c.products))
	copy(products, c.products)
	return products
}

func (c *Cache) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	categories := make([]string, len(c.categories))
	copy(categories, c.categories)
	return categories
}

func (c *Cache) TotalProducts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Err returns the message of the last failed fetch, or "" when the last
// refetch succeeded. Readers of cached state never see fetch errors thrown.
func (c *Cache) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// FetchAll retrieves the full product list and replaces the cached list
// wholesale. On failure the cache keeps its previous contents and records the
// error message.
func (c *Cache) FetchAll(ctx context.Context) error {
	products, err := c.client.ListProducts(ctx)
	if err != nil {
		log.Errorf("Failed to fetch products: %v", err)
		c.setErr(err.Error())
		return err
	}

	c.mu.Lock()
	c.products = products
	c.lastErr = ""
	c.mu.Unlock()

	log.Infof("Catalog cache loaded with %d products", len(products))
	return nil
}

// FetchCategories retrieves the category name list. When the fetch fails the
// cache falls back to the distinct category values of whatever products are
// already cached.
func (c *Cache) FetchCategories(ctx context.Context) error {
	categories, err := c.client.ListCategories(ctx)
	if err != nil {
		log.Warnf("Failed to fetch categories, deriving from cached products: %v", err)

		fallback := c.deriveCategories()
		if len(fallback) == 0 {
			c.setErr(err.Error())
			return err
		}

		c.mu.Lock()
		c.categories = fallback
		c.mu.Unlock()
		return nil
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()

	return nil
}

// RefetchAll runs the product and category fetches concurrently. Loading stays
// true until both resolve; the error state is set if either fails.
func (c *Cache) RefetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.FetchAll(ctx)
	})

	g.Go(func() error {
		return c.FetchCategories(ctx)
	})

	if err := g.Wait(); err != nil {
		c.setErr(err.Error())
		return err
	}

	return nil
}

// ProductByID looks the product up in the cache first and falls back to the
// catalog service when it is not cached.
func (c *Cache) ProductByID(ctx context.Context, id int) (*domain.Product, error) {
	c.mu.RLock()
	for i := range c.products {
		if c.products[i].ID == id {
			product := c.products[i]
			c.mu.RUnlock()
			return &product, nil
		}
	}
	c.mu.RUnlock()

	return c.client.GetProduct(ctx, id)
}

func (c *Cache) setErr(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
}

func (c *Cache) deriveCategories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
