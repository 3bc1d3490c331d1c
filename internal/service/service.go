package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"storefront/core/internal/auth"
	"storefront/core/internal/cart"
	"storefront/core/internal/catalog"
	"storefront/core/internal/client"
	"storefront/core/internal/config"
	"storefront/core/internal/domain"
	"storefront/core/internal/pagination"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNotAuthenticated = errors.New("checkout requires an authenticated user")
	ErrEmptyCart        = errors.New("cannot check out an empty cart")
)

// PageView is one rendered page of the filtered, sorted catalog.
type PageView struct {
	Items        []domain.Product
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	VisiblePages []int
}

// Order is the summary produced by a successful checkout.
type Order struct {
	User       domain.User
	Entries    []domain.CartEntry
	TotalItems int
	TotalPrice float64
	PlacedAt   time.Time
}

// Service ties the catalog cache, filter/sort pipeline, pagination engine,
// cart store, and auth together into the storefront's browsing and checkout
// flow. Filter state lives here and is never persisted.
type Service struct {
	cache  *catalog.Cache
	cart   *cart.Store
	auth   *auth.Service
	client client.StorefrontClient

	paginator      *pagination.Paginator[domain.Product]
	perPageChoices []int

	category string
	sortKey  domain.SortKey
}

func NewService(
	cache *catalog.Cache,
	cartStore *cart.Store,
	authService *auth.Service,
	client client.StorefrontClient,
	cfg config.PaginationConfig,
) *Service {
	return &Service{
		cache:          cache,
		cart:           cartStore,
		auth:           authService,
		client:         client,
		paginator:      pagination.New[domain.Product](cfg.PerPage),
		perPageChoices: cfg.PerPageChoices,
		category:       domain.CategoryAll,
		sortKey:        domain.SortDefault,
	}
}

// SelectCategory narrows browsing to one catalog category, or CategoryAll.
func (s *Service) SelectCategory(category string) {
	if category == "" {
		category = domain.CategoryAll
	}
	s.category = category
}

func (s *Service) SelectSort(sortKey domain.SortKey) {
	if !sortKey.Valid() {
		sortKey = domain.SortDefault
	}
	s.sortKey = sortKey
}

// ClearFilters resets category and sort to their defaults.
func (s *Service) ClearFilters() {
	s.category = domain.CategoryAll
	s.sortKey = domain.SortDefault
}

func (s *Service) Category() string {
	return s.category
}

func (s *Service) Sort() domain.SortKey {
	return s.sortKey
}

// SetPerPage switches the page size. Sizes outside the configured menu are
// ignored.
func (s *Service) SetPerPage(perPage int) {
	if !slices.Contains(s.perPageChoices, perPage) {
		return
	}
	s.paginator.SetPerPage(perPage)
}

func (s *Service) PerPageChoices() []int {
	return slices.Clone(s.perPageChoices)
}

// Browse runs the filter/sort pipeline over the cached catalog and returns the
// current page of the result. It always reflects the latest cache contents and
// filter state; a filter change that shrinks the result resets to page 1.
func (s *Service) Browse() PageView {
	filtered := catalog.FilterAndSort(s.cache.Products(), s.category, s.sortKey)
	s.paginator.SetItems(filtered)
	return s.pageView()
}

func (s *Service) GoToPage(n int) PageView {
	s.paginator.GoToPage(n)
	return s.pageView()
}

func (s *Service) GoToNext() PageView {
	s.paginator.GoToNext()
	return s.pageView()
}

func (s *Service) GoToPrevious() PageView {
	s.paginator.GoToPrevious()
	return s.pageView()
}

func (s *Service) pageView() PageView {
	return PageView{
		Items:        s.paginator.PageItems(),
		CurrentPage:  s.paginator.CurrentPage(),
		TotalPages:   s.paginator.TotalPages(),
		TotalItems:   s.paginator.TotalItems(),
		VisiblePages: s.paginator.VisiblePages(5),
	}
}

// AddToCart resolves the product through the catalog cache and adds it to the
// cart.
func (s *Service) AddToCart(ctx context.Context, productID int) error {
	product, err := s.cache.ProductByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to resolve product %d: %w", productID, err)
	}

	s.cart.Add(ctx, *product)
	return nil
}

// Checkout turns the cart into an order summary and clears it. Only
// authenticated users may check out; the cart is left untouched on failure.
func (s *Service) Checkout(ctx context.Context) (*Order, error) {
	if !s.auth.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	entries := s.cart.Entries()
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		User:       *s.auth.CurrentUser(),
		Entries:    entries,
		TotalItems: s.cart.TotalItems(),
		TotalPrice: s.cart.TotalPrice(),
		PlacedAt:   time.Now(),
	}

	s.cart.Clear(ctx)

	log.Infof("Checked out %d items for %.2f", order.TotalItems, order.TotalPrice)
	return order, nil
}

// CreateProduct submits the product to the catalog service and then refetches
// the catalog so the cache reflects the addition. The refetch failing does not
// undo the creation; the stale cache keeps its previous contents.
func (s *Service) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product, err := s.client.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.cache.FetchAll(ctx); err != nil {
		log.Warnf("Catalog refetch after create failed: %v", err)
	}

	return product, nil
}
