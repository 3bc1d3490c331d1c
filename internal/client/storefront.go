package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/core/internal/config"
	"storefront/core/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// StorefrontClient talks to the external catalog/auth service. Any non-success
// response surfaces as an error with the HTTP status embedded in the message;
// the client performs no retries beyond the transport-level retry budget.
type StorefrontClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	CreateUser(ctx context.Context, form domain.SignupForm) (int, error)
}

type storefrontClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

func NewStorefrontClient(cfg config.APIConfig) StorefrontClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &storefrontClient{
		rl:         ratelimit.New(rps),
		baseURL:    cfg.BaseURL,
		httpClient: client,
	}
}

func (c *storefrontClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, c.baseURL+"/products", &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	log.Debugf("Fetched %d products", len(products))
	return products, nil
}

func (c *storefrontClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	if err := c.getJSON(ctx, url, &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}

	return &product, nil
}

func (c *storefrontClient) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	log.Debugf("Fetched %d categories", len(categories))
	return categories, nil
}

func (c *storefrontClient) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.postJSON(ctx, c.baseURL+"/products", input, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Infof("Created product %d (%s)", product.ID, product.Title)
	return &product, nil
}

func (c *storefrontClient) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/auth/login", creds, &result); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	return result.Token, nil
}

func (c *storefrontClient) CreateUser(ctx context.Context, form domain.SignupForm) (int, error) {
	var result struct {
		ID int `json:"id"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/users", form, &result); err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return result.ID, nil
}

func (c *storefrontClient) getJSON(ctx context.Context, url string, out interface{}) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)

	return c.decodeResponse(resp, err, out)
}

func (c *storefrontClient) postJSON(ctx context.Context, url string, body, out interface{}) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(url)

	return c.decodeResponse(resp, err, out)
}

func (c *storefrontClient) decodeResponse(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Bytes(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
