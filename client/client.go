// Package client talks to the catalog HTTP API and converts responses into
// domain values.
//
// Successful GET responses are cached per request path and query. A slow
// response for one type filter can therefore only overwrite the entry for
// that same filter, never the result of a newer request for another one.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/catalogpro/catalog/app/api"
	"github.com/catalogpro/catalog/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is matched by an *APIError with status 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Issues  []models.FieldIssue
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api: %d %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger

	mu    sync.RWMutex
	cache map[string][]byte
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zap.NewNop(),
		cache:   make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate drops every cached response.
func (c *Client) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.cache)
}

func (c *Client) ProductTypes(ctx context.Context) ([]models.ProductType, error) {
	var out []api.ProductType
	if err := c.get(ctx, "/api/product-types", &out); err != nil {
		return nil, err
	}
	types := make([]models.ProductType, len(out))
	for i, t := range out {
		types[i] = t.Model()
	}
	return types, nil
}

// Products lists products, restricted to one type when typeID is set.
func (c *Client) Products(ctx context.Context, typeID string) ([]models.ProductWithVariants, error) {
	path := "/api/products"
	if typeID != "" {
		path += "?" + url.Values{"type": {typeID}}.Encode()
	}

	var out []api.ProductWithVariants
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	products := make([]models.ProductWithVariants, len(out))
	for i, p := range out {
		m, err := p.Model()
		if err != nil {
			return nil, err
		}
		products[i] = m
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*models.ProductWithVariants, error) {
	var out api.ProductWithVariants
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	p, err := out.Model()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) AddOns(ctx context.Context, productTypeID string) ([]models.AddOn, error) {
	var out []api.AddOn
	if err := c.get(ctx, "/api/add-ons/"+url.PathEscape(productTypeID), &out); err != nil {
		return nil, err
	}
	addOns := make([]models.AddOn, len(out))
	for i, a := range out {
		m, err := a.Model()
		if err != nil {
			return nil, err
		}
		addOns[i] = m
	}
	return addOns, nil
}

// Catalog fetches product types and products at the same time.
func (c *Client) Catalog(ctx context.Context, typeID string) ([]models.ProductType, []models.ProductWithVariants, error) {
	var (
		types    []models.ProductType
		products []models.ProductWithVariants
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		types, err = c.ProductTypes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = c.Products(ctx, typeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return types, products, nil
}

// ProductPage fetches a product and then the add-ons of its type.
func (c *Client) ProductPage(ctx context.Context, id string) (*models.ProductWithVariants, []models.AddOn, error) {
	p, err := c.Product(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	addOns, err := c.AddOns(ctx, p.ProductTypeID)
	if err != nil {
		return nil, nil, err
	}
	return p, addOns, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	c.mu.RLock()
	body, ok := c.cache[path]
	c.mu.RUnlock()
	if ok {
		return json.Unmarshal(body, out)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: read body: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp api.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
			apiErr.Issues = errResp.Errors
		}
		c.log.Debug("api request failed", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}

	c.mu.Lock()
	c.cache[path] = body
	c.mu.Unlock()
	return nil
}
