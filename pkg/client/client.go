// Package client is a Go client for the catalog API. Controller mirrors the
// table UI's state: it owns the current query spec and guarantees that a slow
// in-flight fetch never overwrites the result of a newer one.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/internal/catalog/query"
)

// APIError is a non-2xx response from the catalog service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api: %d %s", e.Status, e.Message)
}

// ListResult is the decoded GET /api/products payload.
type ListResult struct {
	Success      bool               `json:"success"`
	Data         []domain.Product   `json:"data"`
	Pagination   query.Pagination   `json:"pagination"`
	Aggregations query.Aggregations `json:"aggregations"`
}

// CreateRequest carries the fields for POST /api/products.
type CreateRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
}

// UpdateRequest is a partial update; nil fields are omitted from the body.
type UpdateRequest struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

// Client wraps HTTP access to the catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a catalog client for baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// ListProducts runs the query pipeline server-side and returns the page.
func (c *Client) ListProducts(ctx context.Context, spec query.Spec) (*ListResult, error) {
	params := url.Values{}
	if spec.Search != "" {
		params.Set("search", spec.Search)
	}
	if spec.Category != "" {
		params.Set("category", spec.Category)
	}
	if spec.Status != "" {
		params.Set("status", spec.Status)
	}
	if spec.MinPrice != nil {
		params.Set("minPrice", strconv.FormatFloat(*spec.MinPrice, 'f', -1, 64))
	}
	if spec.MaxPrice != nil {
		params.Set("maxPrice", strconv.FormatFloat(*spec.MaxPrice, 'f', -1, 64))
	}
	if spec.SortBy != "" {
		params.Set("sortBy", spec.SortBy)
		params.Set("sortOrder", spec.SortOrder)
	}
	if spec.Page > 0 {
		params.Set("page", strconv.Itoa(spec.Page))
	}
	if spec.Limit > 0 {
		params.Set("limit", strconv.Itoa(spec.Limit))
	}

	var result ListResult
	if err := c.do(ctx, http.MethodGet, "/api/products?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProduct fetches one record by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var resp struct {
		Data domain.Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateProduct inserts a new record and returns it with the assigned id and
// date.
func (c *Client) CreateProduct(ctx context.Context, req CreateRequest) (*domain.Product, error) {
	var resp struct {
		Data domain.Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/products", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateProduct applies a partial update.
func (c *Client) UpdateProduct(ctx context.Context, id int, req UpdateRequest) (*domain.Product, error) {
	var resp struct {
		Data domain.Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteProduct removes a record and returns the removed snapshot.
func (c *Client) DeleteProduct(ctx context.Context, id int) (*domain.Product, error) {
	var resp struct {
		Data domain.Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
