package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/nurtai/product-catalog/internal/catalog/query"
)

// ErrStaleResponse marks a fetch that was overtaken by a newer one. The
// caller's state was not changed; the newer fetch owns the rendered result.
var ErrStaleResponse = errors.New("response overtaken by a newer request")

// Controller holds the live query spec and the most recent list result, the
// way the table UI does. Every Refresh gets a monotonically increasing
// sequence token; a response is applied only if no newer request has been
// applied since it was issued, so rapid filter changes cannot leave a stale
// page on screen.
type Controller struct {
	client *Client

	seq atomic.Uint64

	mu      sync.Mutex
	spec    query.Spec
	applied uint64
	result  *ListResult
}

// NewController creates a controller with the default spec (page 1, default
// page size).
func NewController(c *Client) *Controller {
	return &Controller{
		client: c,
		spec:   query.Spec{Page: 1, Limit: query.DefaultLimit},
	}
}

// SetSpec replaces the whole query spec.
func (c *Controller) SetSpec(spec query.Spec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec = spec
}

// UpdateSpec mutates the spec in place, resetting to the first page the way
// the UI does whenever a filter changes.
func (c *Controller) UpdateSpec(mutate func(*query.Spec)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutate(&c.spec)
	c.spec.Page = 1
}

// SetPage moves to a page without resetting filters.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec.Page = page
}

// Spec returns a copy of the current query spec.
func (c *Controller) Spec() query.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec
}

// Result returns the most recently applied list result, nil before the first
// successful Refresh.
func (c *Controller) Result() *ListResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Refresh fetches the current spec. When overtaken by a newer Refresh it
// returns ErrStaleResponse and leaves the held result alone.
func (c *Controller) Refresh(ctx context.Context) (*ListResult, error) {
	token := c.seq.Add(1)
	spec := c.Spec()

	result, err := c.client.ListProducts(ctx, spec)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token < c.applied {
		return nil, ErrStaleResponse
	}
	c.applied = token
	c.result = result
	return result, nil
}
