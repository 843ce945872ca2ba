package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/flogin/prodadmin/internal/client/api"
)

// ProductCache mirrors the server's product list. The cache is the sole
// authority for the client-visible list; the server stays the authority
// for persisted state. Every mutation happens strictly after the backend
// acknowledges success; there is no optimistic pre-update, and a failed
// call leaves the cache untouched.
//
// Invariant: Count() always equals len(Products()) after any successful
// mutation. The count is maintained alongside the list, never recomputed
// independently by callers.
type ProductCache struct {
	mu       sync.Mutex
	client   api.Client
	logger   *slog.Logger
	products []api.Product
	count    int
	loading  bool
}

func NewProductCache(client api.Client, logger *slog.Logger) *ProductCache {
	return &ProductCache{
		client: client,
		logger: logger.With("component", "products"),
	}
}

// Refresh replaces the cached list and its derived count with the
// server's current set. On failure the stale list is retained so a
// transient network blip does not blank the UI; the error is returned.
func (c *ProductCache) Refresh(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	products, err := c.client.Products(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch products", "error", err)
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	c.mu.Lock()
	c.products = products
	c.count = len(products)
	c.mu.Unlock()
	c.logger.DebugContext(ctx, "Products refreshed", "count", len(products))
	return nil
}

// Add sends the payload to the backend and, on success, appends the
// server-returned product (carrying the server-assigned id) to the cache.
func (c *ProductCache) Add(ctx context.Context, payload api.ProductPayload) (*api.Product, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	created, err := c.client.CreateProduct(ctx, payload)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to add product", "error", err)
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	c.mu.Lock()
	c.products = append(c.products, *created)
	c.count++
	c.mu.Unlock()
	c.logger.InfoContext(ctx, "Product added", "id", created.ID, "name", created.ProductName)
	return created, nil
}

// Update sends the payload and, on success, replaces the cached entry
// matching id with the server-returned object. The replacement is a full
// one, not a merge, so server-side derived fields are never masked by
// stale local values. Entries with other ids are untouched.
func (c *ProductCache) Update(ctx context.Context, id int64, payload api.ProductPayload) (*api.Product, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	updated, err := c.client.UpdateProduct(ctx, id, payload)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to update product", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i] = *updated
			break
		}
	}
	c.mu.Unlock()
	c.logger.InfoContext(ctx, "Product updated", "id", id)
	return updated, nil
}

// Delete removes the product on the backend and, on success, drops the
// matching cache entry. Deleting an id that is already absent from the
// cache is a no-op locally, even though the backend may report not-found
// on a second call.
func (c *ProductCache) Delete(ctx context.Context, id int64) error {
	c.setLoading(true)
	defer c.setLoading(false)

	if err := c.client.DeleteProduct(ctx, id); err != nil {
		c.logger.WarnContext(ctx, "Failed to delete product", "id", id, "error", err)
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			c.count--
			break
		}
	}
	c.mu.Unlock()
	c.logger.InfoContext(ctx, "Product deleted", "id", id)
	return nil
}

// Products returns a copy of the cached product list.
func (c *ProductCache) Products() []api.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Count returns the cached product count.
func (c *ProductCache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Find returns the cached product with the given id, if present.
func (c *ProductCache) Find(id int64) (*api.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p, true
		}
	}
	return nil, false
}

// Loading reports whether a backend call is in flight.
func (c *ProductCache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *ProductCache) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
