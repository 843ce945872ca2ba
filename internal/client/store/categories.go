// Package store holds the client-side mirrors of server collections: the
// product cache and the category cache. Both are process-wide singletons
// constructed once at startup and mutated only after the backend has
// acknowledged the corresponding operation.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/flogin/prodadmin/internal/client/api"
)

// CategoryCache holds the read-only category set.
type CategoryCache struct {
	mu         sync.Mutex
	client     api.Client
	logger     *slog.Logger
	categories []api.Category
	loading    bool
}

func NewCategoryCache(client api.Client, logger *slog.Logger) *CategoryCache {
	return &CategoryCache{
		client: client,
		logger: logger.With("component", "categories"),
	}
}

// Refresh fetches the full category set and replaces the cached list.
// On failure the previously cached list is retained and the error is
// returned to the caller.
func (c *CategoryCache) Refresh(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	categories, err := c.client.Categories(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch categories", "error", err)
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	c.logger.DebugContext(ctx, "Categories refreshed", "count", len(categories))
	return nil
}

// Categories returns a copy of the cached category list.
func (c *CategoryCache) Categories() []api.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// IDForName resolves a category name to its id against the cached set.
func (c *CategoryCache) IDForName(name string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat.ID, true
		}
	}
	return 0, false
}

// Loading reports whether a refresh is in flight.
func (c *CategoryCache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *CategoryCache) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
