package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/pkg/logger"
)

// ListFilter narrows List; zero values match everything
type ListFilter struct {
	Query    string
	Category string
}

// Catalog keeps the product list in memory and serves lookups for the cart
type Catalog struct {
	repo repository.Repository

	mu       sync.RWMutex
	products []model.Product
	byID     map[int64]int
}

func NewCatalog(repo repository.Repository) *Catalog {
	return &Catalog{repo: repo, byID: map[int64]int{}}
}

// Reload replaces the in-memory catalog. On error the previous catalog stays.
func (c *Catalog) Reload(ctx context.Context) error {
	products, err := c.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[int64]int, len(products))
	unique := products[:0]
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			logger.Warn("duplicate product id in catalog", map[string]interface{}{"id": p.ID})
			continue
		}
		byID[p.ID] = len(unique)
		unique = append(unique, p)
	}

	c.mu.Lock()
	c.products = unique
	c.byID = byID
	c.mu.Unlock()

	logger.Info("catalog loaded", map[string]interface{}{"products": len(unique)})
	return nil
}

func (c *Catalog) List(ctx context.Context, filter ListFilter) []model.Product {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := strings.ToLower(strings.TrimSpace(filter.Category))

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Catalog) Get(ctx context.Context, id int64) (model.Product, error) {
	p, ok := c.Lookup(id)
	if !ok {
		return model.Product{}, fmt.Errorf("product %d: %w", id, model.ErrProductNotFound)
	}
	return p, nil
}

// Lookup returns the live entry of a product
func (c *Catalog) Lookup(id int64) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
