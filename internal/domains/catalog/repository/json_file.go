package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/pkg/logger"
)

// Repository loads the product catalog
type Repository interface {
	LoadAll(ctx context.Context) ([]model.Product, error)
}

// JSONFileRepository reads products from a JSON array on disk
type JSONFileRepository struct {
	path string
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{path: path}
}

// LoadAll returns every valid product in file order. Invalid entries are
// skipped with a warning; an unreadable file is an error.
func (r *JSONFileRepository) LoadAll(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}

	var raw []model.Product
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", r.path, err)
	}

	products := make([]model.Product, 0, len(raw))
	for i, p := range raw {
		if err := p.Validate(); err != nil {
			logger.Warn("skipping invalid catalog entry", map[string]interface{}{
				"index": i,
				"id":    p.ID,
				"error": err.Error(),
			})
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
