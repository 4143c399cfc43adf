package repository

import (
	"context"

	"storefront-backend/internal/domains/order/model"
)

type Repository interface {
	// Save appends order, adjusting its ID when it collides with the last one
	Save(ctx context.Context, order *model.Order) error

	// List returns every order in placement order
	List(ctx context.Context) ([]model.Order, error)
}
