package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/storage"
)

// AdapterRepository keeps all orders as one JSON array under model.OrdersKey
type AdapterRepository struct {
	mu      sync.Mutex
	adapter *storage.Adapter
}

func NewAdapterRepository(adapter *storage.Adapter) *AdapterRepository {
	return &AdapterRepository{adapter: adapter}
}

func (r *AdapterRepository) Save(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrOrderNotSaved, err)
	}

	if n := len(orders); n > 0 && order.ID <= orders[n-1].ID {
		order.ID = orders[n-1].ID + 1
	}
	orders = append(orders, *order)

	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", model.ErrOrderNotSaved, err)
	}
	if !r.adapter.Write(ctx, model.OrdersKey, string(data)) {
		return model.ErrOrderNotSaved
	}
	return nil
}

// List degrades to an empty list when the stored value is unreadable.
// A backend failure is returned.
func (r *AdapterRepository) List(ctx context.Context) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil && !errors.Is(err, model.ErrOrdersCorrupt) {
		return nil, err
	}
	if err != nil {
		logger.Warn("stored orders unreadable", map[string]interface{}{"error": err.Error()})
		return []model.Order{}, nil
	}
	return orders, nil
}

func (r *AdapterRepository) load(ctx context.Context) ([]model.Order, error) {
	raw, err := r.adapter.Get(ctx, model.OrdersKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && raw == "") {
		return []model.Order{}, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []model.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOrdersCorrupt, err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}
