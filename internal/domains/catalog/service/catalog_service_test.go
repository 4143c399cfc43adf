package service

import (
	"context"
	"errors"
	"testing"

	"storefront-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LoadAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Teclado Mecánico", Category: "Periféricos", Price: decimal.NewFromInt(49990), StockQuantity: 15},
		{ID: 2, Name: "Mouse Gamer", Category: "Periféricos", Price: decimal.NewFromInt(29990), StockQuantity: 30},
		{ID: 3, Name: "Audífonos", Description: "Sonido 7.1", Category: "Audio", Price: decimal.NewFromInt(39990), StockQuantity: 8},
		{ID: 2, Name: "Duplicado", Price: decimal.NewFromInt(1), StockQuantity: 1},
	}
}

func loadedCatalog(t *testing.T) *Catalog {
	t.Helper()
	repo := &mockRepository{}
	repo.On("LoadAll", mock.Anything).Return(sampleProducts(), nil)
	c := NewCatalog(repo)
	require.NoError(t, c.Reload(context.Background()))
	return c
}

func TestCatalog_Lookup(t *testing.T) {
	c := loadedCatalog(t)

	p, ok := c.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "Mouse Gamer", p.Name, "first entry wins over a duplicate id")

	_, ok = c.Lookup(99)
	assert.False(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_Get(t *testing.T) {
	c := loadedCatalog(t)

	_, err := c.Get(context.Background(), 99)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalog_List(t *testing.T) {
	c := loadedCatalog(t)
	ctx := context.Background()

	assert.Len(t, c.List(ctx, ListFilter{}), 3)
	assert.Len(t, c.List(ctx, ListFilter{Category: "periféricos"}), 2)

	found := c.List(ctx, ListFilter{Query: "7.1"})
	require.Len(t, found, 1)
	assert.Equal(t, int64(3), found[0].ID)
}

func TestCatalog_ReloadFailureKeepsPrevious(t *testing.T) {
	repo := &mockRepository{}
	repo.On("LoadAll", mock.Anything).Return(sampleProducts(), nil).Once()
	repo.On("LoadAll", mock.Anything).Return(nil, errors.New("disk gone")).Once()
	c := NewCatalog(repo)
	ctx := context.Background()

	require.NoError(t, c.Reload(ctx))
	assert.Error(t, c.Reload(ctx))
	assert.Equal(t, 3, c.Len())
	repo.AssertExpectations(t)
}
