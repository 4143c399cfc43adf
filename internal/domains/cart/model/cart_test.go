package model

import (
	"testing"

	catalog "storefront-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price int64, stock int) catalog.Product {
	return catalog.Product{
		ID:            id,
		Name:          "Producto",
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
	}
}

func TestMaxQuantity(t *testing.T) {
	assert.Equal(t, 5, MaxQuantity(product(1, 10, 5)))
	assert.Equal(t, GlobalMax, MaxQuantity(product(1, 10, 5000)))
	assert.Equal(t, 0, MaxQuantity(product(1, 10, -3)))
}

func TestClampQuantity(t *testing.T) {
	p := product(1, 10, 5)

	tests := []struct {
		name string
		in   int
		want int
	}{
		{"within range", 3, 3},
		{"above stock", 9, 5},
		{"zero", 0, 1},
		{"negative", -4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampQuantity(tt.in, p))
		})
	}

	assert.Equal(t, 1, ClampQuantity(3, product(1, 10, 0)), "lower bound wins without stock")
	assert.Equal(t, GlobalMax, ClampQuantity(1_000_000, product(1, 10, 1_000_000)))
}

func TestSanitizeLine_StockDropped(t *testing.T) {
	stored := CartLine{Product: product(1, 1000, 5), Quantity: 5}
	live := product(1, 1000, 2)

	got := SanitizeLine(stored, live)

	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 2, got.Product.StockQuantity)
	assert.True(t, got.Product.Price.Equal(decimal.NewFromInt(1000)))
}

func TestSanitizeLine_NegativePrice(t *testing.T) {
	line := CartLine{Product: product(1, -50, 5), Quantity: 2}

	got := SanitizeLine(line, line.Product)

	assert.True(t, got.Product.Price.IsZero())
	assert.Equal(t, 2, got.Quantity)
}

func TestSanitizeLines(t *testing.T) {
	lines := []CartLine{
		{Product: product(1, 100, 10), Quantity: 4},
		{Product: product(0, 100, 10), Quantity: 1},
		{Product: product(2, 200, 3), Quantity: 7},
		{Product: product(1, 100, 10), Quantity: 8},
	}

	got := SanitizeLines(lines, nil)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].Product.ID)
	assert.Equal(t, 10, got[0].Quantity, "duplicates fold into the first line and clamp")
	assert.Equal(t, int64(2), got[1].Product.ID)
	assert.Equal(t, 3, got[1].Quantity)
}

func TestSanitizeLines_WithCatalog(t *testing.T) {
	live := map[int64]catalog.Product{1: product(1, 100, 2)}
	lookup := func(id int64) (catalog.Product, bool) {
		p, ok := live[id]
		return p, ok
	}
	lines := []CartLine{
		{Product: product(1, 100, 5), Quantity: 5},
		{Product: product(9, 100, 5), Quantity: 1},
	}

	got := SanitizeLines(lines, lookup)

	require.Len(t, got, 1, "product 9 left the catalog")
	assert.Equal(t, 2, got[0].Quantity)
}

func TestPlanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Scope
		to   Scope
		want Transition
	}{
		{
			name: "guest to guest",
			from: GuestScope(), to: GuestScope(),
			want: Transition{From: GuestScope(), To: GuestScope()},
		},
		{
			name: "login",
			from: GuestScope(), to: UserScope(7),
			want: Transition{From: GuestScope(), To: UserScope(7), LoadKey: "cart:user:7", Reset: true},
		},
		{
			name: "logout",
			from: UserScope(7), to: GuestScope(),
			want: Transition{From: UserScope(7), To: GuestScope(), DeleteKey: "cart:user:7", Reset: true},
		},
		{
			name: "same user",
			from: UserScope(7), to: UserScope(7),
			want: Transition{From: UserScope(7), To: UserScope(7), LoadKey: "cart:user:7", Reset: true},
		},
		{
			name: "account switch keeps the former cart",
			from: UserScope(7), to: UserScope(8),
			want: Transition{From: UserScope(7), To: UserScope(8), LoadKey: "cart:user:8", Reset: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanTransition(tt.from, tt.to))
		})
	}
}

func TestScope(t *testing.T) {
	var zero Scope
	assert.True(t, zero.IsGuest())
	assert.Empty(t, zero.Key())
	assert.Equal(t, "guest", zero.String())

	user := UserScope(42)
	id, ok := user.UserID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "cart:user:42", user.Key())
	assert.NotEqual(t, UserScope(4).Key(), UserScope(42).Key())
}

func TestLineSubtotal(t *testing.T) {
	assert.True(t, CartLine{Product: product(1, 1000, 5), Quantity: 3}.Subtotal().Equal(decimal.NewFromInt(3000)))
	assert.True(t, CartLine{Product: product(1, -1000, 5), Quantity: 3}.Subtotal().IsZero())
	assert.True(t, CartLine{Product: product(1, 1000, 5), Quantity: 0}.Subtotal().Equal(decimal.NewFromInt(1000)))
}
