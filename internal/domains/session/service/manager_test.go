package service

import (
	"context"
	"testing"
	"time"

	catalog "storefront-backend/internal/domains/catalog/model"
	identity "storefront-backend/internal/domains/identity/model"
	pricingService "storefront-backend/internal/domains/pricing/service"
	memstore "storefront-backend/internal/infrastructure/storage"
	"storefront-backend/pkg/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newManager(t *testing.T) (*Manager, *memstore.MemoryStore, *clock) {
	t.Helper()
	backend := memstore.NewMemoryStore()
	m := NewManager(storage.NewAdapter(backend, 0), nil, pricingService.NewEligibility(nil), time.Minute)
	c := &clock{t: time.Date(2025, 11, 14, 17, 30, 0, 0, time.UTC)}
	m.now = c.now
	return m, backend, c
}

func keyboard() catalog.Product {
	return catalog.Product{ID: 1, Name: "Teclado", Price: decimal.NewFromInt(1000), StockQuantity: 5}
}

func TestManager_GetReusesSession(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	a := m.Get(ctx, "a")
	assert.Same(t, a, m.Get(ctx, "a"))
	assert.NotSame(t, a, m.Get(ctx, "b"))
	assert.Equal(t, 2, m.Len())
}

func TestManager_DevicesAreIsolated(t *testing.T) {
	m, backend, _ := newManager(t)
	ctx := context.Background()
	a := m.Get(ctx, "a")
	b := m.Get(ctx, "b")

	a.Identity.Login(ctx, &identity.Identity{ID: 1, Email: "ana@duoc.cl"})
	b.Identity.Login(ctx, &identity.Identity{ID: 1, Email: "ana@duoc.cl"})
	a.Cart.AddItem(ctx, keyboard())
	a.Toggle.SetActive(ctx, true)

	_, err := backend.Get(ctx, "device:a:cart:user:1")
	require.NoError(t, err)
	_, err = backend.Get(ctx, "device:b:cart:user:1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.False(t, b.Toggle.Active())
	assert.Equal(t, 0, b.Cart.Count())
}

func TestManager_SessionPricesWithDiscount(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()
	s := m.Get(ctx, "a")

	s.Identity.Login(ctx, &identity.Identity{ID: 1, Email: "ana@duoc.cl"})
	s.Cart.AddItem(ctx, keyboard())
	s.Toggle.SetActive(ctx, true)

	assert.True(t, s.Pricing.Snapshot().FinalTotal.Equal(decimal.NewFromInt(800)))
}

func TestManager_SweepEvictsIdleSessions(t *testing.T) {
	m, _, c := newManager(t)
	ctx := context.Background()
	old := m.Get(ctx, "old")
	old.Identity.Login(ctx, &identity.Identity{ID: 3})
	old.Cart.AddItem(ctx, keyboard())

	c.t = c.t.Add(45 * time.Second)
	m.Get(ctx, "fresh")
	c.t = c.t.Add(30 * time.Second)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	revived := m.Get(ctx, "old")
	assert.NotSame(t, old, revived)
	assert.True(t, revived.Cart.Scope().IsGuest(), "identity comes back with the next request")

	revived.Identity.Login(ctx, &identity.Identity{ID: 3})
	assert.Equal(t, 1, revived.Cart.Count(), "persisted cart survives eviction")
}

func TestManager_RunStopsWithContext(t *testing.T) {
	m, _, _ := newManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestManager_SweepSkipsBusySession(t *testing.T) {
	m, _, c := newManager(t)
	ctx := context.Background()
	busy := m.Get(ctx, "busy")
	busy.Lock()

	c.t = c.t.Add(2 * time.Minute)
	assert.Equal(t, 0, m.Sweep())
	assert.Same(t, busy, m.Get(ctx, "busy"))

	busy.Unlock()
	c.t = c.t.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, m.Len())
}

func TestManager_EvictsLeastRecentlyUsedAtCapacity(t *testing.T) {
	m, _, c := newManager(t)
	m.SetMaxSessions(2)
	ctx := context.Background()

	m.Get(ctx, "a")
	c.t = c.t.Add(time.Second)
	m.Get(ctx, "b")
	c.t = c.t.Add(time.Second)
	m.Get(ctx, "a")
	c.t = c.t.Add(time.Second)
	m.Get(ctx, "c")

	assert.Equal(t, 2, m.Len())
	m.mu.Lock()
	_, hasA := m.sessions["a"]
	_, hasB := m.sessions["b"]
	m.mu.Unlock()
	assert.True(t, hasA)
	assert.False(t, hasB)
}
