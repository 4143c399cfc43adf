package service

import (
	"context"
	"testing"

	"storefront-backend/internal/domains/identity/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	prev, next *model.Identity
}

func TestObserver_NotifiesOnChange(t *testing.T) {
	obs := NewObserver(nil)
	ctx := context.Background()
	var changes []change
	obs.Subscribe(func(_ context.Context, prev, next *model.Identity) {
		changes = append(changes, change{prev, next})
	})

	assert.True(t, obs.Login(ctx, &model.Identity{ID: 1, Email: "a@duoc.cl"}))
	assert.True(t, obs.Login(ctx, &model.Identity{ID: 2}))
	assert.True(t, obs.Logout(ctx))

	require.Len(t, changes, 3)
	assert.Nil(t, changes[0].prev)
	assert.Equal(t, int64(1), changes[0].next.ID)
	assert.Equal(t, int64(1), changes[1].prev.ID)
	assert.Equal(t, int64(2), changes[1].next.ID)
	assert.Nil(t, changes[2].next)
}

func TestObserver_SameUserIsSilent(t *testing.T) {
	obs := NewObserver(&model.Identity{ID: 1, Name: "Ana"})
	calls := 0
	obs.Subscribe(func(context.Context, *model.Identity, *model.Identity) { calls++ })

	notified := obs.Set(context.Background(), &model.Identity{ID: 1, Name: "Ana María"})

	assert.False(t, notified)
	assert.Equal(t, 0, calls)
	assert.Equal(t, "Ana María", obs.Current().Name)
	assert.True(t, obs.Logout(context.Background()))
	assert.False(t, obs.Logout(context.Background()), "guest to guest")
}

func TestObserver_Unsubscribe(t *testing.T) {
	obs := NewObserver(nil)
	var first, second int
	unsubscribe := obs.Subscribe(func(context.Context, *model.Identity, *model.Identity) { first++ })
	obs.Subscribe(func(context.Context, *model.Identity, *model.Identity) { second++ })

	unsubscribe()
	unsubscribe()
	obs.Login(context.Background(), &model.Identity{ID: 1})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestObserver_ListenerMayReadCurrent(t *testing.T) {
	obs := NewObserver(nil)
	var seen *model.Identity
	obs.Subscribe(func(context.Context, *model.Identity, *model.Identity) {
		seen = obs.Current()
	})

	obs.Login(context.Background(), &model.Identity{ID: 4})

	require.NotNil(t, seen)
	assert.Equal(t, int64(4), seen.ID)
}

func TestObserver_CurrentIsACopy(t *testing.T) {
	obs := NewObserver(&model.Identity{ID: 1, Email: "a@duoc.cl"})

	obs.Current().Email = "changed"

	assert.Equal(t, "a@duoc.cl", obs.Current().Email)
}
