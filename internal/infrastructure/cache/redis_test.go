package cache

import (
	"context"
	"testing"
	"time"

	"storefront-backend/pkg/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStoreFromClient(client, ttl), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:user:7", `[{"cantidad":1}]`))

	got, err := store.Get(ctx, "cart:user:7")
	require.NoError(t, err)
	assert.Equal(t, `[{"cantidad":1}]`, got)

	raw, err := mr.Get("cart:user:7")
	require.NoError(t, err)
	assert.Equal(t, got, raw)
}

func TestRedisStore_GetMiss(t *testing.T) {
	store, _ := setupTestRedis(t, 0)

	_, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	mr.Set("a", "1")
	mr.Set("b", "2")

	require.NoError(t, store.Delete(ctx, "a", "b", "missing"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	require.NoError(t, store.Delete(ctx))
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)

	require.NoError(t, store.Set(context.Background(), "discountActive", "true"))
	assert.Equal(t, time.Hour, mr.TTL("discountActive"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(context.Background(), "discountActive")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.Error(t, store.Ping(context.Background()))
}

func TestRedisStore_ThroughAdapter(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	adapter := storage.NewAdapter(store, 0).Namespace("device:abc:")
	ctx := context.Background()

	assert.True(t, adapter.Write(ctx, "cart:user:1", "[]"))

	value, ok := adapter.Read(ctx, "cart:user:1")
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	raw, err := store.Get(ctx, "device:abc:cart:user:1")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
