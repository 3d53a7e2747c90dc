package redis_test

import (
	"context"
	"testing"
	"time"

	"account-transfer-service/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_ReserveThenSet(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewIdempotencyStore(newClient(t, mr))
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	// in flight: nothing to replay, and nobody else may reserve
	val, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Nil(t, val)

	ok, err = store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "key-1", []byte(`{"id":"t1"}`), time.Hour))

	val, err = store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"t1"}`, string(val))

	ok, err = store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdempotencyStore_GetMissing(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewIdempotencyStore(newClient(t, mr))

	val, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestIdempotencyStore_Release(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewIdempotencyStore(newClient(t, mr))
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "key-2", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "key-2"))
	assert.False(t, mr.Exists("idempotency:key-2"))

	ok, err = store.Reserve(ctx, "key-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyStore_ReleaseKeepsCompletedResponse(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewIdempotencyStore(newClient(t, mr))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key-3", []byte("done"), time.Hour))
	require.NoError(t, store.Release(ctx, "key-3"))

	val, err := store.Get(ctx, "key-3")
	require.NoError(t, err)
	assert.Equal(t, "done", string(val))
}

func TestIdempotencyStore_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.NewIdempotencyStore(newClient(t, mr))
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "key-4", 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(11 * time.Second)

	ok, err = store.Reserve(ctx, "key-4", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}
