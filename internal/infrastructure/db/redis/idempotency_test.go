package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyKey(t *testing.T) {
	assert.Equal(t, "idem:tweet:7:abc", idempotencyKey(7, "abc"))
	assert.NotEqual(t, idempotencyKey(1, "k"), idempotencyKey(2, "k"))
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	s := NewIdempotencyStore(nil, 0)
	assert.Equal(t, DefaultIdempotencyTTL, s.ttl)
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestIdempotencyStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewIdempotencyStore(client, time.Minute)
	key := uuid.NewString()

	_, found, err := store.Lookup(ctx, 1, key)
	require.NoError(t, err)
	assert.False(t, found)

	winner, err := store.Remember(ctx, 1, key, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), winner)

	winner, err = store.Remember(ctx, 1, key, 43)
	require.NoError(t, err)
	assert.Equal(t, int64(42), winner, "second writer must see the first mapping")

	id, found, err := store.Lookup(ctx, 1, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(42), id)

	_, found, err = store.Lookup(ctx, 2, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, NewPinger(client).Ping(ctx))
}
