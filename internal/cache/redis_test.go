package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pixel-market/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	value := testStruct{Name: "alice", Age: 30}
	require.NoError(t, cache.Set("user:alice", value, time.Minute))

	var got testStruct
	found, err := cache.Get("user:alice", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, value, got)
}

func TestGet_Miss(t *testing.T) {
	cache := setupTestCache(t)

	var got testStruct
	found, err := cache.Get("missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("entitlement:u1:1", true, time.Hour))
	require.NoError(t, cache.Invalidate("entitlement:u1:1"))

	var got bool
	found, err := cache.Get("entitlement:u1:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
