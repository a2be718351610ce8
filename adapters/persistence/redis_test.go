package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisResponseCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := NewRedisResponseCache(rdb, "github:repos:")
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "octo")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "octo", []byte(`[{"name":"a"}]`), time.Minute))
	assert.True(t, mr.Exists("github:repos:octo"))

	body, ok, err := cache.Get(ctx, "octo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"name":"a"}]`, string(body))

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "octo")
	require.NoError(t, err)
	assert.False(t, ok, "entry expires after the ttl")
}
