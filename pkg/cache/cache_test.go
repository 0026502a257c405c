package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/offerdesk/pkg/cache"
)

type row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()

	require.NoError(t, c.Set(ctx, "orders", []row{{ID: 1, Name: "Paint fence"}}, 0))

	var got []row
	require.True(t, c.Get(ctx, "orders", &got))
	assert.Equal(t, []row{{ID: 1, Name: "Paint fence"}}, got)

	require.NoError(t, c.Del(ctx, "orders", "missing"))
	assert.False(t, c.Get(ctx, "orders", &got))
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()

	require.NoError(t, c.Set(ctx, "k", 1, time.Nanosecond))
	time.Sleep(time.Millisecond)

	var v int
	assert.False(t, c.Get(ctx, "k", &v))
}

func TestNopAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	var c cache.Store = cache.Nop{}

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	var v int
	assert.False(t, c.Get(ctx, "k", &v))
}

func TestNewDrivers(t *testing.T) {
	ctx := context.Background()

	s, err := cache.New(ctx, "none")
	require.NoError(t, err)
	assert.IsType(t, cache.Nop{}, s)

	s, err = cache.New(ctx, "memory")
	require.NoError(t, err)
	assert.IsType(t, &cache.Memory{}, s)

	_, err = cache.New(ctx, "memcached")
	assert.Error(t, err)
}
