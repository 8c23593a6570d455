package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), nil)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestClient_SetGetDelete(t *testing.T) {
	mr, c := newTestClient(t)
	ctx := context.Background()

	require.True(t, c.IsEnabled())
	require.NoError(t, c.Ping(ctx))

	require.NoError(t, c.Set(ctx, "auth:user:1", []byte(`{"id":1}`), time.Minute))
	got, err := c.Get(ctx, "auth:user:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(got))

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "auth:user:1")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	require.NoError(t, c.Set(ctx, "auth:user:2", []byte("x"), time.Minute))
	require.NoError(t, c.Delete(ctx, "auth:user:2"))
	_, err = c.Get(ctx, "auth:user:2")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestClient_ServerDown(t *testing.T) {
	mr, c := newTestClient(t)
	mr.Close()

	ctx := context.Background()
	assert.Error(t, c.Ping(ctx))

	_, err := c.Get(ctx, "auth:user:1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCacheMiss))
}

func TestDisabledClient(t *testing.T) {
	c := NewClient(Config{Enabled: false}, nil)
	ctx := context.Background()

	assert.False(t, c.IsEnabled())
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	_, err := c.Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrCacheMiss))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}
