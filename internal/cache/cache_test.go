package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute).Err())

	got, err := c.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Empty(t, got, "noop cache never returns stored values")

	n, err := c.Del(ctx, "k").Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisResponseTreatsNilAsMiss(t *testing.T) {
	cmd := redis.NewStringCmd(context.Background(), "get", "missing")
	cmd.SetErr(redis.Nil)
	resp := redisResponse[string]{cmd: cmd, get: cmd.Result}

	assert.NoError(t, resp.Err())
	val, err := resp.Result()
	assert.NoError(t, err)
	assert.Empty(t, val)
}

func TestRedisResponsePropagatesErrors(t *testing.T) {
	boom := errors.New("connection refused")
	cmd := redis.NewStringCmd(context.Background(), "get", "k")
	cmd.SetErr(boom)
	resp := redisResponse[string]{cmd: cmd, get: cmd.Result}

	assert.ErrorIs(t, resp.Err(), boom)
	_, err := resp.Result()
	assert.ErrorIs(t, err, boom)
}
