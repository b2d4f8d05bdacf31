package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the redis connection
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis is a Cache backed by a redis server
type Redis struct {
	client *redis.Client
}

type redisResponse[T any] struct {
	cmd redis.Cmder
	get func() (T, error)
}

func (r redisResponse[T]) Err() error {
	err := r.cmd.Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (r redisResponse[T]) Result() (T, error) {
	res, err := r.get()
	if errors.Is(err, redis.Nil) {
		var zero T
		return zero, nil
	}
	return res, err
}

// NewRedis connects to redis and pings it once
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return &Redis{client: client}, nil
}

func (c *Redis) Get(ctx context.Context, key string) Response[string] {
	cmd := c.client.Get(ctx, key)
	return redisResponse[string]{cmd: cmd, get: cmd.Result}
}

func (c *Redis) Set(ctx context.Context, key string, value any, expiration time.Duration) Response[string] {
	cmd := c.client.Set(ctx, key, value, expiration)
	return redisResponse[string]{cmd: cmd, get: cmd.Result}
}

func (c *Redis) Del(ctx context.Context, keys ...string) Response[int64] {
	cmd := c.client.Del(ctx, keys...)
	return redisResponse[int64]{cmd: cmd, get: cmd.Result}
}

// Ping checks the connection, for health reporting
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (c *Redis) Close() error {
	return c.client.Close()
}
