// Package cache provides a small key/value cache used for memoizing
// expensive lookups such as AI relation scores.
package cache

import (
	"context"
	"time"
)

// Response is the deferred result of a cache command. A missing key is not
// an error: Result returns the zero value and a nil error.
type Response[T any] interface {
	Err() error
	Result() (T, error)
}

// Cache is the subset of key/value operations the services rely on
type Cache interface {
	Get(ctx context.Context, key string) Response[string]
	Set(ctx context.Context, key string, value any, expiration time.Duration) Response[string]
	Del(ctx context.Context, keys ...string) Response[int64]
}

type staticResponse[T any] struct {
	value T
}

func (r staticResponse[T]) Err() error         { return nil }
func (r staticResponse[T]) Result() (T, error) { return r.value, nil }

// Noop is a Cache that stores nothing. Used when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) Response[string] {
	return staticResponse[string]{}
}

func (Noop) Set(context.Context, string, any, time.Duration) Response[string] {
	return staticResponse[string]{value: "OK"}
}

func (Noop) Del(context.Context, ...string) Response[int64] {
	return staticResponse[int64]{}
}
