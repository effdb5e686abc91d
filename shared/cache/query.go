package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const keySeparator = ":"

// Key addresses one cached query result. Keys that share a Resource are invalidated together.
type Key struct {
	Resource string
	Params   []string
}

func NewKey(resource string, params ...string) Key {
	return Key{Resource: resource, Params: params}
}

func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Resource
	}

	return k.Resource + keySeparator + strings.Join(k.Params, keySeparator)
}

// Fetch returns the value cached under key, or calls load and caches its result for ttl seconds.
// Cache failures never fail the call; only load errors are returned.
func Fetch[T any](ctx context.Context, c RedisCache, key Key, ttl int, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	err := c.Get(ctx, key.String(), &cached)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, ErrMiss) {
		log.Warn().Err(err).Str("key", key.String()).Msg("failed to read cache, loading from source")
	}

	value, err := load(ctx)
	if err != nil {
		var zero T

		return zero, err
	}

	if err := c.Save(ctx, key.String(), value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("failed to write cache")
	}

	return value, nil
}

// Prefetch loads and stores the value under key ahead of the first read.
func Prefetch[T any](ctx context.Context, c RedisCache, key Key, ttl int, load func(ctx context.Context) (T, error)) error {
	value, err := load(ctx)
	if err != nil {
		return fmt.Errorf("failed to prefetch %s: %w", key, err)
	}

	if err := c.Save(ctx, key.String(), value, ttl); err != nil {
		return fmt.Errorf("failed to prefetch %s: %w", key, err)
	}

	return nil
}

// Invalidate drops every cached query of the given resources.
func Invalidate(ctx context.Context, c RedisCache, resources ...string) error {
	errs := make([]error, 0, len(resources))

	for _, resource := range resources {
		if err := c.Clear(ctx, resource+keySeparator+"*"); err != nil {
			errs = append(errs, fmt.Errorf("failed to invalidate %s: %w", resource, err))
		}
	}

	return errors.Join(errs...)
}
