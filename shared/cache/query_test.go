package cache_test

import (
	"context"
	"errors"
	"testing"

	"lodge/shared/cache"
	"lodge/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name     string
		key      cache.Key
		expected string
	}{
		{name: "resource only", key: cache.NewKey("settings"), expected: "settings"},
		{name: "with params", key: cache.NewKey("bookings", "cabin", "c-1", "2024-05-01"), expected: "bookings:cabin:c-1:2024-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.String())
		})
	}
}

func TestFetch(t *testing.T) {
	key := cache.NewKey("cabins", "get", "c-1")

	t.Run("cache hit skips load", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		redisCache := mocks.NewMockRedisCache(ctrl)
		redisCache.EXPECT().Get(gomock.Any(), "cabins:get:c-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*[]string)) = []string{"cached"}

				return nil
			})

		got, err := cache.Fetch(context.Background(), redisCache, key, 60, func(context.Context) ([]string, error) {
			t.Fatal("load must not be called on a hit")

			return nil, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"cached"}, got)
	})

	t.Run("cache miss loads and saves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		redisCache := mocks.NewMockRedisCache(ctrl)
		redisCache.EXPECT().Get(gomock.Any(), "cabins:get:c-1", gomock.Any()).Return(cache.ErrMiss)
		redisCache.EXPECT().Save(gomock.Any(), "cabins:get:c-1", []string{"fresh"}, 60).Return(nil)

		got, err := cache.Fetch(context.Background(), redisCache, key, 60, func(context.Context) ([]string, error) {
			return []string{"fresh"}, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"fresh"}, got)
	})

	t.Run("cache failure still loads", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		redisCache := mocks.NewMockRedisCache(ctrl)
		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
		redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		got, err := cache.Fetch(context.Background(), redisCache, key, 60, func(context.Context) (int, error) {
			return 7, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	t.Run("load error is returned and not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		loadErr := errors.New("db down")

		redisCache := mocks.NewMockRedisCache(ctrl)
		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)

		_, err := cache.Fetch(context.Background(), redisCache, key, 60, func(context.Context) (int, error) {
			return 0, loadErr
		})

		assert.ErrorIs(t, err, loadErr)
	})
}

func TestPrefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Save(gomock.Any(), "settings", map[string]int{"maxGuestsPerBooking": 8}, 30).Return(nil)

	err := cache.Prefetch(context.Background(), redisCache, cache.NewKey("settings"), 30, func(context.Context) (map[string]int, error) {
		return map[string]int{"maxGuestsPerBooking": 8}, nil
	})

	assert.NoError(t, err)
}

func TestInvalidate(t *testing.T) {
	t.Run("clears every resource", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		redisCache := mocks.NewMockRedisCache(ctrl)
		redisCache.EXPECT().Clear(gomock.Any(), "bookings:*").Return(nil)
		redisCache.EXPECT().Clear(gomock.Any(), "guests:*").Return(nil)

		assert.NoError(t, cache.Invalidate(context.Background(), redisCache, "bookings", "guests"))
	})

	t.Run("keeps going after a failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		clearErr := errors.New("timeout")

		redisCache := mocks.NewMockRedisCache(ctrl)
		redisCache.EXPECT().Clear(gomock.Any(), "bookings:*").Return(clearErr)
		redisCache.EXPECT().Clear(gomock.Any(), "cabins:*").Return(nil)

		err := cache.Invalidate(context.Background(), redisCache, "bookings", "cabins")

		assert.ErrorIs(t, err, clearErr)
	})
}
