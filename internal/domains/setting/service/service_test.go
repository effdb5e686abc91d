package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	otelMocks "lodge/infras/otel/mocks"
	settingMocks "lodge/internal/domains/setting/mocks"
	"lodge/internal/domains/setting/model"
	"lodge/internal/domains/setting/model/dto"
	"lodge/internal/domains/setting/service"
	"lodge/shared/cache"
	cacheMocks "lodge/shared/cache/mocks"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

func newService(t *testing.T) (service.Setting, *settingMocks.MockSetting, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 600

	repo := settingMocks.NewMockSetting(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	return service.New(repo, cfg, redisCache, otelMocks.NewOtel()), repo, redisCache
}

var stored = model.Setting{ID: model.SingletonID, MinBookingLength: 3, MaxBookingLength: 90, MaxGuestsPerBooking: 8, BreakfastPrice: 15}

func TestSettingService_Get(t *testing.T) {
	t.Run("loads and caches the row", func(t *testing.T) {
		svc, repo, redisCache := newService(t)

		redisCache.EXPECT().Get(gomock.Any(), "settings:current", gomock.Any()).Return(cache.ErrMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Setting, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, model.SingletonID, args["id"])

			return stored, nil
		})
		redisCache.EXPECT().Save(gomock.Any(), "settings:current", gomock.Any(), 600).Return(nil)

		res, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 8, res.MaxGuestsPerBooking)
		assert.Equal(t, 15.0, res.BreakfastPrice)
	})

	t.Run("cache outage still reads the row", func(t *testing.T) {
		svc, repo, redisCache := newService(t)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		res, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 90, res.MaxBookingLength)
	})

	t.Run("missing row", func(t *testing.T) {
		svc, repo, redisCache := newService(t)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Setting{}, nil)

		_, err := svc.Get(context.Background())

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestSettingService_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		svc, repo, redisCache := newService(t)

		guests := 10

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, 10, fields["max_guests_per_booking"])
			assert.NotContains(t, fields, "breakfast_price")

			return nil
		})
		redisCache.EXPECT().Clear(gomock.Any(), "settings:*").Return(nil).AnyTimes()

		err := svc.Update(context.Background(), dto.UpdateSettingRequest{MaxGuestsPerBooking: &guests})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("minimum longer than maximum", func(t *testing.T) {
		svc, repo, _ := newService(t)

		minLength := 120

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

		err := svc.Update(context.Background(), dto.UpdateSettingRequest{MinBookingLength: &minLength})

		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}
