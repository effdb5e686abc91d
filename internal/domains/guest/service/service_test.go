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
	"lodge/infras/countries"
	countriesMocks "lodge/infras/countries/mocks"
	otelMocks "lodge/infras/otel/mocks"
	guestMocks "lodge/internal/domains/guest/mocks"
	"lodge/internal/domains/guest/model"
	"lodge/internal/domains/guest/model/dto"
	"lodge/internal/domains/guest/service"
	"lodge/shared/cache"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

type fixture struct {
	repo      *guestMocks.MockGuest
	cache     *cacheMocks.MockRedisCache
	countries *countriesMocks.MockResolver
	svc       service.Guest
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:      guestMocks.NewMockGuest(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		countries: countriesMocks.NewMockResolver(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel(), f.countries)

	return f
}

func TestGuestService_Create(t *testing.T) {
	req := dto.CreateGuestRequest{
		FullName:    "  Jonas Schmedtmann ",
		Email:       " jonas@example.com",
		NationalID:  " 3525436 ",
		Nationality: "Portugal ",
	}

	t.Run("trims fields and stores the flag", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.countries.EXPECT().CountryCode(gomock.Any(), "Portugal").Return("pt", nil)
		f.countries.EXPECT().FlagURL("pt").Return("https://flagcdn.com/pt.svg")
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, guest model.Guest) error {
			assert.Equal(t, "Jonas Schmedtmann", guest.FullName)
			assert.Equal(t, "jonas@example.com", guest.Email)
			assert.Equal(t, "3525436", guest.NationalID)
			assert.Equal(t, "https://flagcdn.com/pt.svg", guest.CountryFlag)

			return nil
		})
		f.cache.EXPECT().Clear(gomock.Any(), "guests:*").Return(nil).AnyTimes()

		res, err := f.svc.Create(context.Background(), req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Portugal", res.Nationality)
	})

	t.Run("duplicate national ID", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "Guest already exists", failure.GetFields(err)["nationalID"])
	})

	t.Run("unknown country", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.countries.EXPECT().CountryCode(gomock.Any(), "Portugal").Return("", countries.ErrCountryNotFound)

		_, err := f.svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		assert.Equal(t, "Please, enter a valid country", failure.GetFields(err)["nationality"])
	})

	t.Run("countries API failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.countries.EXPECT().CountryCode(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))

		_, err := f.svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestGuestService_GetByNationalID(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "guests:national_id:3525436", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, value any) error {
				*value.(*dto.GuestResponse) = dto.GuestResponse{ID: "g1", NationalID: "3525436"}

				return nil
			})

		res, err := f.svc.GetByNationalID(context.Background(), "3525436")

		require.NoError(t, err)
		assert.Equal(t, "g1", res.ID)
	})

	t.Run("unknown guest", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		_, err := f.svc.GetByNationalID(context.Background(), "nobody")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGuestService_Update(t *testing.T) {
	current := model.Guest{ID: "g1", NationalID: "3525436", Nationality: "Portugal"}

	t.Run("new nationality resolves a new flag", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.countries.EXPECT().CountryCode(gomock.Any(), "Spain").Return("es", nil)
		f.countries.EXPECT().FlagURL("es").Return("https://flagcdn.com/es.svg")
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "Spain", fields[model.FieldNationality])
			assert.Equal(t, "https://flagcdn.com/es.svg", fields[model.FieldCountryFlag])
			assert.NotContains(t, fields, model.FieldNationalID)

			return nil
		})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
		err := f.svc.Update(ctx, dto.UpdateGuestRequest{Nationality: " Spain "}, "g1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("national ID taken by another guest", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "guests.id != :id")
			assert.Equal(t, "g1", args["id"])

			return true, nil
		})

		err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{NationalID: "999"}, "g1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("missing guest", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{FullName: "x"}, "g404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGuestService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := f.svc.Delete(context.Background(), "g404")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
