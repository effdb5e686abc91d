package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/kafka"
	kafkaMocks "lodge/infras/kafka/mocks"
	otelMocks "lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/service"
	"lodge/internal/domains/booking/stay"
	cabinMocks "lodge/internal/domains/cabin/mocks"
	cabinModel "lodge/internal/domains/cabin/model"
	guestMocks "lodge/internal/domains/guest/mocks"
	guestModel "lodge/internal/domains/guest/model"
	settingMocks "lodge/internal/domains/setting/mocks"
	settingDto "lodge/internal/domains/setting/model/dto"
	"lodge/shared/cache"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

type fixture struct {
	repo     *bookingMocks.MockBooking
	cabins   *cabinMocks.MockCabin
	guests   *guestMocks.MockGuest
	settings *settingMocks.MockSettingService
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
	svc      service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.App.Booking.DefaultMaxGuests = 10
	cfg.App.Booking.Currency = "eur"
	cfg.Kafka.Topic.Bookings = "lodge.bookings"

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		cabins:   cabinMocks.NewMockCabin(ctrl),
		guests:   guestMocks.NewMockGuest(ctrl),
		settings: settingMocks.NewMockSettingService(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.repo, f.cabins, f.guests, f.settings, cfg, f.cache, otelMocks.NewOtel(), f.kafka)

	return f
}

// day renders the date offset days from today as dd/mm/yyyy.
func day(offset int) string {
	return stay.Today(timezone.Now()).Time().AddDate(0, 0, offset).Format(stay.DateLayout)
}

func at(offset int) time.Time {
	return stay.Today(timezone.Now()).Time().AddDate(0, 0, offset)
}

func snapshotKey(cabinID string) string {
	return "bookings:cabin:" + cabinID + ":" + stay.Today(timezone.Now()).Time().Format(time.DateOnly)
}

var (
	guest = guestModel.Guest{ID: "g1", FullName: "Jonas Schmedtmann", Email: "jonas@example.com", NationalID: "3525436"}
	cabin = cabinModel.Cabin{ID: "c1", Name: "001", MaxCapacity: 4, RegularPrice: 100, Discount: 20}
)

func (f fixture) expectLookups(existing ...model.Booking) {
	f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest, nil)
	f.cabins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin, nil)
	f.settings.EXPECT().Get(gomock.Any()).Return(settingDto.SettingResponse{MaxGuestsPerBooking: 6}, nil)
	f.cache.EXPECT().Get(gomock.Any(), snapshotKey(cabin.ID), gomock.Any()).Return(cache.ErrMiss)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID, model.FieldCabinID, model.FieldStartDate, model.FieldEndDate).
		Return(existing, nil)
	f.cache.EXPECT().Save(gomock.Any(), snapshotKey(cabin.ID), gomock.Any(), 300).Return(nil)
}

// expectWarm allows the cabin snapshot to be refilled after a booking is stored.
func (f fixture) expectWarm() {
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), snapshotKey(cabin.ID), gomock.Any(), 300).Return(nil).AnyTimes()
}

func (f fixture) expectTransaction(overlap bool) {
	f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
		return fn(nil)
	})
	f.repo.EXPECT().LockCabin(gomock.Any(), gomock.Any(), cabin.ID).Return(nil)
	f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(overlap, nil)
}

func request() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		NationalID:   guest.NationalID,
		CabinID:      cabin.ID,
		StartDate:    day(10),
		EndDate:      day(13),
		NumGuests:    2,
		ExtrasPrice:  15,
		HasBreakfast: true,
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("prices and stores the booking", func(t *testing.T) {
		f := newFixture(t)

		f.expectLookups(model.Booking{ID: "b0", CabinID: cabin.ID, StartDate: at(7), EndDate: at(10)})
		f.expectTransaction(false)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			assert.Equal(t, "g1", booking.GuestID)
			assert.Equal(t, 3, booking.NumNights)
			assert.Equal(t, 360.0, booking.CabinPrice)
			assert.Equal(t, 375.0, booking.TotalPrice)
			assert.Equal(t, string(stay.StatusUnconfirmed), booking.Status)
			assert.True(t, at(10).Equal(booking.StartDate))
			assert.Equal(t, "staff-1", booking.CreatedBy)

			return nil
		})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "lodge.bookings", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, cabin.ID, messages[0].Key)
				assert.Equal(t, constant.EventBookingCreated, messages[0].Headers["event-type"])

				event, ok := messages[0].Value.(dto.Event)
				require.True(t, ok)
				assert.Equal(t, constant.EventBookingCreated, event.Type)
				assert.Equal(t, "EUR", event.Currency)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), "bookings:*").Return(nil).AnyTimes()
		f.expectWarm()

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
		res, err := f.svc.Create(ctx, request())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "001", res.CabinName)
		assert.Equal(t, "Jonas Schmedtmann", res.GuestName)
		assert.Equal(t, day(10), res.StartDate)
		assert.Equal(t, 375.0, res.TotalPrice)
	})

	t.Run("dates overlapping the snapshot", func(t *testing.T) {
		f := newFixture(t)

		f.expectLookups(model.Booking{ID: "b0", CabinID: cabin.ID, StartDate: at(12), EndDate: at(15)})

		_, err := f.svc.Create(context.Background(), request())

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		assert.Equal(t, map[string]string{
			"startDate": stay.MessageConflict,
			"endDate":   stay.MessageConflict,
		}, failure.GetFields(err))
	})

	t.Run("every invalid field is reported", func(t *testing.T) {
		f := newFixture(t)

		f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, nil)
		f.cabins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin, nil)
		f.settings.EXPECT().Get(gomock.Any()).Return(settingDto.SettingResponse{MaxGuestsPerBooking: 6}, nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := request()
		req.NumGuests = 7
		req.StartDate = day(-1)
		req.EndDate = "31/02/2024"

		_, err := f.svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, map[string]string{
			"nationalID": "Guest not found!",
			"numGuests":  "Max number of guests is 6",
			"startDate":  stay.MessageNotInPast,
			"endDate":    stay.MessageDateNotExist,
		}, failure.GetFields(err))
	})

	t.Run("unknown cabin still reports the other fields", func(t *testing.T) {
		f := newFixture(t)

		f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, nil)
		f.cabins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabinModel.Cabin{}, nil)
		f.settings.EXPECT().Get(gomock.Any()).Return(settingDto.SettingResponse{MaxGuestsPerBooking: 6}, nil)

		req := request()
		req.StartDate = day(-3)
		req.EndDate = "31/02/2030"
		req.NumGuests = 7

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		assert.Equal(t, map[string]string{
			"nationalID": "Guest not found!",
			"cabinID":    "Cabin not found",
			"numGuests":  "Max number of guests is 6",
			"startDate":  stay.MessageNotInPast,
			"endDate":    stay.MessageDateNotExist,
		}, failure.GetFields(err))
	})

	t.Run("unknown cabin with valid dates", func(t *testing.T) {
		f := newFixture(t)

		f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest, nil)
		f.cabins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabinModel.Cabin{}, nil)
		f.settings.EXPECT().Get(gomock.Any()).Return(settingDto.SettingResponse{MaxGuestsPerBooking: 6}, nil)

		_, err := f.svc.Create(context.Background(), request())

		assert.Equal(t, map[string]string{"cabinID": "Cabin not found"}, failure.GetFields(err))
	})

	t.Run("missing settings fall back to the configured maximum", func(t *testing.T) {
		f := newFixture(t)

		f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest, nil)
		f.cabins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabinModel.Cabin{ID: "c1", MaxCapacity: 20, RegularPrice: 100}, nil)
		f.settings.EXPECT().Get(gomock.Any()).Return(settingDto.SettingResponse{}, failure.NotFound("settings not found"))
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := request()
		req.NumGuests = 11

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, "Max number of guests is 10", failure.GetFields(err)["numGuests"])
	})

	t.Run("booking stored meanwhile by another request", func(t *testing.T) {
		f := newFixture(t)

		f.expectLookups()
		f.expectTransaction(true)

		_, err := f.svc.Create(context.Background(), request())

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		assert.Equal(t, stay.MessageConflict, failure.GetFields(err)["endDate"])
	})

	t.Run("event failure does not fail the booking", func(t *testing.T) {
		f := newFixture(t)

		f.expectLookups()
		f.expectTransaction(false)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.expectWarm()

		_, err := f.svc.Create(context.Background(), request())

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestBookingService_Create_WarmsCabinBookings(t *testing.T) {
	f := newFixture(t)

	f.expectLookups()
	f.expectTransaction(false)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	cleared := make(chan struct{})
	warmed := make(chan stay.Snapshot, 1)

	f.cache.EXPECT().Clear(gomock.Any(), "bookings:*").DoAndReturn(func(context.Context, string) error {
		close(cleared)

		return nil
	})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID, model.FieldCabinID, model.FieldStartDate, model.FieldEndDate).
		Return([]model.Booking{{ID: "b1", CabinID: cabin.ID, StartDate: at(10), EndDate: at(13)}}, nil)
	f.cache.EXPECT().Save(gomock.Any(), snapshotKey(cabin.ID), gomock.Any(), 300).DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
		select {
		case <-cleared:
		default:
			t.Error("snapshot stored before the booking caches were cleared")
		}

		snapshot, _ := value.(stay.Snapshot)
		warmed <- snapshot

		return nil
	})

	_, err := f.svc.Create(context.Background(), request())
	require.NoError(t, err)

	select {
	case snapshot := <-warmed:
		existing, ok := snapshot.For(cabin.ID)
		require.True(t, ok)
		assert.Len(t, existing, 1)
	case <-time.After(time.Second):
		t.Fatal("cabin bookings were not warmed")
	}
}

func TestBookingService_Quote(t *testing.T) {
	t.Run("priced when cabin and dates are known", func(t *testing.T) {
		f := newFixture(t)

		f.cabins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin, nil)
		f.cache.EXPECT().Get(gomock.Any(), snapshotKey(cabin.ID), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*stay.Snapshot) = stay.NewSnapshot(cabin.ID, nil)

			return nil
		})

		extras := 0.0

		res, err := f.svc.Quote(context.Background(), dto.QuoteBookingRequest{CabinID: cabin.ID, StartDate: day(1), EndDate: day(3), ExtrasPrice: &extras})

		require.NoError(t, err)
		assert.True(t, res.Valid)
		require.NotNil(t, res.NumNights)
		assert.Equal(t, 2, *res.NumNights)
		assert.Equal(t, 240.0, *res.TotalPrice)
	})

	t.Run("no cabin leaves prices unset but still validates dates", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Quote(context.Background(), dto.QuoteBookingRequest{StartDate: day(3), EndDate: day(3)})

		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Nil(t, res.TotalPrice)
		assert.Equal(t, stay.MessageDateRange, res.Errors["endDate"])
	})
}

func TestBookingService_FromCabin(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), snapshotKey("c2"), gomock.Any()).Return(cache.ErrMiss)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "bookings.end_date > :end_date")
			assert.Equal(t, "c2", args["cabin_id"])
			assert.Equal(t, "bookings.start_date", params.SortBy)

			return []model.Booking{
				{ID: "b1", CabinID: "c2", StartDate: at(0), EndDate: at(2)},
				{ID: "b2", CabinID: "c1", StartDate: at(0), EndDate: at(2)},
			}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), snapshotKey("c2"), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.FromCabin(context.Background(), "c2")

	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "b1", res.Bookings[0].ID)
}

func TestBookingService_Update(t *testing.T) {
	f := newFixture(t)

	paid := true
	status := string(stay.StatusCheckedIn)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, true, fields[model.FieldIsPaid])
		assert.Equal(t, "checked-in", fields[model.FieldStatus])
		assert.NotContains(t, fields, model.FieldObservations)

		return nil
	})
	f.cache.EXPECT().Clear(gomock.Any(), "bookings:*").Return(nil).AnyTimes()

	err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{IsPaid: &paid, Status: &status}, "b1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("publishes the deletion", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b1", CabinID: "c1", StartDate: at(1), EndDate: at(2)}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "lodge.bookings", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, messages ...kafka.Message) error {
				event, _ := messages[0].Value.(dto.Event)
				assert.Equal(t, constant.EventBookingDeleted, event.Type)
				assert.Equal(t, "b1", event.BookingID)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), "bookings:*").Return(nil).AnyTimes()

		err := f.svc.Delete(context.Background(), "b1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
