package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"time"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	"lodge/internal/domains/booking/stay"
	cabinModel "lodge/internal/domains/cabin/model"
	cabinRepo "lodge/internal/domains/cabin/repository"
	guestModel "lodge/internal/domains/guest/model"
	guestRepo "lodge/internal/domains/guest/repository"
	settingService "lodge/internal/domains/setting/service"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheOperationGet   = "get"
	cacheOperationList  = "list"
	cacheOperationCabin = "cabin"

	eventTypeHeader = "event-type"

	fieldNationalID = "nationalID"
	fieldCabinID    = "cabinID"
	fieldNumGuests  = "numGuests"

	messageNotFound      = "booking not found"
	messageInvalid       = "Booking could not be created"
	messageGuestNotFound = "Guest not found!"
	messageCabinNotFound = "Cabin not found"
)

var errOverlap = errors.New("booking overlaps an existing booking")

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Quote(ctx context.Context, req dto.QuoteBookingRequest) (dto.QuoteResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	FromCabin(ctx context.Context, cabinID string) (dto.CabinBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	cabins   cabinRepo.Cabin
	guests   guestRepo.Guest
	settings settingService.Setting
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
}

func New(
	repo repository.Booking,
	cabins cabinRepo.Cabin,
	guests guestRepo.Guest,
	settings settingService.Setting,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:     repo,
		cabins:   cabins,
		guests:   guests,
		settings: settings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
	}
}

// Create validates the form against the cabin's current bookings and inserts it. Every failing
// field is reported at once.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	fields := map[string]string{}

	guest, err := s.guests.Get(ctx, shared.FilterByID(req.NationalID, guestModel.FieldNationalID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		fields[fieldNationalID] = messageGuestNotFound
	}

	cabin, err := s.cabins.Get(ctx, shared.FilterByID(req.CabinID, cabinModel.FieldID, cabinModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cabin")

		return res, fmt.Errorf("failed to get cabin: %w", err)
	}

	maxGuests, err := s.maxGuests(ctx)
	if err != nil {
		return res, err
	}

	switch {
	case req.NumGuests > maxGuests:
		fields[fieldNumGuests] = fmt.Sprintf("Max number of guests is %d", maxGuests)
	case cabin.ID != constant.Empty && req.NumGuests > cabin.MaxCapacity:
		fields[fieldNumGuests] = fmt.Sprintf("Cabin holds at most %d guests", cabin.MaxCapacity)
	}

	// Without a cabin there is nothing to price or overlap, but the dates are still checked.
	if cabin.ID == constant.Empty {
		fields[fieldCabinID] = messageCabinNotFound

		report := stay.Validate(stay.Input{StartDate: req.StartDate, EndDate: req.EndDate}, timezone.Now())
		maps.Copy(fields, report.Errors())

		return res, failure.Unprocessable(messageInvalid, fields) //nolint:wrapcheck
	}

	existing, err := s.existing(ctx, cabin.ID)
	if err != nil {
		return res, err
	}

	record, report, err := stay.BuildRecord(req.Form(), guest.ID, cabin.Rate(), existing, timezone.Now())
	if err != nil && !errors.Is(err, stay.ErrValidation) {
		return res, fmt.Errorf("failed to build booking: %w", err)
	}

	maps.Copy(fields, report.Errors())

	if len(fields) > 0 {
		return res, failure.Unprocessable(messageInvalid, fields) //nolint:wrapcheck
	}

	booking, err := dto.ToModel(record, user)
	if err != nil {
		return res, fmt.Errorf("failed to build booking: %w", err)
	}

	if err = s.insert(ctx, booking); err != nil {
		if errors.Is(err, errOverlap) {
			return res, failure.Unprocessable(stay.MessageConflict, map[string]string{ //nolint:wrapcheck
				string(stay.FieldStartDate): stay.MessageConflict,
				string(stay.FieldEndDate):   stay.MessageConflict,
			})
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CabinName = cabin.Name
	booking.GuestName = guest.FullName
	booking.GuestEmail = guest.Email

	res.FromModel(booking)

	go func() {
		ctx := context.WithoutCancel(ctx)

		shared.InvalidateCaches(ctx, s.cache, constant.CacheResourceBookings)
		s.warm(ctx, booking.CabinID)
	}()

	s.publish(ctx, constant.EventBookingCreated, booking)

	return res, nil
}

// insert re-checks the overlap under a per-cabin lock so two concurrent requests cannot both
// book the same nights.
func (s *serviceImpl) insert(ctx context.Context, booking model.Booking) error {
	return s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.LockCabin(ctx, tx, booking.CabinID); err != nil {
			return err //nolint:wrapcheck
		}

		overlap, err := s.repo.ExistTx(ctx, tx, repository.Overlapping(booking.CabinID, booking.StartDate, booking.EndDate))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if overlap {
			return errOverlap
		}

		return s.repo.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
}

// Quote evaluates the date rules and the price of a partially filled form without storing it.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteBookingRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		rate     *stay.CabinRate
		existing []stay.ExistingBooking
	)

	if req.CabinID != constant.Empty {
		cabin, err := s.cabins.Get(ctx, shared.FilterByID(req.CabinID, cabinModel.FieldID, cabinModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get cabin")

			return res, fmt.Errorf("failed to get cabin: %w", err)
		}

		if cabin.ID != constant.Empty {
			cabinRate := cabin.Rate()
			rate = &cabinRate

			if existing, err = s.existing(ctx, cabin.ID); err != nil {
				return res, err
			}
		}
	}

	report := stay.Validate(stay.Input{StartDate: req.StartDate, EndDate: req.EndDate, Existing: existing}, timezone.Now())
	pricing, priced := stay.TryDerivePricing(rate, req.StartDate, req.EndDate, req.ExtrasPrice)

	res.FromReport(report, pricing, priced)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(constant.CacheResourceBookings, cacheOperationList, params, filter)

	return cache.Fetch(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GetBookingsResponse, error) {
		var res dto.GetBookingsResponse

		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count bookings")

			return res, fmt.Errorf("failed to count bookings: %w", err)
		}

		models, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get bookings")

			return res, fmt.Errorf("failed to get bookings: %w", err)
		}

		res.FromModels(models, total, params.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(constant.CacheResourceBookings, cacheOperationGet, id)

	return cache.Fetch(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (dto.BookingResponse, error) {
		var res dto.BookingResponse

		booking, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		return res, nil
	})
}

// FromCabin lists the bookings of a cabin that have not ended before today.
func (s *serviceImpl) FromCabin(ctx context.Context, cabinID string) (res dto.CabinBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FromCabin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	existing, err := s.existing(ctx, cabinID)
	if err != nil {
		return res, err
	}

	return dto.CabinBookingsResponse{CabinID: cabinID, Bookings: existing}, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceBookings)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceBookings)
	}()

	s.publish(ctx, constant.EventBookingDeleted, booking)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(messageNotFound) //nolint:wrapcheck
	}

	return booking, nil
}

// existing returns the cabin's snapshot for today. The snapshot is cached per cabin and day, so
// selecting another cabin always reads a different snapshot.
func (s *serviceImpl) existing(ctx context.Context, cabinID string) ([]stay.ExistingBooking, error) {
	today := stay.Today(timezone.Now())

	snapshot, err := cache.Fetch(ctx, s.cache, snapshotKey(cabinID, today), s.cfg.Cache.TTL, s.loadSnapshot(cabinID, today))
	if err != nil {
		return nil, err
	}

	existing, ok := snapshot.For(cabinID)
	if !ok {
		return nil, failure.InternalError(fmt.Errorf("snapshot of cabin %s holds cabin %s", cabinID, snapshot.CabinID)) //nolint:wrapcheck
	}

	return existing, nil
}

// warm stores a fresh snapshot of the cabin's bookings after the booking caches were dropped.
func (s *serviceImpl) warm(ctx context.Context, cabinID string) {
	today := stay.Today(timezone.Now())

	if err := cache.Prefetch(ctx, s.cache, snapshotKey(cabinID, today), s.cfg.Cache.TTL, s.loadSnapshot(cabinID, today)); err != nil {
		log.Warn().Err(err).Str("cabin", cabinID).Msg("failed to warm cabin bookings")
	}
}

func (s *serviceImpl) loadSnapshot(cabinID string, today stay.Date) func(ctx context.Context) (stay.Snapshot, error) {
	return func(ctx context.Context) (stay.Snapshot, error) {
		filter := gDto.And(
			gDto.Filter{Field: model.FieldCabinID, Value: cabinID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDate, Value: today.Time(), Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		)
		params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldStartDate, SortDir: gDto.SortDirAsc}

		bookings, err := s.repo.GetAll(ctx, params, filter, model.FieldID, model.FieldCabinID, model.FieldStartDate, model.FieldEndDate)
		if err != nil {
			log.Error().Err(err).Str("cabin", cabinID).Msg("failed to get cabin bookings")

			return stay.Snapshot{}, fmt.Errorf("failed to get cabin bookings: %w", err)
		}

		existing := make([]stay.ExistingBooking, len(bookings))
		for i, booking := range bookings {
			existing[i] = booking.Existing()
		}

		return stay.NewSnapshot(cabinID, existing), nil
	}
}

func snapshotKey(cabinID string, today stay.Date) cache.Key {
	return shared.BuildCacheKey(constant.CacheResourceBookings, cacheOperationCabin, cabinID, today.Time().Format(time.DateOnly))
}

func (s *serviceImpl) maxGuests(ctx context.Context) (int, error) {
	settings, err := s.settings.Get(ctx)
	if failure.GetCode(err) == http.StatusNotFound {
		return s.cfg.App.Booking.DefaultMaxGuests, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings.MaxGuestsPerBooking, nil
}

// publish announces a booking change. Delivery failures are logged and never undo the change.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	event := dto.NewEvent(eventType, booking, s.cfg.App.Booking.Currency)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.Bookings, kafka.Message{
		Key:     booking.CabinID,
		Value:   event,
		Headers: map[string]string{eventTypeHeader: eventType},
	})
	if err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Str("event", eventType).Msg("failed to publish booking event")
	}
}
