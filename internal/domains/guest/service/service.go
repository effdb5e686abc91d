package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Guest=MockGuestService

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lodge/config"
	"lodge/infras/countries"
	"lodge/infras/otel"
	"lodge/internal/domains/guest/model"
	"lodge/internal/domains/guest/model/dto"
	"lodge/internal/domains/guest/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gRepo "lodge/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheOperationGet        = "get"
	cacheOperationNationalID = "national_id"
	cacheOperationList       = "list"

	fieldNationalID  = "nationalID"
	fieldNationality = "nationality"

	messageNotFound       = "guest not found"
	messageAlreadyExists  = "Guest already exists"
	messageInvalidCountry = "Please, enter a valid country"
	messageHasBookings    = "guest still has bookings"
)

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGuestsResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	GetByNationalID(ctx context.Context, nationalID string) (dto.GuestResponse, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Guest
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	countries countries.Resolver
}

func New(repo repository.Guest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, countries countries.Resolver) Guest {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		countries: countries,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req.Trim()

	if err = s.ensureUnique(ctx, req.NationalID, constant.Empty); err != nil {
		return res, err
	}

	flag, err := s.countryFlag(ctx, req.Nationality)
	if err != nil {
		return res, err
	}

	guest := req.ToModel(user, flag)

	if err = s.repo.Insert(ctx, guest); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeUniqueViolation) {
			return res, alreadyExists()
		}

		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	res.FromModel(guest)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceGuests)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(constant.CacheResourceGuests, cacheOperationList, params, filter)

	return cache.Fetch(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GetGuestsResponse, error) {
		var res dto.GetGuestsResponse

		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count guests")

			return res, fmt.Errorf("failed to count guests: %w", err)
		}

		models, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get guests")

			return res, fmt.Errorf("failed to get guests: %w", err)
		}

		res.FromModels(models, total, params.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(constant.CacheResourceGuests, cacheOperationGet, id)

	return s.fetch(ctx, key, shared.FilterByID(id, model.FieldID, model.TableName))
}

// GetByNationalID finds the guest a booking is made for.
func (s *serviceImpl) GetByNationalID(ctx context.Context, nationalID string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByNationalID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(constant.CacheResourceGuests, cacheOperationNationalID, nationalID)

	return s.fetch(ctx, key, shared.FilterByID(nationalID, model.FieldNationalID, model.TableName))
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	req.Trim()

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return fmt.Errorf("failed to get guest: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(messageNotFound) //nolint:wrapcheck
	}

	if req.NationalID != constant.Empty && req.NationalID != current.NationalID {
		if err = s.ensureUnique(ctx, req.NationalID, id); err != nil {
			return err
		}
	}

	fields := shared.TransformFields(req, user)

	if req.Nationality != constant.Empty && req.Nationality != current.Nationality {
		flag, err := s.countryFlag(ctx, req.Nationality)
		if err != nil {
			return err
		}

		fields[model.FieldCountryFlag] = flag
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeUniqueViolation) {
			return alreadyExists()
		}

		log.Error().Err(err).Msg("failed to update guest")

		return fmt.Errorf("failed to update guest: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceGuests, constant.CacheResourceBookings)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if guest exists")

		return fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !exist {
		return failure.NotFound(messageNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict(messageHasBookings) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceGuests)
	}()

	return nil
}

func (s *serviceImpl) fetch(ctx context.Context, key cache.Key, filter gDto.FilterGroup) (dto.GuestResponse, error) {
	return cache.Fetch(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GuestResponse, error) {
		var res dto.GuestResponse

		guest, err := s.repo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get guest")

			return res, fmt.Errorf("failed to get guest: %w", err)
		}

		if guest.ID == constant.Empty {
			return res, failure.NotFound(messageNotFound) //nolint:wrapcheck
		}

		res.FromModel(guest)

		return res, nil
	})
}

// ensureUnique fails when another guest than exceptID holds nationalID.
func (s *serviceImpl) ensureUnique(ctx context.Context, nationalID, exceptID string) error {
	filter := shared.FilterByID(nationalID, model.FieldNationalID, model.TableName)
	if exceptID != constant.Empty {
		filter.Append(gDto.Filter{
			Field:    model.FieldID,
			Value:    exceptID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check guest national ID")

		return fmt.Errorf("failed to check guest national ID: %w", err)
	}

	if exist {
		return alreadyExists()
	}

	return nil
}

func (s *serviceImpl) countryFlag(ctx context.Context, nationality string) (string, error) {
	code, err := s.countries.CountryCode(ctx, nationality)
	if errors.Is(err, countries.ErrCountryNotFound) {
		return constant.Empty, failure.Unprocessable(messageInvalidCountry, map[string]string{fieldNationality: messageInvalidCountry}) //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to resolve country")

		return constant.Empty, fmt.Errorf("failed to resolve country: %w", err)
	}

	return s.countries.FlagURL(code), nil
}

func alreadyExists() error {
	return &failure.Failure{
		Code:    http.StatusConflict,
		Message: messageAlreadyExists,
		Fields:  map[string]string{fieldNationalID: messageAlreadyExists},
	}
}
