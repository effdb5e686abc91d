package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Setting=MockSettingService

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/setting/model"
	"lodge/internal/domains/setting/model/dto"
	"lodge/internal/domains/setting/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	messageNotFound      = "settings not found"
	messageBookingLength = "Minimum nights cannot exceed maximum nights"
)

type Setting interface {
	Get(ctx context.Context) (dto.SettingResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingRequest) error
}

type serviceImpl struct {
	repo  repository.Setting
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Setting, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Setting {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func singleton() gDto.FilterGroup {
	return gDto.And(gDto.Filter{
		Field:    model.FieldID,
		Value:    model.SingletonID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.SettingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Fetch(ctx, s.cache, shared.BuildCacheKey(constant.CacheResourceSettings, "current"), s.cfg.Cache.TTL,
		func(ctx context.Context) (dto.SettingResponse, error) {
			var res dto.SettingResponse

			current, err := s.current(ctx)
			if err != nil {
				return res, err
			}

			res.FromModel(current)

			return res, nil
		})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSettingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.current(ctx)
	if err != nil {
		return err
	}

	if !req.BookingLengthValid(current) {
		return failure.Unprocessable(messageBookingLength, map[string]string{"minBookingLength": messageBookingLength}) //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), singleton()); err != nil {
		log.Error().Err(err).Msg("failed to update settings")

		return fmt.Errorf("failed to update settings: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceSettings)
	}()

	return nil
}

func (s *serviceImpl) current(ctx context.Context) (model.Setting, error) {
	current, err := s.repo.Get(ctx, singleton())
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return current, fmt.Errorf("failed to get settings: %w", err)
	}

	if current.ID == 0 {
		return current, failure.NotFound(messageNotFound) //nolint:wrapcheck
	}

	return current, nil
}
