package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Cabin=MockCabinService

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/s3"
	"lodge/internal/domains/cabin/model"
	"lodge/internal/domains/cabin/model/dto"
	"lodge/internal/domains/cabin/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gRepo "lodge/shared/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheOperationGet  = "get"
	cacheOperationList = "list"

	messageNotFound       = "cabin not found"
	messageDiscountTooBig = "Discount should be less than regular price"
	messageHasBookings    = "cabin still has bookings"
)

type Cabin interface {
	Create(ctx context.Context, req dto.CreateCabinRequest) (dto.CabinResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCabinsResponse, error)
	Get(ctx context.Context, id string) (dto.CabinResponse, error)
	Update(ctx context.Context, req dto.UpdateCabinRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Cabin
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Cabin, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Cabin {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCabinRequest) (res dto.CabinResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, objectName, err := s.upload(ctx, req.Image, req.ImageFile)
	if err != nil {
		return res, err
	}

	cabin := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, cabin); err != nil {
		log.Error().Err(err).Msg("failed to create cabin")

		s.removeImage(ctx, objectName)

		return res, fmt.Errorf("failed to create cabin: %w", err)
	}

	res.FromModel(cabin)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceCabins)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCabinsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(constant.CacheResourceCabins, cacheOperationList, params, filter)

	return cache.Fetch(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GetCabinsResponse, error) {
		var res dto.GetCabinsResponse

		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count cabins")

			return res, fmt.Errorf("failed to count cabins: %w", err)
		}

		models, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get cabins")

			return res, fmt.Errorf("failed to get cabins: %w", err)
		}

		res.FromModels(models, total, params.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CabinResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(constant.CacheResourceCabins, cacheOperationGet, id)

	return cache.Fetch(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (dto.CabinResponse, error) {
		var res dto.CabinResponse

		cabin, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(cabin)

		return res, nil
	})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCabinRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !req.DiscountWithin(current) {
		return failure.Unprocessable(messageDiscountTooBig, map[string]string{"discount": messageDiscountTooBig}) //nolint:wrapcheck
	}

	imageURL, objectName, err := s.upload(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	fields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		fields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update cabin")

		s.removeImage(ctx, objectName)

		return fmt.Errorf("failed to update cabin: %w", err)
	}

	if imageURL != constant.Empty {
		s.removeImage(ctx, s.s3.ObjectNameFromURL(current.Image))
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceCabins)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict(messageHasBookings) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete cabin")

		return fmt.Errorf("failed to delete cabin: %w", err)
	}

	s.removeImage(ctx, s.s3.ObjectNameFromURL(current.Image))

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheResourceCabins, constant.CacheResourceBookings)
	}()

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Cabin, error) {
	cabin, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cabin")

		return cabin, fmt.Errorf("failed to get cabin: %w", err)
	}

	if cabin.ID == constant.Empty {
		return cabin, failure.NotFound(messageNotFound) //nolint:wrapcheck
	}

	return cabin, nil
}

// upload stores the image under a random name keeping its extension. Without an image it
// returns empty values.
func (s *serviceImpl) upload(ctx context.Context, header *multipart.FileHeader, file multipart.File) (url, objectName string, err error) {
	if header == nil || file == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = uuid.NewString() + path.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, constant.StorageDirectoryCabins, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload cabin image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, constant.StorageDirectoryCabins, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to remove cabin image")
	}
}
