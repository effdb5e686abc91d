package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/cabin/model"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"
)

type Cabin interface {
	Insert(ctx context.Context, model model.Cabin) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Cabin, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Cabin, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Cabin]
}

func New(db *postgres.Connection, otel otel.Otel) Cabin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Cabin](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
