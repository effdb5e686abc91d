package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
)

const lockCabinQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	LockCabin(ctx context.Context, tx *sqlx.Tx, cabinID string) error
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// LockCabin serializes booking writes of one cabin until tx ends, so the overlap check and the
// insert that follows it see the same bookings.
func (r *repositoryImpl) LockCabin(ctx context.Context, tx *sqlx.Tx, cabinID string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.LockCabin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockCabinQuery)

	if _, err = tx.ExecContext(ctx, lockCabinQuery, cabinID); err != nil {
		return fmt.Errorf("failed to lock cabin bookings: %w", err)
	}

	return nil
}

// Overlapping matches the bookings of cabinID that share at least one night with [start, end).
func Overlapping(cabinID string, start, end any) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: model.FieldCabinID, Value: cabinID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{ArgName: "candidate_end", Field: model.FieldStartDate, Value: end, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{ArgName: "candidate_start", Field: model.FieldEndDate, Value: start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)
}
