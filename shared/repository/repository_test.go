package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"lodge/infras/otel/mocks"
	"lodge/shared/dto"
	"lodge/shared/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type stayRow struct {
	ID        string  `db:"id"`
	CabinID   string  `db:"cabin_id"`
	Price     float64 `db:"price"`
	Ignored   string
	CabinName string `db:"cabin_name" table:"cabins" column:"name"`
	model.Metadata
}

func (stayRow) GetJoinQuery() string {
	return "LEFT JOIN cabins ON cabins.id = stays.cabin_id"
}

func newTestRepository() Repository[stayRow] {
	return NewRepository[stayRow]("stay", "stays", "id", nil, mocks.NewOtel())
}

func TestNewRepository(t *testing.T) {
	repo := newTestRepository()

	assert.Equal(t, []string{"id", "cabin_id", "price", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
	assert.Equal(t, "LEFT JOIN cabins ON cabins.id = stays.cabin_id", repo.join)
}

func TestSelectColumns(t *testing.T) {
	repo := newTestRepository()

	assert.Equal(t,
		"stays.id, stays.cabin_id, stays.price, cabins.name AS cabin_name, stays.created_at, stays.modified_at, stays.created_by, stays.modified_by",
		repo.selectColumns(),
	)
	assert.Equal(t, "stays.id, stays.price", repo.selectColumns("id", "price"))
}

func TestInsertQuery(t *testing.T) {
	repo := newTestRepository()

	assert.Equal(t,
		"INSERT INTO stays (id, cabin_id, price, created_at, modified_at, created_by, modified_by) VALUES (:id, :cabin_id, :price, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery(),
	)
}

func TestBuildWhereClause(t *testing.T) {
	repo := newTestRepository()

	where, args := repo.BuildWhereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(dto.And(dto.Filter{Field: "id", Value: "s-1", Operator: dto.FilterOperatorEq, Table: "stays"}))
	assert.Equal(t, " WHERE (stays.id = :id) ", where)
	assert.Equal(t, map[string]any{"id": "s-1"}, args)
}

func TestNoMatch(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "no rows", err: sql.ErrNoRows, expected: true},
		{name: "malformed uuid", err: &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}, expected: true},
		{name: "wrapped malformed uuid", err: fmt.Errorf("get cabin: %w", &pq.Error{Code: "22P02"}), expected: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, expected: false},
		{name: "connection error", err: errors.New("connection refused"), expected: false},
		{name: "nil", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, noMatch(tt.err))
		})
	}
}
