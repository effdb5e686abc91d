package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lodge/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusBadRequest, Message: "invalid cabin"}

	assert.Equal(t, "invalid cabin", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad body")), expectedCode: http.StatusBadRequest, expectedMsg: "bad body"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid id"), expectedCode: http.StatusBadRequest, expectedMsg: "invalid id"},
		{name: "unauthorized", err: failure.Unauthorized("invalid credentials"), expectedCode: http.StatusUnauthorized, expectedMsg: "invalid credentials"},
		{name: "internal error", err: failure.InternalError(errors.New("db down")), expectedCode: http.StatusInternalServerError, expectedMsg: "db down"},
		{name: "not found", err: failure.NotFound("cabin not found"), expectedCode: http.StatusNotFound, expectedMsg: "cabin not found"},
		{name: "conflict", err: failure.Conflict("Guest already exists"), expectedCode: http.StatusConflict, expectedMsg: "Guest already exists"},
		{name: "forbidden", err: failure.Forbidden("Access denied"), expectedCode: http.StatusForbidden, expectedMsg: "Access denied"},
		{name: "forbidden error", err: failure.ForbiddenError, expectedCode: http.StatusForbidden, expectedMsg: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.expectedCode, f.Code)
			assert.Equal(t, tt.expectedMsg, f.Message)
			assert.Nil(t, f.Fields)
		})
	}
}

func TestNilErrors(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestUnprocessable(t *testing.T) {
	fields := map[string]string{
		"startDate": "Date cannot be in the past",
		"endDate":   "Start date must be earlier than end date",
	}

	err := failure.Unprocessable("booking is not valid", fields)

	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	assert.Equal(t, fields, failure.GetFields(err))
	assert.Equal(t, "booking is not valid", err.Error())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure error", input: &failure.Failure{Code: http.StatusBadRequest, Message: "test"}, expected: http.StatusBadRequest},
		{name: "wrapped failure error", input: fmt.Errorf("service: %w", failure.NotFound("guest not found")), expected: http.StatusNotFound},
		{name: "regular error", input: errors.New("regular error"), expected: http.StatusInternalServerError},
		{name: "nil error", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestGetFields(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", failure.Unprocessable("invalid", map[string]string{"numGuests": "Minimum number of guests must be 1"}))

	assert.Equal(t, map[string]string{"numGuests": "Minimum number of guests must be 1"}, failure.GetFields(wrapped))
	assert.Nil(t, failure.GetFields(errors.New("plain")))
	assert.Nil(t, failure.GetFields(failure.BadRequestFromString("bad")))
}
