package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodge/shared/failure"
	"lodge/transport/http/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	t.Run("field messages", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, failure.Unprocessable("Booking could not be created", map[string]string{
			"startDate": "Date cannot be in the past",
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, map[string]any{
			"error":  "Booking could not be created",
			"fields": map[string]any{"startDate": "Date cannot be in the past"},
		}, decode(t, rec))
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"error": "Internal Server Error"}, decode(t, rec))
	})
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, map[string]int{"numNights": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"data": map[string]any{"numNights": float64(3)}}, decode(t, rec))
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "REQUEST LIMIT EXCEEDED", decode(t, rec)["message"])
}
