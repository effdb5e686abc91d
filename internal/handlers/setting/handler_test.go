package setting_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "lodge/infras/otel/mocks"
	"lodge/internal/domains/setting/mocks"
	"lodge/internal/domains/setting/model/dto"
	"lodge/internal/handlers/setting"
	"lodge/shared/failure"
)

func newRouter(t *testing.T) (*mocks.MockSettingService, http.Handler) {
	t.Helper()

	service := mocks.NewMockSettingService(gomock.NewController(t))
	handler := setting.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func serve(router http.Handler, method, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, "/settings", strings.NewReader(body)))

	return recorder
}

func TestGetSettings(t *testing.T) {
	service, router := newRouter(t)

	service.EXPECT().Get(gomock.Any()).Return(dto.SettingResponse{MinBookingLength: 3, MaxBookingLength: 90, MaxGuestsPerBooking: 10, BreakfastPrice: 15}, nil)

	recorder := serve(router, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data dto.SettingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	assert.Equal(t, 10, res.Data.MaxGuestsPerBooking)
}

func TestUpdateSettings(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		service, router := newRouter(t)

		guests := 8
		service.EXPECT().Update(gomock.Any(), dto.UpdateSettingRequest{MaxGuestsPerBooking: &guests}).Return(nil)

		assert.Equal(t, http.StatusOK, serve(router, http.MethodPatch, `{"maxGuestsPerBooking":8}`).Code)
	})

	t.Run("zero is not a valid length", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPatch, `{"minBookingLength":0}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "minBookingLength")
	})

	t.Run("minimum above maximum", func(t *testing.T) {
		service, router := newRouter(t)

		service.EXPECT().Update(gomock.Any(), gomock.Any()).Return(failure.Unprocessable("Settings are not valid", map[string]string{"minBookingLength": "Minimum nights cannot exceed maximum nights"}))

		recorder := serve(router, http.MethodPatch, `{"minBookingLength":100}`)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}
