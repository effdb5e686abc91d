package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/jwt"
	jwtMocks "lodge/infras/jwt/mocks"
	otelMocks "lodge/infras/otel/mocks"
	settingMocks "lodge/internal/domains/setting/mocks"
	"lodge/internal/domains/setting/model/dto"
	"lodge/internal/handlers/setting"
	"lodge/permissions"
	"lodge/shared/constant"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"
)

type fixture struct {
	server   *HTTP
	jwt      *jwtMocks.MockJWT
	settings *settingMocks.MockSettingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	settings := settingMocks.NewMockSettingService(ctrl)
	ot := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Name = "lodge"

	routes := router.New(router.DomainHandlers{Setting: setting.New(settings, ot)})

	server := New(
		cfg,
		routes,
		ot,
		middleware.NewAppMiddleware(ot, cfg, nil),
		middleware.NewAuthRoleMiddleware(jwtService, ot, permissions.Get(), cfg),
	)

	return &fixture{server: server, jwt: jwtService, settings: settings}
}

func (f *fixture) do(method, target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, request)

	return recorder
}

func (f *fixture) signedIn(role string) {
	f.jwt.EXPECT().ValidateToken("token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "u1", Email: "ana@lodge.test", Role: role}, nil).AnyTimes()
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)

	f.server.setState(ServerStateInGracePeriod)

	assert.Equal(t, http.StatusServiceUnavailable, f.do(http.MethodGet, "/health", "").Code)
}

func TestCleanupPeriodRejectsRequests(t *testing.T) {
	f := newFixture(t)
	f.signedIn(constant.RoleStaff)

	f.settings.EXPECT().Get(gomock.Any()).Return(dto.SettingResponse{}, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/v1/settings", "token").Code)

	f.server.setState(ServerStateInCleanupPeriod)

	recorder := f.do(http.MethodGet, "/v1/settings", "token")

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), constant.ResponseErrorPrepareShutdown)
}

func TestRoutesAreGuarded(t *testing.T) {
	t.Run("token required", func(t *testing.T) {
		f := newFixture(t)

		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/v1/settings", "").Code)
	})

	t.Run("staff cannot change settings", func(t *testing.T) {
		f := newFixture(t)
		f.signedIn(constant.RoleStaff)

		assert.Equal(t, http.StatusForbidden, f.do(http.MethodPatch, "/v1/settings", "token").Code)
	})

	t.Run("admin reaches the handler", func(t *testing.T) {
		f := newFixture(t)
		f.signedIn(constant.RoleAdmin)

		f.settings.EXPECT().Get(gomock.Any()).Return(dto.SettingResponse{}, nil)

		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/v1/settings", "token").Code)
	})
}
