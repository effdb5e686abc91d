package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lodge/config"
	"lodge/infras/jwt"
	jwtMocks "lodge/infras/jwt/mocks"
	otelMocks "lodge/infras/otel/mocks"
	"lodge/permissions"
	"lodge/shared/constant"
	"lodge/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/auth/login", Method: http.MethodPost, Skip: true},
			{Path: "/v1/settings", Method: http.MethodPatch, Permissions: []string{constant.RoleAdmin}},
		},
	}

	mw := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), perms, cfg)

	echoUser := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(user))
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Post("/v1/auth/login", echoUser)
	router.Get("/v1/settings", echoUser)
	router.Patch("/v1/settings", echoUser)

	return router
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		headers   map[string]string
		setupMock func(m *jwtMocks.MockJWT)
		wantCode  int
		wantBody  string
	}{
		{
			name:     "skipped endpoint needs no token",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/v1/settings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/v1/settings",
			headers:  map[string]string{"Authorization": "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/settings",
			headers: map[string]string{"Authorization": "Bearer old"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "staff reads settings",
			method:  http.MethodGet,
			path:    "/v1/settings",
			headers: map[string]string{"Authorization": "Bearer staff"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("staff", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-staff", Email: "s@lodge.test", Role: constant.RoleStaff}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "u-staff",
		},
		{
			name:    "staff cannot change settings",
			method:  http.MethodPatch,
			path:    "/v1/settings",
			headers: map[string]string{"Authorization": "Bearer staff"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("staff", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-staff", Email: "s@lodge.test", Role: constant.RoleStaff}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "admin changes settings",
			method:  http.MethodPatch,
			path:    "/v1/settings",
			headers: map[string]string{"Authorization": "Bearer admin"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("admin", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-admin", Email: "a@lodge.test", Role: constant.RoleAdmin}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "u-admin",
		},
		{
			name:     "api key bypasses the token",
			method:   http.MethodPatch,
			path:     "/v1/settings",
			headers:  map[string]string{"X-API-Key": "internal-key"},
			wantCode: http.StatusOK,
			wantBody: constant.UserInternal,
		},
		{
			name:     "wrong api key",
			method:   http.MethodGet,
			path:     "/v1/settings",
			headers:  map[string]string{"X-API-Key": "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
