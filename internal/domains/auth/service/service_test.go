package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/jwt"
	jwtMocks "lodge/infras/jwt/mocks"
	"lodge/infras/otel/mocks"
	"lodge/internal/domains/auth/model/dto"
	"lodge/internal/domains/auth/service"
	userMocks "lodge/internal/domains/user/mocks"
	userModel "lodge/internal/domains/user/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/password"
)

func hashed(t *testing.T, plain string) string {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return hash
}

func userContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	validUser := userModel.User{
		ID:       "user-id-123",
		Email:    "test@example.com",
		Password: hashed(t, "password"),
		FullName: "Test User",
		Role:     constant.RoleStaff,
		Active:   true,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						_, args := filter.GetWhereClause()
						assert.Equal(t, validUser.ID, args[userModel.FieldID])

						return nil
					})
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				inactiveUser := validUser
				inactiveUser.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).
					Return(nil, errors.New("token generation failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_Signup(t *testing.T) {
	req := dto.SignupRequest{
		FullName:        " New Staff ",
		Email:           "NEW@lodge.test",
		Password:        "secret-pass",
		PasswordConfirm: "secret-pass",
	}

	t.Run("creates a staff account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUserRepo := userMocks.NewMockUser(ctrl)
		svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
			assert.Equal(t, "new@lodge.test", user.Email)
			assert.Equal(t, "New Staff", user.FullName)
			assert.Equal(t, "admin-1", user.CreatedBy)
			assert.NoError(t, password.Verify("secret-pass", user.Password))

			return nil
		})

		res, err := svc.Signup(userContext("admin-1"), req)

		require.NoError(t, err)
		assert.Equal(t, constant.RoleStaff, res.Role)
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUserRepo := userMocks.NewMockUser(ctrl)
		svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Signup(userContext("admin-1"), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	mockJWT.EXPECT().RefreshTokens("good").Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)
	mockJWT.EXPECT().RefreshTokens("bad").Return(nil, jwt.ErrInvalidToken)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "new-refresh", res.RefreshToken)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	_, err := svc.Me(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u1", Email: "me@lodge.test", Role: constant.RoleAdmin}, nil)

	res, err := svc.Me(userContext("u1"))
	require.NoError(t, err)
	assert.Equal(t, "me@lodge.test", res.Email)
}

func TestAuthService_UpdateMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	err := svc.UpdateMe(userContext("u1"), dto.UpdateMeRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	name := "Renamed"

	mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u1"}, nil)
	mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, "Renamed", fields[userModel.FieldFullName])

		return nil
	})

	assert.NoError(t, svc.UpdateMe(userContext("u1"), dto.UpdateMeRequest{FullName: &name}))
}

func TestAuthService_ChangePassword(t *testing.T) {
	current := userModel.User{ID: "u1", Password: hashed(t, "old-password")}

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name: "changed",
			req:  dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password", PasswordConfirm: "new-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					hash, _ := fields[userModel.FieldPassword].(string)
					assert.NoError(t, password.Verify("new-password", hash))

					return nil
				})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "new-password", PasswordConfirm: "new-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user gone",
			req:  dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password", PasswordConfirm: "new-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

			tt.setupMock(repo)

			err := svc.ChangePassword(userContext("u1"), tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
