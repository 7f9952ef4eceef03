package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/jwt"
	jwtMocks "resto/infras/jwt/mocks"
	"resto/infras/otel/mocks"
	"resto/internal/domains/auth/model/dto"
	"resto/internal/domains/auth/service"
	cashierMocks "resto/internal/domains/cashier/mocks"
	cashierModel "resto/internal/domains/cashier/model"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/shared/password"
)

var tokenPair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	rina := cashierModel.Cashier{ID: "c1", Username: "rina", Name: "Rina", Password: hash, Active: true}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *cashierMocks.MockCashier, jwtService *jwtMocks.MockJWT)
		wantCode  int
		wantRole  string
	}{
		{
			name: "admin from config",
			req:  dto.LoginRequest{Username: "Admin", Password: "admin-pass"},
			setupMock: func(_ *cashierMocks.MockCashier, jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().GenerateTokenPair("admin", "admin", constant.RoleAdmin).Return(tokenPair, nil)
			},
			wantRole: constant.RoleAdmin,
		},
		{
			name: "cashier from store",
			req:  dto.LoginRequest{Username: "rina", Password: "secret123"},
			setupMock: func(repo *cashierMocks.MockCashier, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rina, nil)
				jwtService.EXPECT().GenerateTokenPair("c1", "rina", constant.RoleCashier).Return(tokenPair, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantRole: constant.RoleCashier,
		},
		{
			name: "last login failure does not block login",
			req:  dto.LoginRequest{Username: "rina", Password: "secret123"},
			setupMock: func(repo *cashierMocks.MockCashier, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rina, nil)
				jwtService.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantRole: constant.RoleCashier,
		},
		{
			name: "wrong admin password falls through to store",
			req:  dto.LoginRequest{Username: "admin", Password: "nope"},
			setupMock: func(repo *cashierMocks.MockCashier, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cashierModel.Cashier{}, nil)
			},
			wantCode: 401,
		},
		{
			name: "wrong cashier password",
			req:  dto.LoginRequest{Username: "rina", Password: "wrong-pass"},
			setupMock: func(repo *cashierMocks.MockCashier, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rina, nil)
			},
			wantCode: 401,
		},
		{
			name: "deactivated cashier",
			req:  dto.LoginRequest{Username: "rina", Password: "secret123"},
			setupMock: func(repo *cashierMocks.MockCashier, _ *jwtMocks.MockJWT) {
				inactive := rina
				inactive.Active = false
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := cashierMocks.NewMockCashier(ctrl)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			cfg := &config.Config{}
			cfg.App.Admin.Username = "admin"
			cfg.App.Admin.Password = "admin-pass"

			tt.setupMock(repo, jwtService)

			svc := service.New(repo, cfg, mocks.NewOtel(), jwtService)

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, res.Role)
			assert.Equal(t, "access", res.AccessToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(cashierMocks.NewMockCashier(ctrl), &config.Config{}, mocks.NewOtel(), jwtService)

	jwtService.EXPECT().RefreshTokens("good").Return(tokenPair, nil)
	jwtService.EXPECT().RefreshTokens("bad").Return(nil, jwt.ErrInvalidToken)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "refresh", res.RefreshToken)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, 401, failure.GetCode(err))
}
