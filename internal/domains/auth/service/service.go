package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"resto/config"
	"resto/infras/jwt"
	"resto/infras/otel"
	"resto/internal/domains/auth/model/dto"
	cashierModel "resto/internal/domains/cashier/model"
	cashierRepo "resto/internal/domains/cashier/repository"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/password"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

const adminID = "admin"

var errInvalidCredentials = failure.Unauthorized("invalid username or password")

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	cashierRepo cashierRepo.Cashier
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(cashierRepo cashierRepo.Cashier, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cashierRepo: cashierRepo,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwt,
	}
}

// Login accepts the configured admin account first, then falls back to the cashier store.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username := strings.ToLower(strings.TrimSpace(req.Username))

	if s.isAdmin(username, req.Password) {
		return s.issue(adminID, s.cfg.App.Admin.Username, "Administrator", constant.RoleAdmin)
	}

	filter := gDto.And(gDto.Eq(cashierModel.TableName, cashierModel.FieldUsername, username))

	cashier, err := s.cashierRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cashier")

		return res, fmt.Errorf("failed to get cashier: %w", err)
	}

	if cashier.ID == constant.Empty {
		log.Warn().Str("username", username).Msg("login attempt with unknown username")

		return res, errInvalidCredentials
	}

	if err = password.Verify(req.Password, cashier.Password); err != nil {
		log.Warn().Str("username", username).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	if !cashier.Active {
		return res, failure.Forbidden("cashier account is deactivated")
	}

	res, err = s.issue(cashier.ID, cashier.Username, cashier.Name, constant.RoleCashier)
	if err != nil {
		return res, err
	}

	lastLogin := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, cashier.Username)
	if err := s.cashierRepo.Update(ctx, lastLogin, shared.FilterByID(cashier.ID, cashierModel.FieldID, cashierModel.TableName)); err != nil {
		log.Warn().Err(err).Str("cashier_id", cashier.ID).Msg("failed to update last login")
	}

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) isAdmin(username, plain string) bool {
	admin := s.cfg.App.Admin
	if admin.Username == "" || admin.Password == "" {
		return false
	}

	sameUser := subtle.ConstantTimeCompare([]byte(username), []byte(strings.ToLower(admin.Username)))
	samePassword := subtle.ConstantTimeCompare([]byte(plain), []byte(admin.Password))

	return sameUser&samePassword == 1
}

func (s *serviceImpl) issue(userID, username, name, role string) (res dto.LoginResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(userID, username, role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.UserID = userID
	res.Username = username
	res.Name = name
	res.Role = role

	return res, nil
}
