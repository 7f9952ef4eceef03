package service

import (
	"context"
	"fmt"
	"strings"

	"resto/config"
	"resto/infras/otel"
	"resto/internal/domains/cashier/model"
	"resto/internal/domains/cashier/model/dto"
	"resto/internal/domains/cashier/repository"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/password"

	"github.com/rs/zerolog/log"
)

var errCashierNotFound = failure.NotFound("cashier not found")

type Cashier interface {
	Create(ctx context.Context, req dto.CreateCashierRequest) (dto.CashierResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCashiersResponse, error)
	Get(ctx context.Context, id string) (dto.CashierResponse, error)
	Update(ctx context.Context, req dto.UpdateCashierRequest, id string) (dto.CashierResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Cashier
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Cashier, cfg *config.Config, otel otel.Otel) Cashier {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCashierRequest) (res dto.CashierResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cashier.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	username := strings.ToLower(req.Username)

	if strings.EqualFold(username, s.cfg.App.Admin.Username) {
		return res, failure.Conflict("username is reserved") //nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, gDto.And(gDto.Eq(model.TableName, model.FieldUsername, username)))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if cashier exists")

		return res, fmt.Errorf("failed to check if cashier exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("username already taken") //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	cashier := req.ToModel(hashedPassword, user)

	if err = s.repo.Insert(ctx, cashier); err != nil {
		log.Error().Err(err).Msg("failed to create cashier")

		return res, fmt.Errorf("failed to create cashier: %w", err)
	}

	res.FromModel(cashier)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCashiersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cashier.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cashiers")

		return res, fmt.Errorf("failed to count cashiers: %w", err)
	}

	cashiers, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cashiers")

		return res, fmt.Errorf("failed to get cashiers: %w", err)
	}

	res.FromModels(cashiers, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CashierResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cashier.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cashier, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(cashier)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCashierRequest, id string) (res dto.CashierResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cashier.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	cashier, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Password != nil {
		hashedPassword, err := password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		req.Password = &hashedPassword
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
		cashier.Name = name
	}

	if req.Active != nil {
		cashier.Active = *req.Active
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update cashier")

		return res, fmt.Errorf("failed to update cashier: %w", err)
	}

	res.FromModel(cashier)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cashier.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete cashier")

		return fmt.Errorf("failed to delete cashier: %w", err)
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Cashier, error) {
	cashier, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cashier")

		return cashier, fmt.Errorf("failed to get cashier: %w", err)
	}

	if cashier.ID == constant.Empty {
		return cashier, errCashierNotFound
	}

	return cashier, nil
}
