package service

import (
	"context"
	"fmt"
	"time"

	"resto/config"
	"resto/infras/otel"
	orderModel "resto/internal/domains/order/model"
	orderRepo "resto/internal/domains/order/repository"
	"resto/internal/domains/report/model"
	"resto/internal/domains/report/model/dto"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Report interface {
	Sales(ctx context.Context, req dto.SalesRequest) (dto.SalesResponse, error)
}

type serviceImpl struct {
	orderRepo orderRepo.Order
	cfg       *config.Config
	otel      otel.Otel
}

func New(orderRepo orderRepo.Order, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		orderRepo: orderRepo,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Sales(ctx context.Context, req dto.SalesRequest) (res dto.SalesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Sales")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to, err := parseRange(req)
	if err != nil {
		return res, err
	}

	end := timezone.EndOfDay(to)

	filter := gDto.And(
		gDto.Eq(orderModel.TableName, orderModel.FieldIsPaid, true),
		gDto.Filter{Table: orderModel.TableName, Field: orderModel.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: orderModel.StatusCancelled},
		gDto.Filter{Table: orderModel.TableName, Field: orderModel.FieldPaidAt, ArgName: "paid_from", Operator: gDto.FilterOperatorGreaterEq, Value: from},
		gDto.Filter{Table: orderModel.TableName, Field: orderModel.FieldPaidAt, ArgName: "paid_to", Operator: gDto.FilterOperatorLessEq, Value: end},
	)

	orders, err := s.orderRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get paid orders")

		return res, fmt.Errorf("failed to get paid orders: %w", err)
	}

	res.FromModel(model.Summarize(orders, from, to, timezone.GetLocation()))

	return res, nil
}

func parseRange(req dto.SalesRequest) (from, to time.Time, err error) {
	from, err = timezone.ParseDay(req.From)
	if err != nil {
		return from, to, failure.BadRequestFromString("from must be a date formatted YYYY-MM-DD") //nolint:wrapcheck
	}

	to, err = timezone.ParseDay(req.To)
	if err != nil {
		return from, to, failure.BadRequestFromString("to must be a date formatted YYYY-MM-DD") //nolint:wrapcheck
	}

	if to.Before(from) {
		return from, to, failure.BadRequestFromString("to must not be before from") //nolint:wrapcheck
	}

	if from.AddDate(0, 0, model.MaxRangeDays).Before(to) {
		return from, to, failure.BadRequestFromString(fmt.Sprintf("range must not exceed %d days", model.MaxRangeDays)) //nolint:wrapcheck
	}

	return from, to, nil
}
