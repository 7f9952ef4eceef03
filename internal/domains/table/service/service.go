package service

import (
	"context"
	"fmt"
	"strings"

	"resto/config"
	"resto/infras/otel"
	"resto/internal/domains/table/model"
	"resto/internal/domains/table/model/dto"
	"resto/internal/domains/table/repository"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/hook"

	"github.com/rs/zerolog/log"
)

var errTableNotFound = failure.NotFound("table not found")

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTablesResponse, error)
	Get(ctx context.Context, id string) (dto.TableResponse, error)
	Update(ctx context.Context, req dto.UpdateTableRequest, id string) (dto.TableResponse, error)
	SetAvailability(ctx context.Context, id string, available bool) (dto.TableResponse, error)
	Delete(ctx context.Context, id string) error

	// Signal relays a bell, bill, block or release for an existing table. Nothing is persisted.
	Signal(ctx context.Context, id string, name event.Name) (event.TableSignal, error)
}

type serviceImpl struct {
	repo        repository.Table
	cfg         *config.Config
	otel        otel.Otel
	broadcaster hub.Broadcaster
}

func New(repo repository.Table, cfg *config.Config, otel otel.Otel, broadcaster hub.Broadcaster) Table {
	return &serviceImpl{
		repo:        repo,
		cfg:         cfg,
		otel:        otel,
		broadcaster: broadcaster,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	if err = s.ensureLabelFree(ctx, req.Label, ""); err != nil {
		return res, err
	}

	table := req.ToModel(user)

	if err = s.repo.Insert(ctx, table); err != nil {
		log.Error().Err(err).Msg("failed to insert table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	res.FromModel(table)
	s.announce(ctx, event.TableCreated, res, res.ID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, fmt.Errorf("failed to count tables: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	table, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTableRequest, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		req.Label = &label

		if err = s.ensureLabelFree(ctx, label, id); err != nil {
			return res, err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update table")

		return res, fmt.Errorf("failed to update table: %w", err)
	}

	if req.Label != nil {
		current.Label = *req.Label
	}

	if req.Capacity != nil {
		current.Capacity = *req.Capacity
	}

	res.FromModel(current)
	s.announce(ctx, event.TableUpdated, res, id)

	return res, nil
}

func (s *serviceImpl) SetAvailability(ctx context.Context, id string, available bool) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.SetAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldAvailable] = available

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update table availability")

		return res, fmt.Errorf("failed to update table availability: %w", err)
	}

	current.Available = available
	res.FromModel(current)
	s.announce(ctx, event.TableAvailabilityChanged, res, id)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if table exists")

		return fmt.Errorf("failed to check if table exists: %w", err)
	}

	if !exist {
		return errTableNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete table")

		return fmt.Errorf("failed to delete table: %w", err)
	}

	s.announce(ctx, event.TableDeleted, nil, id)

	return nil
}

func (s *serviceImpl) Signal(ctx context.Context, id string, name event.Name) (signal event.TableSignal, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Signal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	table, err := s.find(ctx, id)
	if err != nil {
		return signal, err
	}

	signal = event.NewTableSignal(table.ID, table.Label)

	var delivered int
	if event.IsServiceRequest(name) {
		delivered, err = s.broadcaster.RelayServiceRequest(ctx, name, signal)
	} else {
		delivered, err = s.broadcaster.RelayTableSignal(ctx, name, signal)
	}

	if err != nil {
		return signal, failure.BadRequest(err) //nolint:wrapcheck
	}

	scope.SetAttribute("delivered", delivered)

	return signal, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Table, error) {
	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return table, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return table, errTableNotFound
	}

	return table, nil
}

func (s *serviceImpl) ensureLabelFree(ctx context.Context, label, exceptID string) error {
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldLabel, strings.TrimSpace(label)))
	if exceptID != "" {
		filter.Add(gDto.Filter{Table: model.TableName, Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: exceptID})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check table label")

		return fmt.Errorf("failed to check table label: %w", err)
	}

	if exist {
		return failure.Conflict("table with this label already exists") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) announce(ctx context.Context, typ event.Type, table any, id string) {
	hook.Run(ctx, hook.Hook{
		Name: "broadcast " + string(typ),
		Fn: func(ctx context.Context) error {
			s.broadcaster.Publish(ctx, event.TopicTables, event.TableUpdate, event.NewTableChange(typ, table, id))

			return nil
		},
	})
}
