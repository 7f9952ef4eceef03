package service

import (
	"context"
	"fmt"
	"strings"

	"resto/config"
	"resto/infras/kafka"
	"resto/infras/otel"
	menuModel "resto/internal/domains/menuitem/model"
	menuRepo "resto/internal/domains/menuitem/repository"
	"resto/internal/domains/order/model"
	"resto/internal/domains/order/model/dto"
	"resto/internal/domains/order/repository"
	tableModel "resto/internal/domains/table/model"
	tableRepo "resto/internal/domains/table/repository"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/hook"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	errOrderNotFound  = failure.NotFound("order not found")
	errOrderSettled   = failure.BadRequestFromString("order is already settled")
	errOrderPaid      = failure.BadRequestFromString("order is already paid")
	errOrderCancelled = failure.BadRequestFromString("cancelled orders cannot be paid")
	errOrderUnpaid    = failure.BadRequestFromString("order must be paid before it is settled")
	errTableNotFound  = failure.BadRequestFromString("table not found")
)

type Order interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (dto.OrderResponse, error)
	Pay(ctx context.Context, id string, method string) (dto.OrderResponse, error)
	Settle(ctx context.Context, id string) (dto.OrderResponse, error)
}

type serviceImpl struct {
	repo        repository.Order
	menuRepo    menuRepo.MenuItem
	tableRepo   tableRepo.Table
	cfg         *config.Config
	otel        otel.Otel
	broadcaster hub.Broadcaster
	producer    kafka.Producer
}

func New(
	repo repository.Order,
	menuRepo menuRepo.MenuItem,
	tableRepo tableRepo.Table,
	cfg *config.Config,
	otel otel.Otel,
	broadcaster hub.Broadcaster,
	producer kafka.Producer,
) Order {
	return &serviceImpl{
		repo:        repo,
		menuRepo:    menuRepo,
		tableRepo:   tableRepo,
		cfg:         cfg,
		otel:        otel,
		broadcaster: broadcaster,
		producer:    producer,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	if user == "" {
		user = strings.TrimSpace(req.CustomerName)
	}

	if req.TableID != nil {
		if err = s.requireTable(ctx, strings.TrimSpace(*req.TableID)); err != nil {
			return res, err
		}
	}

	items, err := s.snapshot(ctx, req.Items)
	if err != nil {
		return res, err
	}

	order := req.ToModel(items, cashierFromContext(ctx), user)

	if err = s.repo.Insert(ctx, order); err != nil {
		log.Error().Err(err).Msg("failed to insert order")

		return res, fmt.Errorf("failed to create order: %w", err)
	}

	res.FromModel(order)
	s.announce(ctx, event.OrderCreated, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(orders, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(order)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, status model.Status) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	order, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if order.IsSettled {
		return res, errOrderSettled
	}

	if !model.CanTransition(order.Status, status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot change order status from %s to %s", order.Status, status)) //nolint:wrapcheck
	}

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldStatus] = status

	if status == model.StatusCompleted {
		now := timezone.Now()
		order.CompletedAt = &now
		fields[model.FieldCompletedAt] = now
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return res, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	res.FromModel(order)
	s.announce(ctx, event.OrderStatusChanged, res)

	return res, nil
}

func (s *serviceImpl) Pay(ctx context.Context, id string, method string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Pay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	order, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	switch {
	case order.IsSettled:
		return res, errOrderSettled
	case order.IsPaid:
		return res, errOrderPaid
	case order.Status == model.StatusCancelled:
		return res, errOrderCancelled
	}

	now := timezone.Now()

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldIsPaid] = true
	fields[model.FieldPaymentMethod] = method
	fields[model.FieldPaidAt] = now

	if cashierID := cashierFromContext(ctx); cashierID != nil && order.CashierID == nil {
		order.CashierID = cashierID
		fields[model.FieldCashierID] = *cashierID
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record order payment")

		return res, fmt.Errorf("failed to record order payment: %w", err)
	}

	order.IsPaid = true
	order.PaymentMethod = &method
	order.PaidAt = &now

	res.FromModel(order)
	s.announce(ctx, event.OrderUpdated, res)

	return res, nil
}

func (s *serviceImpl) Settle(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Settle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	order, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if order.IsSettled {
		return res, errOrderSettled
	}

	if !order.IsPaid {
		return res, errOrderUnpaid
	}

	now := timezone.Now()

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldIsSettled] = true
	fields[model.FieldSettledAt] = now

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to settle order")

		return res, fmt.Errorf("failed to settle order: %w", err)
	}

	order.IsSettled = true
	order.SettledAt = &now

	res.FromModel(order)
	s.announce(ctx, event.OrderUpdated, res)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Order, error) {
	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return order, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return order, errOrderNotFound
	}

	return order, nil
}

func (s *serviceImpl) requireTable(ctx context.Context, id string) error {
	exist, err := s.tableRepo.Exist(ctx, shared.FilterByID(id, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check order table")

		return fmt.Errorf("failed to check order table: %w", err)
	}

	if !exist {
		return errTableNotFound
	}

	return nil
}

// snapshot copies the current menu data into each line. Unknown or unavailable items reject the order.
func (s *serviceImpl) snapshot(ctx context.Context, lines []dto.OrderItemRequest) (model.Items, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, strings.TrimSpace(line.MenuItemID))
	}

	menu, err := s.menuRepo.GetAll(ctx, gDto.QueryParams{}, gDto.And(gDto.In(menuModel.TableName, menuModel.FieldID, ids)))
	if err != nil {
		log.Error().Err(err).Msg("failed to load ordered menu items")

		return nil, fmt.Errorf("failed to load ordered menu items: %w", err)
	}

	byID := make(map[string]menuModel.MenuItem, len(menu))
	for _, item := range menu {
		if _, seen := byID[item.ID]; !seen {
			byID[item.ID] = item
		}
	}

	items := make(model.Items, 0, len(lines))

	for i, line := range lines {
		item, ok := byID[ids[i]]
		if !ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("menu item %s does not exist", ids[i])) //nolint:wrapcheck
		}

		if !item.Available {
			return nil, failure.BadRequestFromString(fmt.Sprintf("menu item %s is not available", item.Name)) //nolint:wrapcheck
		}

		items = append(items, model.Item{
			MenuItemID:   item.ID,
			Name:         item.Name,
			Price:        item.Price,
			Quantity:     line.Quantity,
			Image:        item.Image,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
		})
	}

	return items, nil
}

// announce broadcasts the change and then mirrors it to kafka.
func (s *serviceImpl) announce(ctx context.Context, typ event.Type, order dto.OrderResponse) {
	status := ""
	if typ == event.OrderStatusChanged {
		status = string(order.Status)
	}

	change := event.NewOrderChange(typ, order, order.ID, status)

	hook.Run(ctx,
		hook.Hook{
			Name: "broadcast " + string(typ),
			Fn: func(ctx context.Context) error {
				s.broadcaster.Publish(ctx, event.TopicOrders, event.OrderUpdate, change)

				return nil
			},
		},
		hook.Hook{
			Name: "mirror " + string(typ) + " to kafka",
			Fn: func(ctx context.Context) error {
				return s.producer.Send(ctx, kafka.Message{Key: order.ID, Value: change}) //nolint:wrapcheck
			},
		},
	)
}

func cashierFromContext(ctx context.Context) *string {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role != constant.RoleCashier || userID == "" {
		return nil
	}

	return &userID
}
