package order

import (
	"net/http"
	"strings"

	"resto/infras/otel"
	"resto/internal/domains/order/model"
	"resto/internal/domains/order/model/dto"
	"resto/internal/domains/order/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryTableID   = "tableId"
	queryStatus    = "status"
	queryIsPaid    = "isPaid"
	queryIsSettled = "isSettled"
	queryCashierID = "cashierId"
)

type Handler struct {
	service service.Order
	otel    otel.Otel
}

func New(service service.Order, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/orders", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOrder)
		routerGroup.Get("/", handler.GetOrders)
		routerGroup.Get("/{id}", handler.GetOrderByID)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Patch("/{id}/payment", handler.Pay)
		routerGroup.Patch("/{id}/settle", handler.Settle)
	})
}

// CreateOrder places an order from a table or the cashier counter.
// @Summary Create an order
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Create Order Request"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders [post]
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	req := dto.CreateOrderRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Order " + order.ID + " created")

	response.WithJSON(w, http.StatusCreated, order)
}

// GetOrders lists orders. It is never cached, so clients re-fetch it after every order event.
// @Summary Get all orders
// @Tags Order
// @Produce json
// @Param tableId query string false "Filter by table"
// @Param status query string false "Comma separated statuses"
// @Param isPaid query bool false "Filter by payment"
// @Param isSettled query bool false "Filter by settlement"
// @Param cashierId query string false "Filter by cashier"
// @Success 200 {object} dto.GetOrdersResponse
// @Failure 500 {object} response.Error
// @Router /v1/orders [get]
func (handler *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(constant.FieldCreatedAt, "total", model.FieldStatus)

	if queryParams.SortBy == "" {
		queryParams.SortBy, queryParams.SortDir = constant.FieldCreatedAt, gDto.SortDirAsc
	}

	orders, err := handler.service.GetAll(ctx, queryParams, Filter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, orders)
}

// Filter turns the list query string into a filter group.
func Filter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()
	filterGroup := gDto.And()

	if tableID := query.Get(queryTableID); tableID != "" {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldTableID, tableID))
	}

	if raw := query.Get(queryStatus); raw != "" {
		var statuses []string

		for status := range strings.SplitSeq(raw, ",") {
			if status = strings.TrimSpace(status); status != "" {
				statuses = append(statuses, status)
			}
		}

		filterGroup.Add(gDto.In(model.TableName, model.FieldStatus, statuses))
	}

	if isPaid := shared.ConvertStringToBool(query.Get(queryIsPaid)); isPaid != nil {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldIsPaid, *isPaid))
	}

	if isSettled := shared.ConvertStringToBool(query.Get(queryIsSettled)); isSettled != nil {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldIsSettled, *isSettled))
	}

	if cashierID := query.Get(queryCashierID); cashierID != "" {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldCashierID, cashierID))
	}

	return filterGroup
}

// GetOrderByID retrieves an order by its ID.
// @Summary Get an order by ID
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [get]
func (handler *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrderByID")
	defer scope.End()

	order, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get order by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}

// UpdateStatus moves an order through the kitchen workflow.
// @Summary Change order status
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), req.Status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}

// Pay records the payment method of an order.
// @Summary Pay an order
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.PayRequest true "Payment"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id}/payment [patch]
// @Security BearerAuth
func (handler *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PayOrder")
	defer scope.End()

	req := dto.PayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.Pay(ctx, chi.URLParam(r, constant.RequestParamID), req.PaymentMethod)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to pay order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}

// Settle closes a paid order for the day.
// @Summary Settle an order
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id}/settle [patch]
// @Security BearerAuth
func (handler *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SettleOrder")
	defer scope.End()

	order, err := handler.service.Settle(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to settle order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}
