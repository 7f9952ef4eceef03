package cashier

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/cashier/model"
	"resto/internal/domains/cashier/model/dto"
	"resto/internal/domains/cashier/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cashier
	otel    otel.Otel
}

func New(service service.Cashier, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cashiers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCashier)
		routerGroup.Get("/", handler.GetCashiers)
		routerGroup.Get("/{id}", handler.GetCashierByID)
		routerGroup.Patch("/{id}", handler.UpdateCashier)
		routerGroup.Delete("/{id}", handler.DeleteCashier)
	})
}

// CreateCashier registers a cashier account.
// @Summary Create a cashier
// @Tags Cashier
// @Accept json
// @Produce json
// @Param request body dto.CreateCashierRequest true "Create Cashier Request"
// @Success 201 {object} dto.CashierResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/cashiers [post]
// @Security BearerAuth
func (handler *Handler) CreateCashier(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCashier")
	defer scope.End()

	req := dto.CreateCashierRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	cashier, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create cashier")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, cashier)
}

// GetCashiers lists cashier accounts.
// @Summary Get all cashiers
// @Tags Cashier
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Param username query string false "Filter by username"
// @Success 200 {object} dto.GetCashiersResponse
// @Router /v1/cashiers [get]
// @Security BearerAuth
func (handler *Handler) GetCashiers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCashiers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.FieldUsername, model.FieldName, model.FieldLastLogin, constant.FieldCreatedAt)

	filterGroup := gDto.And()

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldActive, *active))
	}

	if username := r.URL.Query().Get(model.FieldUsername); username != "" {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldUsername,
			Operator: gDto.FilterOperatorLike,
			Value:    username,
			Table:    model.TableName,
		})
	}

	cashiers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cashiers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cashiers)
}

// @Summary Get a cashier by ID
// @Tags Cashier
// @Produce json
// @Param id path string true "Cashier ID"
// @Success 200 {object} dto.CashierResponse
// @Failure 404 {object} response.Error
// @Router /v1/cashiers/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCashierByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCashierByID")
	defer scope.End()

	cashier, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cashier by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cashier)
}

// UpdateCashier renames, deactivates or resets the password of a cashier.
// @Summary Update a cashier
// @Tags Cashier
// @Accept json
// @Produce json
// @Param id path string true "Cashier ID"
// @Param request body dto.UpdateCashierRequest true "Update Cashier Request"
// @Success 200 {object} dto.CashierResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/cashiers/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCashier(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCashier")
	defer scope.End()

	req := dto.UpdateCashierRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	cashier, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update cashier")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cashier)
}

// @Summary Delete a cashier
// @Tags Cashier
// @Produce json
// @Param id path string true "Cashier ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/cashiers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCashier(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCashier")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete cashier")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Cashier deleted successfully")
}
