package table

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/table/model"
	"resto/internal/domains/table/model/dto"
	"resto/internal/domains/table/service"
	"resto/internal/realtime/event"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTable)
		routerGroup.Get("/", handler.GetTables)
		routerGroup.Get("/{id}", handler.GetTableByID)
		routerGroup.Patch("/{id}", handler.UpdateTable)
		routerGroup.Patch("/{id}/availability", handler.SetAvailability)
		routerGroup.Delete("/{id}", handler.DeleteTable)
		routerGroup.Post("/{id}/bell", handler.signal(event.BellRequest))
		routerGroup.Post("/{id}/bill", handler.signal(event.BillRequest))
		routerGroup.Post("/{id}/block", handler.signal(event.TableBlocked))
		routerGroup.Post("/{id}/release", handler.signal(event.TableReleased))
	})
}

// CreateTable registers a new dining table.
// @Summary Create a table
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Create Table Request"
// @Success 201 {object} dto.TableResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	table, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, table)
}

// GetTables lists tables.
// @Summary Get all tables
// @Tags Table
// @Produce json
// @Param available query bool false "Filter by availability"
// @Success 200 {object} dto.GetTablesResponse
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.FieldLabel, model.FieldCapacity, constant.FieldCreatedAt)

	filterGroup := gDto.And()

	if available := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldAvailable)); available != nil {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldAvailable, *available))
	}

	tables, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tables)
}

// GetTableByID returns one table.
// @Summary Get a table by ID
// @Tags Table
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} dto.TableResponse
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [get]
func (handler *Handler) GetTableByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableByID")
	defer scope.End()

	table, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// UpdateTable changes the label or capacity of a table.
// @Summary Update a table
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.UpdateTableRequest true "Update Table Request"
// @Success 200 {object} dto.TableResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tables/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	req := dto.UpdateTableRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	table, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// SetAvailability marks a table as available or not.
// @Summary Set table availability
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.SetAvailabilityRequest true "Availability"
// @Success 200 {object} dto.TableResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id}/availability [patch]
// @Security BearerAuth
func (handler *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetTableAvailability")
	defer scope.End()

	req := dto.SetAvailabilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	table, err := handler.service.SetAvailability(ctx, chi.URLParam(r, constant.RequestParamID), *req.Available)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set table availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// DeleteTable removes a table.
// @Summary Delete a table
// @Tags Table
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTable")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete table")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Table deleted successfully")
}

// signal relays a bell, bill, block or release for a table to everyone on the tables topic.
// @Summary Signal a table event
// @Tags Table
// @Produce json
// @Param id path string true "Table ID"
// @Success 202 {object} event.TableSignal
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id}/bell [post]
// @Router /v1/tables/{id}/bill [post]
// @Router /v1/tables/{id}/block [post]
// @Router /v1/tables/{id}/release [post]
func (handler *Handler) signal(name event.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TableSignal")
		defer scope.End()

		signal, err := handler.service.Signal(ctx, chi.URLParam(r, constant.RequestParamID), name)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("event", string(name)).Msg("failed to relay table signal")

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusAccepted, signal)
	}
}
