package menuitem

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"resto/infras/otel"
	"resto/internal/domains/menuitem/model"
	"resto/internal/domains/menuitem/model/dto"
	"resto/internal/domains/menuitem/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formName        = "name"
	formDescription = "description"
	formPrice       = "price"
	formCategoryID  = "categoryId"
	formAvailable   = "available"
)

type Handler struct {
	service service.MenuItem
	otel    otel.Otel
}

func New(service service.MenuItem, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menu-items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMenuItem)
		routerGroup.Get("/", handler.GetMenuItems)
		routerGroup.Get("/{id}", handler.GetMenuItemByID)
		routerGroup.Patch("/{id}", handler.UpdateMenuItem)
		routerGroup.Patch("/{id}/availability", handler.SetAvailability)
		routerGroup.Delete("/{id}", handler.DeleteMenuItem)
	})
}

// CreateMenuItem handles the creation of a menu item with an optional image.
// @Summary Create a menu item
// @Tags MenuItem
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param price formData string true "Price"
// @Param categoryId formData string true "Category ID"
// @Param available formData bool false "Available"
// @Param image formData file false "Image"
// @Success 201 {object} dto.MenuItemResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu-items [post]
// @Security BearerAuth
func (handler *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMenuItem")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateMenuItemRequest{
		Name:        r.FormValue(formName),
		Description: r.FormValue(formDescription),
		Price:       r.FormValue(formPrice),
		CategoryID:  r.FormValue(formCategoryID),
		Available:   shared.ConvertStringToBool(r.FormValue(formAvailable)),
	}

	file, header, err := formImage(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if file != nil {
		defer file.Close()

		req.Image, req.ImageFile = header, file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, item)
}

// GetMenuItems lists menu items.
// @Summary Get all menu items
// @Tags MenuItem
// @Produce json
// @Param categoryId query string false "Filter by category"
// @Param available query bool false "Filter by availability"
// @Param name query string false "Filter by name"
// @Success 200 {object} dto.GetMenuItemsResponse
// @Failure 500 {object} response.Error
// @Router /v1/menu-items [get]
func (handler *Handler) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.FieldName, model.FieldPrice, constant.FieldCreatedAt)

	if queryParams.SortBy != "" {
		queryParams.SortBy = model.TableName + "." + queryParams.SortBy
	}

	query := r.URL.Query()
	filterGroup := gDto.And()

	if categoryID := query.Get(formCategoryID); categoryID != "" {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldCategoryID, categoryID))
	}

	if available := shared.ConvertStringToBool(query.Get(formAvailable)); available != nil {
		filterGroup.Add(gDto.Eq(model.TableName, model.FieldAvailable, *available))
	}

	if name := query.Get(formName); name != "" {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	items, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// GetMenuItemByID retrieves a menu item by its slug.
// @Summary Get a menu item by ID
// @Tags MenuItem
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 404 {object} response.Error
// @Router /v1/menu-items/{id} [get]
func (handler *Handler) GetMenuItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuItemByID")
	defer scope.End()

	item, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu item by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// UpdateMenuItem accepts either a JSON body or a multipart form carrying a replacement image.
// @Summary Update a menu item
// @Tags MenuItem
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body dto.UpdateMenuItemRequest false "Update Menu Item Request"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/menu-items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMenuItem")
	defer scope.End()

	req := dto.UpdateMenuItemRequest{}

	if strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
			scope.TraceError(err)
			response.WithError(w, failure.BadRequest(err))

			return
		}

		form := r.MultipartForm.Value
		req.Name = formPointer(form, formName)
		req.Description = formPointer(form, formDescription)
		req.Price = formPointer(form, formPrice)
		req.CategoryID = formPointer(form, formCategoryID)

		if available := formPointer(form, formAvailable); available != nil {
			req.Available = shared.ConvertStringToBool(*available)
		}

		file, header, err := formImage(r)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		if file != nil {
			defer file.Close()

			req.Image, req.ImageFile = header, file
		}

		if err := validator.ValidateStruct(&req); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}
	} else if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update menu item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// SetAvailability marks a menu item as available or sold out.
// @Summary Set menu item availability
// @Tags MenuItem
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body dto.SetAvailabilityRequest true "Availability"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/menu-items/{id}/availability [patch]
// @Security BearerAuth
func (handler *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetMenuItemAvailability")
	defer scope.End()

	req := dto.SetAvailabilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	item, err := handler.service.SetAvailability(ctx, chi.URLParam(r, constant.RequestParamID), *req.Available)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set menu item availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// DeleteMenuItem removes a menu item and its image.
// @Summary Delete a menu item
// @Tags MenuItem
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/menu-items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMenuItem")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete menu item")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Menu item deleted successfully")
}

// formImage returns a nil file when the form carries no image.
func formImage(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(constant.FormFileImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get image from form")

		return nil, nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	return file, header, nil
}

func formPointer(form map[string][]string, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}
