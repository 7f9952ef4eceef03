package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"resto/config"
	"resto/infras/otel"
	"resto/infras/s3"
	categoryService "resto/internal/domains/category/service"
	"resto/internal/domains/menuitem/model"
	"resto/internal/domains/menuitem/model/dto"
	"resto/internal/domains/menuitem/repository"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/hook"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetMenuItem    = "menu_item:get"
	cacheGetAllMenuItem = "menu_item:get_all"
	cacheCountMenuItem  = "menu_item:count"
	// Not matched by the prefixes above, so clearing them keeps the generation.
	cacheListVersion = "menu_item:version"
)

var (
	errMenuItemNotFound = failure.NotFound("menu item not found")
	errDuplicateName    = failure.BadRequestFromString("menu item with this name already exists")
	errInvalidPrice     = failure.BadRequestFromString("price must be a non-negative number")
	errInvalidName      = failure.BadRequestFromString("name must contain letters or digits")
)

type MenuItem interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (dto.MenuItemResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMenuItemsResponse, error)
	Get(ctx context.Context, id string) (dto.MenuItemResponse, error)
	Update(ctx context.Context, req dto.UpdateMenuItemRequest, id string) (dto.MenuItemResponse, error)
	SetAvailability(ctx context.Context, id string, available bool) (dto.MenuItemResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.MenuItem
	category    categoryService.Category
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
	broadcaster hub.Broadcaster
}

func New(
	repo repository.MenuItem,
	category categoryService.Category,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	broadcaster hub.Broadcaster,
) MenuItem {
	return &serviceImpl{
		repo:        repo,
		category:    category,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
		broadcaster: broadcaster,
	}
}

// ParsePrice accepts a decimal string that is finite and not negative.
func ParsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errInvalidPrice
	}

	return price, nil
}

// Create derives the identifier from the name. The duplicate check happens before the insert
// and is not backed by a store constraint, so two concurrent creates can both pass it.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMenuItemRequest) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menuitem.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	price, err := ParsePrice(req.Price)
	if err != nil {
		return res, err
	}

	slug := model.Slugify(req.Name)
	if slug == "" {
		return res, errInvalidName
	}

	category, err := s.requireCategory(ctx, req.CategoryID)
	if err != nil {
		return res, err
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(slug, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check menu item slug")

		return res, fmt.Errorf("failed to check menu item slug: %w", err)
	}

	if exist {
		return res, errDuplicateName
	}

	image, err := s.upload(ctx, req.ImageFile, req.Image)
	if err != nil {
		return res, err
	}

	item := req.ToModel(slug, price, image, user)

	if err = s.repo.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to insert menu item")
		s.removeImage(ctx, image)

		return res, fmt.Errorf("failed to create menu item: %w", err)
	}

	item.CategoryName = category
	res.FromModel(item)

	hooks := []hook.Hook{s.invalidateHook(), s.countHook(item.CategoryID, 1)}
	hooks = append(hooks, s.broadcastHook(event.MenuItemCreated, res, res.ID))
	hook.Run(ctx, hooks...)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMenuItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menuitem.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	version := shared.CacheVersion(ctx, s.cache, cacheListVersion)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllMenuItem, version), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu items")

		return res, nil
	}

	total, err := s.count(ctx, version, req, filter)
	if err != nil {
		return res, err
	}

	items, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return res, fmt.Errorf("failed to get menu items: %w", err)
	}

	res.FromModels(items, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save menu items to cache")
	}

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, version string, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheCountMenuItem, version), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu items")

		return total, fmt.Errorf("failed to count menu items: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, total, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save menu item count to cache")
	}

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menuitem.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetMenuItem, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu item")

		return res, nil
	}

	item, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(item)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save menu item to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMenuItemRequest, id string) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menuitem.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	trim(req.Name)
	trim(req.Description)
	trim(req.CategoryID)

	fields := shared.TransformFields(req, user)

	if req.Price != nil {
		price, err := ParsePrice(*req.Price)
		if err != nil {
			return res, err
		}

		fields[model.FieldPrice] = price
	}

	categoryChanged := req.CategoryID != nil && *req.CategoryID != current.CategoryID
	if categoryChanged {
		if _, err = s.requireCategory(ctx, *req.CategoryID); err != nil {
			return res, err
		}
	}

	image, err := s.upload(ctx, req.ImageFile, req.Image)
	if err != nil {
		return res, err
	}

	if image != "" {
		fields[model.FieldImage] = image
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update menu item")
		s.removeImage(ctx, image)

		return res, fmt.Errorf("failed to update menu item: %w", err)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	hooks := []hook.Hook{s.invalidateHook()}
	if image != "" && current.Image != "" {
		hooks = append(hooks, s.removeImageHook(current.Image))
	}

	if categoryChanged {
		hooks = append(hooks, s.countHook(current.CategoryID, -1), s.countHook(updated.CategoryID, 1))
	}

	hooks = append(hooks, s.broadcastHook(event.MenuItemUpdated, res, id))
	hook.Run(ctx, hooks...)

	return res, nil
}

func (s *serviceImpl) SetAvailability(ctx context.Context, id string, available bool) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menuitem.SetAvailability")
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
		log.Error().Err(err).Msg("failed to update menu item availability")

		return res, fmt.Errorf("failed to update menu item availability: %w", err)
	}

	current.Available = available
	res.FromModel(current)

	hook.Run(ctx, s.invalidateHook(), s.broadcastHook(event.MenuItemAvailabilityChanged, res, id))

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menuitem.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete menu item")

		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	hooks := []hook.Hook{s.invalidateHook(), s.countHook(current.CategoryID, -1)}
	if current.Image != "" {
		hooks = append(hooks, s.removeImageHook(current.Image))
	}

	hooks = append(hooks, s.broadcastHook(event.MenuItemDeleted, nil, id))
	hook.Run(ctx, hooks...)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.MenuItem, error) {
	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return item, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, errMenuItemNotFound
	}

	return item, nil
}

// requireCategory returns the category name, or a client error when it does not exist.
func (s *serviceImpl) requireCategory(ctx context.Context, id string) (string, error) {
	category, err := s.category.Get(ctx, strings.TrimSpace(id))
	if failure.GetCode(err) == http.StatusNotFound {
		return "", failure.BadRequestFromString("category not found") //nolint:wrapcheck
	}

	if err != nil {
		return "", fmt.Errorf("failed to get category: %w", err)
	}

	return category.Name, nil
}

func (s *serviceImpl) upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return "", nil
	}

	url, err := s.s3.Upload(ctx, model.ImageDirectory, file, header)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload menu item image")

		return "", fmt.Errorf("failed to upload menu item image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	if url == "" {
		return
	}

	if err := s.s3.Delete(ctx, url); err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to remove menu item image")
	}
}

func (s *serviceImpl) invalidateHook() hook.Hook {
	return hook.Hook{
		Name: "invalidate menu item caches",
		Fn: func(ctx context.Context) error {
			bumpErr := shared.BumpCacheVersion(ctx, s.cache, cacheListVersion)

			return errors.Join(bumpErr, shared.InvalidateCaches(ctx, s.cache, cacheGetMenuItem, cacheGetAllMenuItem, cacheCountMenuItem))
		},
	}
}

func (s *serviceImpl) countHook(categoryID string, delta int) hook.Hook {
	return hook.Hook{
		Name: fmt.Sprintf("adjust category %s item count by %d", categoryID, delta),
		Fn: func(ctx context.Context) error {
			return s.category.AdjustItemCount(ctx, categoryID, delta) //nolint:wrapcheck
		},
	}
}

func (s *serviceImpl) removeImageHook(url string) hook.Hook {
	return hook.Hook{
		Name: "remove replaced menu item image",
		Fn: func(ctx context.Context) error {
			return s.s3.Delete(ctx, url) //nolint:wrapcheck
		},
	}
}

func (s *serviceImpl) broadcastHook(typ event.Type, item any, id string) hook.Hook {
	return hook.Hook{
		Name: "broadcast " + string(typ),
		Fn: func(ctx context.Context) error {
			s.broadcaster.Publish(ctx, event.TopicMenuItems, event.MenuItemUpdate, event.NewMenuItemChange(typ, item, id))

			return nil
		},
	}
}

func trim(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}
