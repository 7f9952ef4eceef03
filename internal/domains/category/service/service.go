package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"resto/config"
	"resto/infras/otel"
	"resto/internal/domains/category/model"
	"resto/internal/domains/category/model/dto"
	"resto/internal/domains/category/repository"
	menuModel "resto/internal/domains/menuitem/model"
	menuRepo "resto/internal/domains/menuitem/repository"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory    = "category:get"
	cacheGetAllCategory = "category:get_all"
	cacheCountCategory  = "category:count"
)

var errCategoryNotFound = failure.NotFound("category not found")

type Category interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCategoriesResponse, error)
	Get(ctx context.Context, id string) (dto.CategoryResponse, error)
	Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error

	// AdjustItemCount adds delta to the item count with a read then a write, clamping at zero.
	// Concurrent callers can lose updates.
	AdjustItemCount(ctx context.Context, id string, delta int) error
}

type serviceImpl struct {
	repo     repository.Category
	menuRepo menuRepo.MenuItem
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Category, menuRepo menuRepo.MenuItem, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &serviceImpl{
		repo:     repo,
		menuRepo: menuRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	if err = s.ensureNameFree(ctx, req.Name, ""); err != nil {
		return res, err
	}

	category := req.ToModel(user)

	if err = s.repo.Insert(ctx, category); err != nil {
		log.Error().Err(err).Msg("failed to insert category")

		return res, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidate(ctx)
	res.FromModel(category)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCategory, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for categories")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	categories, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get categories")

		return res, fmt.Errorf("failed to get categories: %w", err)
	}

	res.FromModels(categories, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save categories to cache")
	}

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCategory, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count categories")

		return total, fmt.Errorf("failed to count categories: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, total, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save category count to cache")
	}

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for category")

		return res, nil
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(category)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save category to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	category, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name

		if err = s.ensureNameFree(ctx, name, id); err != nil {
			return res, err
		}

		category.Name = name
	}

	if req.Icon != nil {
		category.Icon = strings.TrimSpace(*req.Icon)
		req.Icon = &category.Icon
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update category")

		return res, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidate(ctx)

	if req.Name != nil {
		// menu item listings carry the category name
		_ = shared.InvalidateCaches(ctx, s.cache, menuModel.EntityName+":")
	}

	res.FromModel(category)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	inUse, err := s.menuRepo.Exist(ctx, gDto.And(gDto.Eq(menuModel.TableName, menuModel.FieldCategoryID, id)))
	if err != nil {
		log.Error().Err(err).Msg("failed to check menu items of category")

		return fmt.Errorf("failed to check menu items of category: %w", err)
	}

	if inUse {
		return failure.Conflict("category still has menu items") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete category")

		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) AdjustItemCount(ctx context.Context, id string, delta int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.AdjustItemCount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	count := max(category.ItemCount+delta, 0)

	fields := map[string]any{
		model.FieldItemCount:     count,
		constant.FieldModifiedAt: category.ModifiedAt,
		constant.FieldModifiedBy: category.ModifiedBy,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("category", id).Int("delta", delta).Msg("failed to adjust category item count")

		return fmt.Errorf("failed to adjust category item count: %w", err)
	}

	scope.SetAttribute("item_count", count)
	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Category, error) {
	category, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get category")

		return category, fmt.Errorf("failed to get category: %w", err)
	}

	if category.ID == constant.Empty {
		return category, errCategoryNotFound
	}

	return category, nil
}

func (s *serviceImpl) ensureNameFree(ctx context.Context, name, exceptID string) error {
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldName, strings.TrimSpace(name)))
	if exceptID != "" {
		filter.Add(gDto.Filter{Table: model.TableName, Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: exceptID})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check category name")

		return fmt.Errorf("failed to check category name: %w", err)
	}

	if exist {
		return failure.Conflict("category with this name already exists") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	_ = shared.InvalidateCaches(ctx, s.cache, cacheGetCategory, cacheGetAllCategory, cacheCountCategory)
}
