package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	s3Mocks "resto/infras/s3/mocks"
	categoryDto "resto/internal/domains/category/model/dto"
	categoryMocks "resto/internal/domains/category/service/mocks"
	menuMocks "resto/internal/domains/menuitem/mocks"
	"resto/internal/domains/menuitem/model"
	"resto/internal/domains/menuitem/model/dto"
	"resto/internal/domains/menuitem/service"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
	"resto/shared/cache"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
)

type fixture struct {
	repo     *menuMocks.MockMenuItem
	category *categoryMocks.MockCategory
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	conn     *hub.LocalConn
	svc      service.MenuItem
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	return newFixtureWithCache(t, nil)
}

// newFixtureWithCache uses c instead of a cache mock when it is not nil.
func newFixtureWithCache(t *testing.T, c cache.RedisCache) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	h := hub.New(mocks.NewOtel())
	conn := hub.NewLocalConn("kitchen", 16)
	require.NoError(t, h.Subscribe(conn, event.TopicMenuItems))

	f := fixture{
		repo:     menuMocks.NewMockMenuItem(ctrl),
		category: categoryMocks.NewMockCategory(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		conn:     conn,
	}

	if c == nil {
		c = f.cache
	}

	f.svc = service.New(f.repo, f.category, cfg, c, mocks.NewOtel(), f.s3, h)

	return f
}

func (f fixture) expectVersionBump() {
	f.cache.EXPECT().Save(gomock.Any(), "menu_item:version", gomock.Any(), 0).Return(nil)
}

func (f fixture) changes() []event.MenuItemChange {
	var out []event.MenuItemChange

	for {
		select {
		case msg := <-f.conn.Messages():
			out = append(out, msg.Payload.(event.MenuItemChange))
		default:
			return out
		}
	}
}

func (f fixture) expectCategory(id, name string) {
	f.category.EXPECT().Get(gomock.Any(), id).Return(categoryDto.CategoryResponse{ID: id, Name: name}, nil)
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
}

func createRequest() dto.CreateMenuItemRequest {
	return dto.CreateMenuItemRequest{
		Name:        "Deluxe Combo",
		Description: "Burger, fries and a drink",
		Price:       "8.99",
		CategoryID:  "c1",
	}
}

func TestParsePrice(t *testing.T) {
	for _, raw := range []string{"0", "8.99", " 12 "} {
		_, err := service.ParsePrice(raw)
		assert.NoError(t, err, raw)
	}

	for _, raw := range []string{"", "-1", "abc", "NaN", "Inf"} {
		_, err := service.ParsePrice(raw)
		assert.Equal(t, 400, failure.GetCode(err), raw)
	}
}

func TestMenuItemService_Create(t *testing.T) {
	t.Run("slug identifier with hooks in order", func(t *testing.T) {
		f := newFixture(t)

		f.expectCategory("c1", "Combos")
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item model.MenuItem) error {
			assert.Equal(t, "deluxe-combo", item.ID)
			assert.InDelta(t, 8.99, item.Price, 0.0001)
			assert.True(t, item.Available)

			return nil
		})

		f.expectVersionBump()
		gomock.InOrder(
			f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3),
			f.category.EXPECT().AdjustItemCount(gomock.Any(), "c1", 1).Return(nil),
		)

		res, err := f.svc.Create(userCtx(), createRequest())
		require.NoError(t, err)
		assert.Equal(t, "deluxe-combo", res.ID)
		assert.Equal(t, "Combos", res.CategoryName)

		changes := f.changes()
		require.Len(t, changes, 1)
		assert.Equal(t, event.MenuItemCreated, changes[0].Type)
		assert.Equal(t, "deluxe-combo", changes[0].MenuItemID)
	})

	t.Run("duplicate name rejected by the pre-check", func(t *testing.T) {
		f := newFixture(t)

		f.expectCategory("c1", "Combos")
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(userCtx(), createRequest())
		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "menu item with this name already exists", err.Error())
		assert.Empty(t, f.changes())
	})

	t.Run("negative price", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.Price = "-2"

		_, err := f.svc.Create(userCtx(), req)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newFixture(t)

		f.category.EXPECT().Get(gomock.Any(), "c1").Return(categoryDto.CategoryResponse{}, failure.NotFound("category not found"))

		_, err := f.svc.Create(userCtx(), createRequest())
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("counter failure still broadcasts", func(t *testing.T) {
		f := newFixture(t)

		f.expectCategory("c1", "Combos")
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.category.EXPECT().AdjustItemCount(gomock.Any(), "c1", 1).Return(errors.New("database error"))

		_, err := f.svc.Create(userCtx(), createRequest())
		require.NoError(t, err)
		assert.Len(t, f.changes(), 1)
	})

	t.Run("uploaded image removed when insert fails", func(t *testing.T) {
		f := newFixture(t)

		header := &multipart.FileHeader{Filename: "combo.png", Header: textproto.MIMEHeader{}, Size: 3}
		req := createRequest()
		req.Image = header
		req.ImageFile = nopFile{bytes.NewReader([]byte("png"))}

		f.expectCategory("c1", "Combos")
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.s3.EXPECT().Upload(gomock.Any(), model.ImageDirectory, gomock.Any(), header).Return("https://bucket/menu-items/x.png", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		f.s3.EXPECT().Delete(gomock.Any(), "https://bucket/menu-items/x.png").Return(nil)

		_, err := f.svc.Create(userCtx(), req)
		require.Error(t, err)
		assert.Empty(t, f.changes())
	})
}

func TestMenuItemService_Update(t *testing.T) {
	t.Run("category change moves the count", func(t *testing.T) {
		f := newFixture(t)

		newCategory := "c2"
		price := "10.50"

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "deluxe-combo", CategoryID: "c1", Price: 8.99}, nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "deluxe-combo", CategoryID: "c2", Price: 10.5}, nil),
		)
		f.expectCategory("c2", "Mains")
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "c2", fields[model.FieldCategoryID])
				assert.InDelta(t, 10.5, fields[model.FieldPrice], 0.0001)
				assert.NotContains(t, fields, model.FieldID)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3)
		f.expectVersionBump()
		gomock.InOrder(
			f.category.EXPECT().AdjustItemCount(gomock.Any(), "c1", -1).Return(nil),
			f.category.EXPECT().AdjustItemCount(gomock.Any(), "c2", 1).Return(nil),
		)

		res, err := f.svc.Update(userCtx(), dto.UpdateMenuItemRequest{CategoryID: &newCategory, Price: &price}, "deluxe-combo")
		require.NoError(t, err)
		assert.Equal(t, "deluxe-combo", res.ID)

		changes := f.changes()
		require.Len(t, changes, 1)
		assert.Equal(t, event.MenuItemUpdated, changes[0].Type)
	})

	t.Run("missing item", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{}, nil)

		_, err := f.svc.Update(userCtx(), dto.UpdateMenuItemRequest{}, "nope")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestMenuItemService_SetAvailability(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "iced-tea", Available: true}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.expectVersionBump()

	res, err := f.svc.SetAvailability(userCtx(), "iced-tea", false)
	require.NoError(t, err)
	assert.False(t, res.Available)

	changes := f.changes()
	require.Len(t, changes, 1)
	assert.Equal(t, event.MenuItemAvailabilityChanged, changes[0].Type)
}

func TestMenuItemService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "iced-tea", CategoryID: "c1", Image: "https://bucket/menu-items/a.png"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.expectVersionBump()
	f.category.EXPECT().AdjustItemCount(gomock.Any(), "c1", -1).Return(nil)
	f.s3.EXPECT().Delete(gomock.Any(), "https://bucket/menu-items/a.png").Return(nil)

	require.NoError(t, f.svc.Delete(userCtx(), "iced-tea"))

	changes := f.changes()
	require.Len(t, changes, 1)
	assert.Equal(t, event.MenuItemDeleted, changes[0].Type)
	assert.Equal(t, "iced-tea", changes[0].MenuItemID)
	assert.Nil(t, changes[0].MenuItem)
}

func TestMenuItemService_GetAll(t *testing.T) {
	t.Run("second read is served from cache", func(t *testing.T) {
		f := newFixtureWithCache(t, newMemoryCache())

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.MenuItem{{ID: "iced-tea", Available: true}}, nil)

		for range 2 {
			res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
			require.NoError(t, err)
			require.Len(t, res.MenuItems, 1)
		}
	})

	t.Run("list read before a change is not served after it", func(t *testing.T) {
		memory := newMemoryCache()
		f := newFixtureWithCache(t, memory)
		params := gDto.QueryParams{Page: 1, Limit: 10}

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil).Times(2)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		gomock.InOrder(
			// The change commits and invalidates while the first read is still in flight.
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.MenuItem, error) {
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "iced-tea", Available: true}, nil)

					_, err := f.svc.SetAvailability(userCtx(), "iced-tea", false)
					require.NoError(t, err)

					return []model.MenuItem{{ID: "iced-tea", Available: true}}, nil
				}),
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.MenuItem{{ID: "iced-tea", Available: false}}, nil),
		)

		stale, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.NoError(t, err)
		assert.True(t, stale.MenuItems[0].Available)

		fresh, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.NoError(t, err)
		assert.False(t, fresh.MenuItems[0].Available)
		assert.Len(t, f.changes(), 1)
	})
}

// memoryCache stores values as the redis cache does, without expiry.
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) Save(_ context.Context, key string, value any, _ int) error {
	raw, ok := value.(string)
	if !ok {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}

		raw = string(encoded)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = []byte(raw)

	return nil
}

func (m *memoryCache) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	raw, ok := m.values[key]
	m.mu.Unlock()

	if !ok {
		return errors.New("cache miss")
	}

	if v, ok := value.(*string); ok {
		*v = string(raw)

		return nil
	}

	return json.Unmarshal(raw, value)
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

func (m *memoryCache) Clear(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.values {
		if strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
			delete(m.values, key)
		}
	}

	return nil
}

type nopFile struct {
	*bytes.Reader
}

func (nopFile) Close() error { return nil }
