package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resto/shared"
	"resto/shared/cache/mocks"
	"resto/shared/constant"
	"resto/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))
	assert.True(t, *shared.ConvertStringToBool("true"))
	assert.False(t, *shared.ConvertStringToBool("0"))
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 4 ")
	assert.NoError(t, err)
	assert.Equal(t, 4, value)

	_, err = shared.ConvertStringToInt("four")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 3, shared.CalculateTotalPage(21, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(20, 10))
}

type updateTableRequest struct {
	Label    string `db:"label"`
	Capacity *int   `db:"capacity"`
	Note     string
}

func TestTransformFields(t *testing.T) {
	capacity := 6

	fields := shared.TransformFields(updateTableRequest{Label: "T-05", Capacity: &capacity, Note: "ignored"}, "admin")

	assert.Equal(t, "T-05", fields["label"])
	assert.Equal(t, 6, fields["capacity"])
	assert.Equal(t, "admin", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.NotContains(t, fields, "Note")
}

func TestTransformFieldsSkipsZeroValues(t *testing.T) {
	fields := shared.TransformFields(updateTableRequest{}, "admin")

	assert.Len(t, fields, 2)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("t-1", "id", "restaurant_tables")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(restaurant_tables.id = :id)", where)
	assert.Equal(t, "t-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "menu_item:get", shared.BuildCacheKey("menu_item:get"))
	assert.Equal(t, "menu_item:get:deluxe-combo", shared.BuildCacheKey("menu_item:get", "deluxe-combo"))
}

func TestBuildCacheKeyWithQueryIsStable(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("drinks", "category_id", "menu_items")

	first := shared.BuildCacheKeyWithQuery("menu_item:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("menu_item:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("menu_item:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "menu_item:gets*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "menu_item:count*").Return(errors.New("redis down"))

	err := shared.InvalidateCaches(context.Background(), mockCache, "menu_item:gets", "menu_item:count")

	assert.Error(t, err)
}

func TestCacheVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "menu_item:version", gomock.Any()).Return(errors.New("redis: nil"))
	assert.Equal(t, "0", shared.CacheVersion(context.Background(), mockCache, "menu_item:version"))

	mockCache.EXPECT().Get(gomock.Any(), "menu_item:version", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, value any) error {
			*value.(*string) = "k3x"

			return nil
		})
	assert.Equal(t, "k3x", shared.CacheVersion(context.Background(), mockCache, "menu_item:version"))
}

func TestBumpCacheVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockRedisCache(ctrl)

	var versions []string

	mockCache.EXPECT().Save(gomock.Any(), "menu_item:version", gomock.Any(), 0).DoAndReturn(
		func(_ context.Context, _ string, value any, _ int) error {
			versions = append(versions, value.(string))

			return nil
		}).Times(2)

	assert.NoError(t, shared.BumpCacheVersion(context.Background(), mockCache, "menu_item:version"))
	time.Sleep(time.Millisecond)
	assert.NoError(t, shared.BumpCacheVersion(context.Background(), mockCache, "menu_item:version"))

	assert.NotEqual(t, versions[0], versions[1])

	mockCache.EXPECT().Save(gomock.Any(), "menu_item:version", gomock.Any(), 0).Return(errors.New("redis down"))
	assert.Error(t, shared.BumpCacheVersion(context.Background(), mockCache, "menu_item:version"))
}
