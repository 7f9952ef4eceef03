package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"resto/shared/constant"
	"resto/shared/dto"
	"resto/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: createdAt, CreatedBy: "admin", ModifiedBy: "cashier-1"})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.Equal(t, "admin", metadata.CreatedBy)
	assert.Equal(t, "cashier-1", metadata.ModifiedBy)
}

func TestNewMetadata(t *testing.T) {
	metadata := dto.NewMetadata("admin")

	assert.Equal(t, "admin", metadata.CreatedBy)
	assert.Equal(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.False(t, metadata.CreatedAt.IsZero())
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			url:      "/v1/orders?page=2&limit=20&sort_by=created_at&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "created_at", SortDir: "ASC"},
		},
		{
			name:           "defaults",
			url:            "/v1/orders",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir},
		},
		{
			name:           "invalid numbers fall back to defaults",
			url:            "/v1/orders?page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir},
		},
		{
			name:     "no defaults",
			url:      "/v1/orders",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := dto.QueryParams{}
			params.FromRequest(httptest.NewRequest("GET", tt.url, nil), tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "price; DROP TABLE orders", SortDir: "DESC"}
	params.RestrictSort("name", "price")
	assert.Empty(t, params.SortBy)

	params = dto.QueryParams{SortBy: "price"}
	params.RestrictSort("name", "price")
	assert.Equal(t, "price", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Eq("orders", "table_id", "t-5"),
		dto.In("orders", "status", []string{"new", "cooking"}),
	)
	group.Add(dto.Filter{Table: "orders", Field: "completed_at", Operator: dto.FilterIsNull})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(orders.table_id = :table_id AND orders.status IN (:status_0, :status_1) AND orders.completed_at IS NULL)", where)
	assert.Equal(t, "t-5", args["table_id"])
	assert.Equal(t, "new", args["status_0"])
	assert.Equal(t, "cooking", args["status_1"])
}

func TestFilterGroup_EmptyInMatchesNothing(t *testing.T) {
	group := dto.And(dto.In("orders", "status", []string{}))

	where, _ := group.GetWhereClause()

	assert.Equal(t, "(FALSE)", where)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilter_Like(t *testing.T) {
	filter := dto.Filter{Table: "menu_items", Field: "name", Operator: dto.FilterOperatorLike, Value: "combo"}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "LOWER(menu_items.name) LIKE LOWER(:name)", where)
	assert.Equal(t, "%combo%", args["name"])
}
