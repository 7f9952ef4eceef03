package dto

import (
	"strings"

	"resto/internal/domains/category/model"
	"resto/shared"
	gDto "resto/shared/dto"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"notblank,max=100"`
	Icon string `json:"icon" validate:"omitempty,max=100"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	return model.Category{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Icon:     strings.TrimSpace(c.Icon),
		Metadata: gDto.NewMetadata(user),
	}
}

type UpdateCategoryRequest struct {
	Name *string `db:"name" json:"name" validate:"omitempty,notblank,max=100"`
	Icon *string `db:"icon" json:"icon" validate:"omitempty,max=100"`
}

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	ItemCount int    `json:"itemCount"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.Icon = model.Icon
	r.ItemCount = model.ItemCount
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"totalPage"`
	TotalData  int                `json:"totalData"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
