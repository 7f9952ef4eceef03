package dto

import (
	"mime/multipart"
	"strings"

	"resto/internal/domains/menuitem/model"
	"resto/shared"
	gDto "resto/shared/dto"
)

// CreateMenuItemRequest is read from a multipart form. Price stays a string until the service parses it.
type CreateMenuItemRequest struct {
	Name        string                `json:"name"        validate:"notblank,max=150"`
	Description string                `json:"description" validate:"notblank,max=1000"`
	Price       string                `json:"price"       validate:"notblank"`
	CategoryID  string                `json:"categoryId"  validate:"notblank"`
	Available   *bool                 `json:"available"`
	Image       *multipart.FileHeader `json:"image"       swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile   multipart.File        `json:"-"           validate:"-"`
}

func (c *CreateMenuItemRequest) ToModel(id string, price float64, image, user string) model.MenuItem {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		Price:       price,
		CategoryID:  strings.TrimSpace(c.CategoryID),
		Image:       image,
		Available:   available,
		Metadata:    gDto.NewMetadata(user),
	}
}

// UpdateMenuItemRequest only touches the fields that were sent. The identifier never changes.
type UpdateMenuItemRequest struct {
	Name        *string               `db:"name"        json:"name"        validate:"omitempty,notblank,max=150"`
	Description *string               `db:"description" json:"description" validate:"omitempty,notblank,max=1000"`
	Price       *string               `json:"price"       validate:"omitempty,notblank"`
	CategoryID  *string               `db:"category_id" json:"categoryId"  validate:"omitempty,notblank"`
	Available   *bool                 `db:"available"   json:"available"`
	Image       *multipart.FileHeader `json:"image"       swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile   multipart.File        `json:"-"           validate:"-"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type MenuItemResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName,omitempty"`
	Image        string  `json:"image,omitempty"`
	Available    bool    `json:"available"`
	gDto.Metadata
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.CategoryID = model.CategoryID
	r.CategoryName = model.CategoryName
	r.Image = model.Image
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetMenuItemsResponse struct {
	MenuItems []MenuItemResponse `json:"menuItems"`
	TotalPage int                `json:"totalPage"`
	TotalData int                `json:"totalData"`
}

func (r *GetMenuItemsResponse) FromModels(models []model.MenuItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.MenuItems = make([]MenuItemResponse, len(models))
	for i, mod := range models {
		r.MenuItems[i].FromModel(mod)
	}
}
