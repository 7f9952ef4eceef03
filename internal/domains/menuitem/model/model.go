package model

import (
	"resto/shared/model"
)

const (
	TableName  = "menu_items"
	EntityName = "menu_item"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategoryID  = "category_id"
	FieldImage       = "image"
	FieldAvailable   = "available"

	ImageDirectory = "menu-items"
)

// MenuItem is keyed by the slug of its name. The slug is not unique in storage.
type MenuItem struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	Price        float64 `db:"price"`
	CategoryID   string  `db:"category_id"`
	Image        string  `db:"image"`
	Available    bool    `db:"available"`
	CategoryName string  `db:"category_name" table:"categories" column:"name"`
	model.Metadata
}

func (MenuItem) GetJoinQuery() string {
	return "LEFT JOIN categories ON categories.id = menu_items.category_id"
}
