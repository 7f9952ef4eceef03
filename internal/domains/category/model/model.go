package model

import "resto/shared/model"

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID        = "id"
	FieldName      = "name"
	FieldIcon      = "icon"
	FieldItemCount = "item_count"
)

// Category groups menu items. ItemCount is maintained by menu item hooks and may drift.
type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Icon      string `db:"icon"`
	ItemCount int    `db:"item_count"`
	model.Metadata
}
