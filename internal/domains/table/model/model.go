package model

import "resto/shared/model"

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID        = "id"
	FieldLabel     = "label"
	FieldCapacity  = "capacity"
	FieldAvailable = "available"
)

// Table is a physical dining table. Its blocked state lives only in realtime signals.
type Table struct {
	ID        string `db:"id"`
	Label     string `db:"label"`
	Capacity  int    `db:"capacity"`
	Available bool   `db:"available"`
	model.Metadata
}
