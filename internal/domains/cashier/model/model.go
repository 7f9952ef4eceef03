package model

import (
	"time"

	"resto/shared/model"
)

const (
	TableName  = "cashiers"
	EntityName = "cashier"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldName      = "name"
	FieldPassword  = "password"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

type Cashier struct {
	ID        string     `db:"id"`
	Username  string     `db:"username"`
	Name      string     `db:"name"`
	Password  string     `db:"password"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
