package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"resto/shared/model"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID            = "id"
	FieldTableID       = "table_id"
	FieldStatus        = "status"
	FieldIsPaid        = "is_paid"
	FieldPaymentMethod = "payment_method"
	FieldIsSettled     = "is_settled"
	FieldCashierID     = "cashier_id"
	FieldPaidAt        = "paid_at"
	FieldSettledAt     = "settled_at"
	FieldCompletedAt   = "completed_at"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusCooking   Status = "cooking"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusNew:     {StatusCooking, StatusCancelled},
	StatusCooking: {StatusReady, StatusCancelled},
	StatusReady:   {StatusCompleted},
}

// CanTransition reports whether an order may move from one status to the next.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Terminal statuses accept no further transition.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active statuses are the ones a kitchen still works on.
var Active = []Status{StatusNew, StatusCooking, StatusReady}

const (
	TypeDineIn   = "dine_in"
	TypeTakeaway = "takeaway"

	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentQRIS = "qris"
)

// Item is a snapshot of a menu item at order time. Later menu edits never reach it.
type Item struct {
	MenuItemID   string  `json:"menuItemId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image,omitempty"`
	CategoryID   string  `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
}

// Subtotal is price times quantity in cents precision.
func (i Item) Subtotal() float64 {
	return RoundCents(i.Price * float64(i.Quantity))
}

// Items is stored as a JSONB array.
type Items []Item

func (i Items) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}

	raw, err := json.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	return raw, nil
}

func (i *Items) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*i = Items{}

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return errors.New("unsupported order items column type")
	}

	if err := json.Unmarshal(raw, i); err != nil {
		return fmt.Errorf("failed to decode order items: %w", err)
	}

	return nil
}

// Total sums every line and rounds to cents.
func (i Items) Total() float64 {
	var total float64
	for _, item := range i {
		total += item.Price * float64(item.Quantity)
	}

	return RoundCents(total)
}

func RoundCents(value float64) float64 {
	return math.Round(value*100) / 100
}

type Order struct {
	ID            string     `db:"id"`
	CustomerName  string     `db:"customer_name"`
	OrderType     string     `db:"order_type"`
	TableID       *string    `db:"table_id"`
	Items         Items      `db:"items"`
	Total         float64    `db:"total"`
	Status        Status     `db:"status"`
	IsPaid        bool       `db:"is_paid"`
	PaymentMethod *string    `db:"payment_method"`
	IsSettled     bool       `db:"is_settled"`
	CashierID     *string    `db:"cashier_id"`
	PaidAt        *time.Time `db:"paid_at"`
	SettledAt     *time.Time `db:"settled_at"`
	CompletedAt   *time.Time `db:"completed_at"`
	model.Metadata
}
