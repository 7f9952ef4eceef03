package dto

import (
	"strings"
	"time"

	"resto/internal/domains/order/model"
	"resto/shared"
	gDto "resto/shared/dto"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	MenuItemID string `json:"menuItemId" validate:"notblank"`
	Quantity   int    `json:"quantity"   validate:"min=1,max=99"`
}

type CreateOrderRequest struct {
	CustomerName string             `json:"customerName" validate:"notblank,max=100"`
	OrderType    string             `json:"orderType"    validate:"oneof=dine_in takeaway"`
	TableID      *string            `json:"tableId"      validate:"omitempty,notblank"`
	Items        []OrderItemRequest `json:"items"        validate:"required,min=1,dive"`
}

// ToModel builds a new order from already snapshotted line items.
func (c *CreateOrderRequest) ToModel(items model.Items, cashierID *string, user string) model.Order {
	return model.Order{
		ID:           uuid.NewString(),
		CustomerName: strings.TrimSpace(c.CustomerName),
		OrderType:    c.OrderType,
		TableID:      c.TableID,
		Items:        items,
		Total:        items.Total(),
		Status:       model.StatusNew,
		CashierID:    cashierID,
		Metadata:     gDto.NewMetadata(user),
	}
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"oneof=new cooking ready completed cancelled"`
}

type PayRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"oneof=cash card qris"`
}

type OrderResponse struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customerName"`
	OrderType     string       `json:"orderType"`
	TableID       *string      `json:"tableId"`
	Items         model.Items  `json:"items"`
	Total         float64      `json:"total"`
	Status        model.Status `json:"status"`
	IsPaid        bool         `json:"isPaid"`
	PaymentMethod *string      `json:"paymentMethod"`
	IsSettled     bool         `json:"isSettled"`
	CashierID     *string      `json:"cashierId"`
	PaidAt        *time.Time   `json:"paidAt"`
	SettledAt     *time.Time   `json:"settledAt"`
	CompletedAt   *time.Time   `json:"completedAt"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(model model.Order) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.OrderType = model.OrderType
	r.TableID = model.TableID
	r.Items = model.Items
	r.Total = model.Total
	r.Status = model.Status
	r.IsPaid = model.IsPaid
	r.PaymentMethod = model.PaymentMethod
	r.IsSettled = model.IsSettled
	r.CashierID = model.CashierID
	r.PaidAt = model.PaidAt
	r.SettledAt = model.SettledAt
	r.CompletedAt = model.CompletedAt
	r.Metadata.FromModel(model.Metadata)
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"totalPage"`
	TotalData int             `json:"totalData"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}
