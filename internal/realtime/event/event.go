// Package event names the realtime topics and the payloads published on them.
package event

import (
	"encoding/json"
	"strings"
	"time"

	"resto/shared/timezone"
)

type Topic string

const (
	TopicTables    Topic = "tables"
	TopicMenuItems Topic = "menu-items"
	TopicOrders    Topic = "orders"
)

// Topics lists every topic a connection may subscribe to.
var Topics = []Topic{TopicTables, TopicMenuItems, TopicOrders}

func ParseTopic(raw string) (Topic, bool) {
	for _, topic := range Topics {
		if string(topic) == raw {
			return topic, true
		}
	}

	return "", false
}

type Name string

const (
	TableUpdate    Name = "table_update"
	TableBlocked   Name = "table_blocked"
	TableReleased  Name = "table_released"
	BellRequest    Name = "bell_request"
	BillRequest    Name = "bill_request"
	MenuItemUpdate Name = "menu_item_update"
	OrderUpdate    Name = "order_update"

	Subscribed   Name = "subscribed"
	Unsubscribed Name = "unsubscribed"
	Error        Name = "error"
)

// Control message prefixes sent by clients, e.g. "subscribe:orders".
const (
	SubscribePrefix   = "subscribe:"
	UnsubscribePrefix = "unsubscribe:"
)

// IsServiceRequest reports whether name is a bell or bill request.
func IsServiceRequest(name Name) bool {
	return name == BellRequest || name == BillRequest
}

// IsTableSignal reports whether name is half of the block/release pair.
func IsTableSignal(name Name) bool {
	return name == TableBlocked || name == TableReleased
}

type Type string

const (
	TableCreated             Type = "table_created"
	TableUpdated             Type = "table_updated"
	TableDeleted             Type = "table_deleted"
	TableAvailabilityChanged Type = "table_availability_changed"

	MenuItemCreated             Type = "menu_item_created"
	MenuItemUpdated             Type = "menu_item_updated"
	MenuItemDeleted             Type = "menu_item_deleted"
	MenuItemAvailabilityChanged Type = "menu_item_availability_changed"

	OrderCreated       Type = "order_created"
	OrderUpdated       Type = "order_updated"
	OrderStatusChanged Type = "order_status_changed"
)

// Envelope is the frame exchanged over the websocket in both directions.
type Envelope struct {
	Event Name            `json:"event"`
	Topic Topic           `json:"topic,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ParseControl accepts either a bare control string or a JSON envelope.
func ParseControl(raw []byte) (Envelope, error) {
	text := strings.TrimSpace(string(raw))

	if !strings.HasPrefix(text, "{") {
		return Envelope{Event: Name(text)}, nil
	}

	var envelope Envelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return Envelope{}, err //nolint:wrapcheck
	}

	return envelope, nil
}

type TableChange struct {
	Type      Type   `json:"type"`
	Table     any    `json:"table,omitempty"`
	TableID   string `json:"tableId,omitempty"`
	Timestamp string `json:"timestamp"`
}

// TableSignal carries both the block/release pair and bell/bill requests. It is never persisted.
type TableSignal struct {
	TableID    string `json:"tableId"`
	TableLabel string `json:"tableLabel"`
	Timestamp  string `json:"timestamp"`
}

type MenuItemChange struct {
	Type       Type   `json:"type"`
	MenuItem   any    `json:"menuItem,omitempty"`
	MenuItemID string `json:"menuItemId,omitempty"`
	Timestamp  string `json:"timestamp"`
}

type OrderChange struct {
	Type      Type   `json:"type"`
	Order     any    `json:"order,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
	Status    string `json:"status,omitempty"`
	Timestamp string `json:"timestamp"`
}

type SubscriptionAck struct {
	Topic Topic `json:"topic"`
}

type ErrorNotice struct {
	Message string `json:"message"`
}

// Timestamp renders now in the application timezone.
func Timestamp() string {
	return timezone.Now().Format(time.RFC3339)
}

func NewTableChange(typ Type, table any, tableID string) TableChange {
	return TableChange{Type: typ, Table: table, TableID: tableID, Timestamp: Timestamp()}
}

func NewTableSignal(tableID, tableLabel string) TableSignal {
	return TableSignal{TableID: tableID, TableLabel: tableLabel, Timestamp: Timestamp()}
}

func NewMenuItemChange(typ Type, menuItem any, menuItemID string) MenuItemChange {
	return MenuItemChange{Type: typ, MenuItem: menuItem, MenuItemID: menuItemID, Timestamp: Timestamp()}
}

func NewOrderChange(typ Type, order any, orderID, status string) OrderChange {
	return OrderChange{Type: typ, Order: order, OrderID: orderID, Status: status, Timestamp: Timestamp()}
}
