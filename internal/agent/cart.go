package agent

import (
	"errors"
	"slices"
	"sync"

	menuDto "resto/internal/domains/menuitem/model/dto"
	orderModel "resto/internal/domains/order/model"
	orderDto "resto/internal/domains/order/model/dto"
)

const maxLineQuantity = 99

var (
	ErrItemUnavailable = errors.New("menu item is not available")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
	ErrEmptyCart       = errors.New("cart is empty")
)

type CartLine struct {
	MenuItemID string
	Name       string
	Price      float64
	Quantity   int
}

func (l CartLine) Subtotal() float64 {
	return orderModel.RoundCents(l.Price * float64(l.Quantity))
}

// Cart holds the lines a customer is about to order. Prices shown here are a preview;
// the server snapshots its own prices when the order is placed.
type Cart struct {
	mu    sync.Mutex
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add merges quantity into an existing line for the same item.
func (c *Cart) Add(item menuDto.MenuItemResponse, quantity int) error {
	if !item.Available {
		return ErrItemUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(item.ID)
	if idx < 0 {
		if quantity < 1 || quantity > maxLineQuantity {
			return ErrInvalidQuantity
		}

		c.lines = append(c.lines, CartLine{MenuItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: quantity})

		return nil
	}

	total := c.lines[idx].Quantity + quantity
	if quantity < 1 || total > maxLineQuantity {
		return ErrInvalidQuantity
	}

	c.lines[idx].Quantity = total

	return nil
}

// SetQuantity removes the line when quantity drops to zero or below.
func (c *Cart) SetQuantity(menuItemID string, quantity int) error {
	if quantity > maxLineQuantity {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(menuItemID)
	if idx < 0 {
		return nil
	}

	if quantity <= 0 {
		c.lines = slices.Delete(c.lines, idx, idx+1)

		return nil
	}

	c.lines[idx].Quantity = quantity

	return nil
}

func (c *Cart) Remove(menuItemID string) {
	_ = c.SetQuantity(menuItemID, 0)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
}

func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.lines)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}

	return orderModel.RoundCents(total)
}

// Reconcile applies a fresh menu: lines for items that vanished or became unavailable are
// dropped and returned, the rest pick up current names and prices.
func (c *Cart) Reconcile(menu []menuDto.MenuItemResponse) []CartLine {
	current := make(map[string]menuDto.MenuItemResponse, len(menu))
	for _, item := range menu {
		current[item.ID] = item
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var dropped []CartLine

	kept := c.lines[:0]

	for _, line := range c.lines {
		item, ok := current[line.MenuItemID]
		if !ok || !item.Available {
			dropped = append(dropped, line)

			continue
		}

		line.Name = item.Name
		line.Price = item.Price
		kept = append(kept, line)
	}

	c.lines = kept

	return dropped
}

// OrderRequest turns the cart into a create-order payload. tableID may be nil for takeaway.
func (c *Cart) OrderRequest(customerName, orderType string, tableID *string) (orderDto.CreateOrderRequest, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return orderDto.CreateOrderRequest{}, ErrEmptyCart
	}

	req := orderDto.CreateOrderRequest{
		CustomerName: customerName,
		OrderType:    orderType,
		TableID:      tableID,
		Items:        make([]orderDto.OrderItemRequest, len(lines)),
	}

	for i, line := range lines {
		req.Items[i] = orderDto.OrderItemRequest{MenuItemID: line.MenuItemID, Quantity: line.Quantity}
	}

	return req, nil
}

func (c *Cart) indexLocked(menuItemID string) int {
	return slices.IndexFunc(c.lines, func(line CartLine) bool { return line.MenuItemID == menuItemID })
}
