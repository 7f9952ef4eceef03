package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	orderModel "resto/internal/domains/order/model"
	orderDto "resto/internal/domains/order/model/dto"
	"resto/internal/realtime/event"

	"github.com/rs/zerolog/log"
)

const releaseTimeout = 5 * time.Second

var ErrNoSession = errors.New("customer session is not running")

// OrderPlacer submits a cart. APIClient implements it.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req orderDto.CreateOrderRequest) (orderDto.OrderResponse, error)
}

// CustomerSession is a guest ordering at one table. While it runs the table is announced as
// blocked; it is released when the session ends, whatever the reason.
type CustomerSession struct {
	*Menu

	placer OrderPlacer
	table  event.TableSignal

	mu     sync.Mutex
	stream Stream
	placed []orderDto.OrderResponse
}

func NewCustomerSession(src Source, placer OrderPlacer, tableID, tableLabel string, opts ...Option) *CustomerSession {
	return &CustomerSession{
		Menu:   NewMenu(src, opts...),
		placer: placer,
		table:  event.TableSignal{TableID: tableID, TableLabel: tableLabel},
	}
}

func (c *CustomerSession) TableID() string {
	return c.table.TableID
}

// Run blocks the table, then follows the menu until ctx ends or the stream closes.
func (c *CustomerSession) Run(ctx context.Context, stream Stream) error {
	c.setStream(stream)

	if err := stream.Signal(ctx, event.TableBlocked, c.table); err != nil {
		c.setStream(nil)

		return fmt.Errorf("failed to block table %s: %w", c.table.TableID, err)
	}

	defer func() {
		c.setStream(nil)

		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		// A dropped socket is released by the server when it notices the disconnect.
		if err := stream.Signal(releaseCtx, event.TableReleased, c.table); err != nil {
			log.Warn().Err(err).Str("table", c.table.TableID).Msg("failed to release table")
		}
	}()

	return c.Menu.Run(ctx, stream)
}

// Checkout places the cart as a dine-in order for the session's table and empties the cart.
func (c *CustomerSession) Checkout(ctx context.Context, customerName string) (orderDto.OrderResponse, error) {
	tableID := c.table.TableID

	req, err := c.Cart.OrderRequest(customerName, orderModel.TypeDineIn, &tableID)
	if err != nil {
		return orderDto.OrderResponse{}, err
	}

	order, err := c.placer.CreateOrder(ctx, req)
	if err != nil {
		return orderDto.OrderResponse{}, fmt.Errorf("failed to place order: %w", err)
	}

	c.Cart.Clear()

	c.mu.Lock()
	c.placed = append(c.placed, order)
	c.mu.Unlock()

	return order, nil
}

// Placed lists the orders this session submitted.
func (c *CustomerSession) Placed() []orderDto.OrderResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]orderDto.OrderResponse(nil), c.placed...)
}

// CallWaiter rings the bell for the table.
func (c *CustomerSession) CallWaiter(ctx context.Context) error {
	return c.request(ctx, event.BellRequest)
}

// RequestBill asks the cashier to bring the bill.
func (c *CustomerSession) RequestBill(ctx context.Context) error {
	return c.request(ctx, event.BillRequest)
}

func (c *CustomerSession) request(ctx context.Context, name event.Name) error {
	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()

	if stream == nil {
		return ErrNoSession
	}

	if err := stream.Signal(ctx, name, c.table); err != nil {
		return fmt.Errorf("failed to send %s: %w", name, err)
	}

	return nil
}

func (c *CustomerSession) setStream(stream Stream) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stream = stream
}
