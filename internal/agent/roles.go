package agent

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	menuDto "resto/internal/domains/menuitem/model/dto"
	orderModel "resto/internal/domains/order/model"
	orderDto "resto/internal/domains/order/model/dto"
	tableDto "resto/internal/domains/table/model/dto"
	"resto/internal/realtime/event"
	"resto/shared/constant"

	"github.com/rs/zerolog/log"
)

const inboxLimit = 50

// Source is the read side an agent pulls from. APIClient satisfies it.
type Source interface {
	Orders(ctx context.Context, query url.Values) ([]orderDto.OrderResponse, error)
	Tables(ctx context.Context, query url.Values) ([]tableDto.TableResponse, error)
	MenuItems(ctx context.Context, query url.Values) ([]menuDto.MenuItemResponse, error)
}

func oldestFirst(query url.Values) url.Values {
	query.Set(constant.RequestParamSortBy, constant.FieldCreatedAt)
	query.Set(constant.RequestParamSortDir, "ASC")

	return query
}

// NewKitchenBoard follows every order the kitchen still has to work on.
func NewKitchenBoard(src Source, opts ...Option) *Agent[orderDto.OrderResponse] {
	statuses := make([]string, len(orderModel.Active))
	for i, status := range orderModel.Active {
		statuses[i] = string(status)
	}

	query := oldestFirst(url.Values{"status": {strings.Join(statuses, ",")}})

	return New("kitchen-board", event.TopicOrders, func(ctx context.Context) ([]orderDto.OrderResponse, error) {
		return src.Orders(ctx, query)
	}, opts...)
}

// NewOrderTracker follows the orders placed for one table.
func NewOrderTracker(src Source, tableID string, opts ...Option) *Agent[orderDto.OrderResponse] {
	query := oldestFirst(url.Values{"tableId": {tableID}})

	return New("order-tracker:"+tableID, event.TopicOrders, func(ctx context.Context) ([]orderDto.OrderResponse, error) {
		return src.Orders(ctx, query)
	}, opts...)
}

// Notification is a bell or bill request shown to the cashier.
type Notification struct {
	Kind       event.Name
	TableID    string
	TableLabel string
	Timestamp  string
}

// CashierDashboard follows unsettled orders and collects bell and bill requests. Requests
// are rendered straight from the payload since nothing about them is stored.
type CashierDashboard struct {
	*Agent[orderDto.OrderResponse]

	mu    sync.Mutex
	inbox []Notification
}

func NewCashierDashboard(src Source, opts ...Option) *CashierDashboard {
	query := oldestFirst(url.Values{"isSettled": {"false"}})

	opts = append(opts,
		WithTopics(event.TopicTables),
		WithRefetchFilter(func(ev Event) bool { return ev.Topic == event.TopicOrders }),
	)

	dashboard := &CashierDashboard{
		Agent: New("cashier-dashboard", event.TopicOrders, func(ctx context.Context) ([]orderDto.OrderResponse, error) {
			return src.Orders(ctx, query)
		}, opts...),
	}

	dashboard.Observe(dashboard.collect)

	return dashboard
}

func (d *CashierDashboard) collect(ev Event) {
	if !event.IsServiceRequest(ev.Name) {
		return
	}

	var signal event.TableSignal
	if err := ev.Decode(&signal); err != nil {
		log.Warn().Err(err).Str("event", string(ev.Name)).Msg("dropping malformed service request")

		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.inbox = append(d.inbox, Notification{
		Kind:       ev.Name,
		TableID:    signal.TableID,
		TableLabel: signal.TableLabel,
		Timestamp:  signal.Timestamp,
	})

	if len(d.inbox) > inboxLimit {
		d.inbox = slices.Clone(d.inbox[len(d.inbox)-inboxLimit:])
	}
}

// Inbox lists pending requests, oldest first.
func (d *CashierDashboard) Inbox() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.inbox)
}

// Dismiss clears every pending request for a table.
func (d *CashierDashboard) Dismiss(tableID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.inbox = slices.DeleteFunc(d.inbox, func(n Notification) bool { return n.TableID == tableID })
}

// TableGrid follows the floor plan. Blocks are ephemeral, so the blocked set is only as good
// as the events seen since this agent connected.
type TableGrid struct {
	*Agent[tableDto.TableResponse]

	mu      sync.RWMutex
	blocked map[string]event.TableSignal
}

func NewTableGrid(src Source, opts ...Option) *TableGrid {
	query := url.Values{constant.RequestParamSortBy: {"label"}, constant.RequestParamSortDir: {"ASC"}}

	opts = append(opts, WithRefetchFilter(func(ev Event) bool {
		return ev.Topic == event.TopicTables && ev.Name == event.TableUpdate
	}))

	grid := &TableGrid{
		Agent: New("table-grid", event.TopicTables, func(ctx context.Context) ([]tableDto.TableResponse, error) {
			return src.Tables(ctx, query)
		}, opts...),
		blocked: map[string]event.TableSignal{},
	}

	grid.Observe(grid.track)
	grid.OnChange(grid.prune)

	return grid
}

func (g *TableGrid) track(ev Event) {
	if !event.IsTableSignal(ev.Name) {
		return
	}

	var signal event.TableSignal
	if err := ev.Decode(&signal); err != nil || signal.TableID == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if ev.Name == event.TableBlocked {
		g.blocked[signal.TableID] = signal
	} else {
		delete(g.blocked, signal.TableID)
	}
}

// prune forgets blocks on tables that no longer exist.
func (g *TableGrid) prune(tables []tableDto.TableResponse) {
	present := make(map[string]struct{}, len(tables))
	for _, table := range tables {
		present[table.ID] = struct{}{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for id := range g.blocked {
		if _, ok := present[id]; !ok {
			delete(g.blocked, id)
		}
	}
}

func (g *TableGrid) IsBlocked(tableID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.blocked[tableID]

	return ok
}

// Blocked lists the blocked table ids in order.
func (g *TableGrid) Blocked() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]string, 0, len(g.blocked))
	for id := range g.blocked {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// Menu follows the orderable items and keeps a cart consistent with them.
type Menu struct {
	*Agent[menuDto.MenuItemResponse]

	Cart *Cart
}

func NewMenu(src Source, opts ...Option) *Menu {
	query := url.Values{"available": {"true"}, constant.RequestParamSortBy: {"name"}, constant.RequestParamSortDir: {"ASC"}}

	menu := &Menu{
		Agent: New("menu", event.TopicMenuItems, func(ctx context.Context) ([]menuDto.MenuItemResponse, error) {
			return src.MenuItems(ctx, query)
		}, opts...),
		Cart: NewCart(),
	}

	menu.OnChange(func(items []menuDto.MenuItemResponse) {
		for _, line := range menu.Cart.Reconcile(items) {
			log.Info().Str("item", line.MenuItemID).Msg("removed from cart, no longer on the menu")
		}
	})

	return menu
}

// Order adds an item from the current snapshot to the cart.
func (m *Menu) Order(menuItemID string, quantity int) error {
	for _, item := range m.Snapshot() {
		if item.ID == menuItemID {
			return m.Cart.Add(item, quantity)
		}
	}

	return fmt.Errorf("%w: %s", ErrItemUnavailable, menuItemID)
}
