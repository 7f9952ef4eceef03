package agent_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/infras/otel/mocks"
	"resto/internal/agent"
	menuDto "resto/internal/domains/menuitem/model/dto"
	orderDto "resto/internal/domains/order/model/dto"
	tableDto "resto/internal/domains/table/model/dto"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
)

const wait = 2 * time.Second

// source serves fixed lists and counts calls per list.
type source struct {
	mu      sync.Mutex
	orders  []orderDto.OrderResponse
	tables  []tableDto.TableResponse
	menu    []menuDto.MenuItemResponse
	queries []url.Values

	orderCalls atomic.Int32
	tableCalls atomic.Int32
	menuCalls  atomic.Int32
}

func (s *source) Orders(_ context.Context, query url.Values) ([]orderDto.OrderResponse, error) {
	s.orderCalls.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = append(s.queries, query)

	return append([]orderDto.OrderResponse(nil), s.orders...), nil
}

func (s *source) Tables(context.Context, url.Values) ([]tableDto.TableResponse, error) {
	s.tableCalls.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]tableDto.TableResponse(nil), s.tables...), nil
}

func (s *source) MenuItems(context.Context, url.Values) ([]menuDto.MenuItemResponse, error) {
	s.menuCalls.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]menuDto.MenuItemResponse(nil), s.menu...), nil
}

func (s *source) set(fn func(*source)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s)
}

// start runs fn against a fresh local stream and stops it with the test.
func start(t *testing.T, h *hub.Hub, run func(context.Context, agent.Stream) error) {
	t.Helper()

	stream, err := agent.NewLocalStream(h, t.Name(), 64)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = run(ctx, stream)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = stream.Close()
	})
}

func TestAgent_RefetchesOnTopicEvent(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	src := &source{tables: []tableDto.TableResponse{{ID: "t1", Label: "1"}}}

	grid := agent.NewTableGrid(src)
	start(t, h, grid.Run)

	require.Eventually(t, func() bool { return len(grid.Snapshot()) == 1 }, wait, 5*time.Millisecond)

	src.set(func(s *source) { s.tables = append(s.tables, tableDto.TableResponse{ID: "t2", Label: "2"}) })
	h.Publish(context.Background(), event.TopicTables, event.TableUpdate, event.NewTableChange(event.TableCreated, nil, "t2"))

	require.Eventually(t, func() bool { return len(grid.Snapshot()) == 2 }, wait, 5*time.Millisecond)
}

func TestAgent_CoalescesBursts(t *testing.T) {
	h := hub.New(mocks.NewOtel())

	var calls atomic.Int32

	started := make(chan struct{}, 1)
	gate := make(chan struct{})

	board := agent.New("burst", event.TopicOrders, func(ctx context.Context) ([]int, error) {
		n := calls.Add(1)
		if n == 2 {
			started <- struct{}{}
			<-gate
		}

		return []int{int(n)}, nil
	})
	start(t, h, board.Run)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, wait, 5*time.Millisecond)

	h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, event.NewOrderChange(event.OrderCreated, nil, "o1", ""))
	<-started

	for range 20 {
		h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, event.NewOrderChange(event.OrderUpdated, nil, "o1", ""))
	}

	// give the agent time to read the burst before the blocked fetch finishes
	time.Sleep(50 * time.Millisecond)
	close(gate)

	require.Eventually(t, func() bool { return calls.Load() == 3 }, wait, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []int{3}, board.Snapshot())
}

func TestAgent_KeepsSnapshotWhenFetchFails(t *testing.T) {
	h := hub.New(mocks.NewOtel())

	var calls atomic.Int32

	menu := agent.New("flaky", event.TopicMenuItems, func(ctx context.Context) ([]string, error) {
		if calls.Add(1) > 1 {
			return nil, errors.New("server unavailable")
		}

		return []string{"beef-burger"}, nil
	})
	start(t, h, menu.Run)

	require.Eventually(t, func() bool { return len(menu.Snapshot()) == 1 }, wait, 5*time.Millisecond)

	h.Publish(context.Background(), event.TopicMenuItems, event.MenuItemUpdate, event.NewMenuItemChange(event.MenuItemDeleted, nil, "beef-burger"))

	require.Eventually(t, func() bool { return calls.Load() == 2 }, wait, 5*time.Millisecond)
	assert.Equal(t, []string{"beef-burger"}, menu.Snapshot())
}

func TestAgent_PollsWithoutEvents(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	src := &source{}

	tracker := agent.NewOrderTracker(src, "table-5", agent.WithPollInterval(10*time.Millisecond))
	start(t, h, tracker.Run)

	require.Eventually(t, func() bool { return src.orderCalls.Load() >= 3 }, wait, 5*time.Millisecond)

	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Equal(t, "table-5", src.queries[0].Get("tableId"))
}

func TestAgent_OnChangeReceivesEverySnapshot(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	src := &source{orders: []orderDto.OrderResponse{{ID: "o1", Status: "new"}}}

	board := agent.NewKitchenBoard(src)

	changes := make(chan []orderDto.OrderResponse, 4)
	board.OnChange(func(orders []orderDto.OrderResponse) { changes <- orders })

	start(t, h, board.Run)

	select {
	case orders := <-changes:
		assert.Equal(t, "o1", orders[0].ID)
	case <-time.After(wait):
		t.Fatal("expected an initial snapshot")
	}

	src.mu.Lock()
	assert.Equal(t, "new,cooking,ready", src.queries[0].Get("status"))
	src.mu.Unlock()
}

func TestAgent_StopsWhenStreamCloses(t *testing.T) {
	h := hub.New(mocks.NewOtel())

	stream, err := agent.NewLocalStream(h, "closing", 4)
	require.NoError(t, err)

	board := agent.New("closing", event.TopicOrders, func(context.Context) ([]int, error) { return nil, nil })

	result := make(chan error, 1)

	go func() { result <- board.Run(context.Background(), stream) }()

	require.Eventually(t, func() bool { return h.Subscribers(event.TopicOrders) == 1 }, wait, 5*time.Millisecond)
	h.Close()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, agent.ErrStreamClosed)
	case <-time.After(wait):
		t.Fatal("agent did not stop after the stream closed")
	}
}

func TestAgent_ReturnsWhenOwnStreamClosesUnderLiveContext(t *testing.T) {
	h := hub.New(mocks.NewOtel())

	stream, err := agent.NewLocalStream(h, "kitchen", 4)
	require.NoError(t, err)

	board := agent.New("kitchen", event.TopicOrders, func(context.Context) ([]int, error) { return []int{1}, nil },
		agent.WithPollInterval(time.Hour))

	result := make(chan error, 1)

	go func() { result <- board.Run(context.Background(), stream) }()

	require.Eventually(t, func() bool { return len(board.Snapshot()) == 1 }, wait, 5*time.Millisecond)
	require.NoError(t, stream.Close())

	select {
	case err := <-result:
		assert.ErrorIs(t, err, agent.ErrStreamClosed)
	case <-time.After(wait):
		t.Fatal("Run kept waiting on its refetch loop after the stream closed")
	}
}

func TestCashierDashboard_Inbox(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	src := &source{}

	dashboard := agent.NewCashierDashboard(src)
	start(t, h, dashboard.Run)

	require.Eventually(t, func() bool { return h.Subscribers(event.TopicTables) == 1 }, wait, 5*time.Millisecond)
	require.Eventually(t, func() bool { return src.orderCalls.Load() == 1 }, wait, 5*time.Millisecond)

	_, err := h.RelayServiceRequest(context.Background(), event.BellRequest, event.NewTableSignal("t5", "5"))
	require.NoError(t, err)
	_, err = h.RelayServiceRequest(context.Background(), event.BillRequest, event.NewTableSignal("t7", "7"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(dashboard.Inbox()) == 2 }, wait, 5*time.Millisecond)

	inbox := dashboard.Inbox()
	assert.Equal(t, event.BellRequest, inbox[0].Kind)
	assert.Equal(t, "5", inbox[0].TableLabel)
	assert.Equal(t, int32(1), src.orderCalls.Load())

	dashboard.Dismiss("t5")
	assert.Len(t, dashboard.Inbox(), 1)

	src.mu.Lock()
	assert.Equal(t, "false", src.queries[0].Get("isSettled"))
	src.mu.Unlock()
}

func TestTableGrid_BlockedSet(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	src := &source{tables: []tableDto.TableResponse{{ID: "t5", Label: "5"}}}

	grid := agent.NewTableGrid(src)
	start(t, h, grid.Run)

	require.Eventually(t, func() bool { return src.tableCalls.Load() == 1 }, wait, 5*time.Millisecond)

	_, err := h.RelayTableSignal(context.Background(), event.TableBlocked, event.NewTableSignal("t5", "5"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return grid.IsBlocked("t5") }, wait, 5*time.Millisecond)
	assert.Equal(t, []string{"t5"}, grid.Blocked())
	assert.Equal(t, int32(1), src.tableCalls.Load())

	_, err = h.RelayTableSignal(context.Background(), event.TableReleased, event.NewTableSignal("t5", "5"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return !grid.IsBlocked("t5") }, wait, 5*time.Millisecond)
}

func TestMenu_ReconcilesCart(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	src := &source{menu: []menuDto.MenuItemResponse{
		{ID: "beef-burger", Name: "Beef Burger", Price: 12.99, Available: true},
		{ID: "iced-latte", Name: "Iced Latte", Price: 4.99, Available: true},
	}}

	menu := agent.NewMenu(src)
	start(t, h, menu.Run)

	require.Eventually(t, func() bool { return len(menu.Snapshot()) == 2 }, wait, 5*time.Millisecond)

	require.NoError(t, menu.Order("beef-burger", 2))
	require.NoError(t, menu.Order("iced-latte", 1))
	assert.ErrorIs(t, menu.Order("fries", 1), agent.ErrItemUnavailable)

	src.set(func(s *source) {
		s.menu = []menuDto.MenuItemResponse{{ID: "beef-burger", Name: "Beef Burger", Price: 13.49, Available: true}}
	})
	h.Publish(context.Background(), event.TopicMenuItems, event.MenuItemUpdate, event.NewMenuItemChange(event.MenuItemAvailabilityChanged, nil, "iced-latte"))

	require.Eventually(t, func() bool { return len(menu.Cart.Lines()) == 1 }, wait, 5*time.Millisecond)

	line := menu.Cart.Lines()[0]
	assert.Equal(t, "beef-burger", line.MenuItemID)
	assert.InDelta(t, 13.49, line.Price, 0.001)
	assert.InDelta(t, 26.98, menu.Cart.Total(), 0.001)
}
