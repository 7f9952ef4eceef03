package agent_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"resto/config"
	"resto/infras/jwt"
	"resto/infras/otel/mocks"
	"resto/internal/agent"
	menuDto "resto/internal/domains/menuitem/model/dto"
	orderDto "resto/internal/domains/order/model/dto"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
	"resto/internal/realtime/ws"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placer struct {
	mu       sync.Mutex
	requests []orderDto.CreateOrderRequest
}

func (p *placer) CreateOrder(_ context.Context, req orderDto.CreateOrderRequest) (orderDto.OrderResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)

	return orderDto.OrderResponse{ID: "o-1", CustomerName: req.CustomerName, TableID: req.TableID}, nil
}

func menuSource() *source {
	return &source{menu: []menuDto.MenuItemResponse{
		{ID: "beef-burger", Name: "Beef Burger", Price: 12.99, Available: true},
	}}
}

// watch subscribes an in-process connection to the tables topic.
func watch(t *testing.T, h *hub.Hub) *hub.LocalConn {
	t.Helper()

	conn := hub.NewLocalConn("floor", 16)
	require.NoError(t, h.Subscribe(conn, event.TopicTables))

	return conn
}

func next(t *testing.T, conn *hub.LocalConn) hub.Message {
	t.Helper()

	select {
	case msg := <-conn.Messages():
		return msg
	case <-time.After(wait):
		t.Fatal("no message on the tables topic")

		return hub.Message{}
	}
}

func assertSignal(t *testing.T, msg hub.Message, name event.Name, tableID string) {
	t.Helper()

	assert.Equal(t, name, msg.Event)

	signal, ok := msg.Payload.(event.TableSignal)
	require.True(t, ok)
	assert.Equal(t, tableID, signal.TableID)
	assert.NotEmpty(t, signal.Timestamp)
}

func TestCustomerSession_LocalStream(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	floor := watch(t, h)
	orders := &placer{}

	stream, err := agent.NewLocalStream(h, "guest", 16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stream.Close() })

	session := agent.NewCustomerSession(menuSource(), orders, "t5", "5")

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)

	go func() { result <- session.Run(ctx, stream) }()

	assertSignal(t, next(t, floor), event.TableBlocked, "t5")

	require.Eventually(t, func() bool { return len(session.Snapshot()) == 1 }, wait, 5*time.Millisecond)
	require.NoError(t, session.Order("beef-burger", 2))

	require.NoError(t, session.CallWaiter(ctx))
	assertSignal(t, next(t, floor), event.BellRequest, "t5")

	placed, err := session.Checkout(ctx, "Dana")
	require.NoError(t, err)
	assert.Equal(t, "o-1", placed.ID)
	assert.Empty(t, session.Cart.Lines())
	assert.Len(t, session.Placed(), 1)

	require.Len(t, orders.requests, 1)
	req := orders.requests[0]
	assert.Equal(t, "dine_in", req.OrderType)
	require.NotNil(t, req.TableID)
	assert.Equal(t, "t5", *req.TableID)
	assert.Equal(t, []orderDto.OrderItemRequest{{MenuItemID: "beef-burger", Quantity: 2}}, req.Items)

	_, err = session.Checkout(ctx, "Dana")
	assert.ErrorIs(t, err, agent.ErrEmptyCart)

	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(wait):
		t.Fatal("session did not stop")
	}

	assertSignal(t, next(t, floor), event.TableReleased, "t5")
	assert.ErrorIs(t, session.RequestBill(context.Background()), agent.ErrNoSession)
}

func TestCustomerSession_ReleasesWhenStreamCloses(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	floor := watch(t, h)

	stream, err := agent.NewLocalStream(h, "guest", 16)
	require.NoError(t, err)

	session := agent.NewCustomerSession(menuSource(), &placer{}, "t2", "2")

	result := make(chan error, 1)

	go func() { result <- session.Run(context.Background(), stream) }()

	assertSignal(t, next(t, floor), event.TableBlocked, "t2")
	require.NoError(t, stream.Close())

	select {
	case err := <-result:
		assert.ErrorIs(t, err, agent.ErrStreamClosed)
	case <-time.After(wait):
		t.Fatal("session did not stop after the stream closed")
	}

	assertSignal(t, next(t, floor), event.TableReleased, "t2")
}

// realtimeServer serves the websocket endpoint over h and returns its ws:// url.
func realtimeServer(t *testing.T, h *hub.Hub) string {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 5
	cfg.JWT.RefreshExpireMin = 10
	cfg.Realtime.SendBuffer = 256
	cfg.Realtime.WriteTimeoutSecond = 2
	cfg.Realtime.PongWaitSecond = 5
	cfg.Realtime.MaxMessageBytes = 4096

	router := chi.NewRouter()
	ws.New(cfg, h, jwt.New(cfg)).Router(router)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		h.Close()
		server.Close()
	})

	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func TestCustomerSession_DialStream(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	floor := watch(t, h)
	url := realtimeServer(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := agent.Dial(ctx, url, "", "table 7")
	require.NoError(t, err)

	session := agent.NewCustomerSession(menuSource(), &placer{}, "t7", "7")
	result := make(chan error, 1)

	go func() { result <- session.Run(ctx, stream) }()

	assertSignal(t, next(t, floor), event.TableBlocked, "t7")

	require.NoError(t, session.RequestBill(ctx))
	assertSignal(t, next(t, floor), event.BillRequest, "t7")

	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(wait):
		t.Fatal("session did not stop")
	}

	assertSignal(t, next(t, floor), event.TableReleased, "t7")
	require.NoError(t, stream.Close())

	// The table was released explicitly, so the disconnect must not announce it again.
	select {
	case msg := <-floor.Messages():
		t.Fatalf("unexpected %s after disconnect", msg.Event)
	case <-time.After(200 * time.Millisecond):
	}
}
