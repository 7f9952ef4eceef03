package hub_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"resto/infras/otel/mocks"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicConn struct {
	id     string
	closed int
}

func (c *panicConn) ID() string             { return c.id }
func (c *panicConn) Username() string       { return "broken" }
func (c *panicConn) Send(hub.Message) error { panic("socket exploded") }
func (c *panicConn) Close()                 { c.closed++ }

// reentrantConn unsubscribes itself from inside Send.
type reentrantConn struct {
	*hub.LocalConn
	h     *hub.Hub
	topic event.Topic
}

func (c *reentrantConn) Send(msg hub.Message) error {
	c.h.Unsubscribe(c, c.topic)

	return c.LocalConn.Send(msg)
}

func newHub() *hub.Hub {
	return hub.New(mocks.NewOtel())
}

func receive(t *testing.T, conn *hub.LocalConn) hub.Message {
	t.Helper()

	select {
	case msg := <-conn.Messages():
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a message")

		return hub.Message{}
	}
}

func assertEmpty(t *testing.T, conn *hub.LocalConn) {
	t.Helper()

	select {
	case msg := <-conn.Messages():
		t.Fatalf("unexpected message %q", msg.Event)
	default:
	}
}

func TestSubscribe(t *testing.T) {
	h := newHub()
	conn := hub.NewLocalConn("kitchen", 4)

	require.NoError(t, h.Subscribe(conn, event.TopicOrders))
	require.NoError(t, h.Subscribe(conn, event.TopicOrders))

	assert.Equal(t, 1, h.Subscribers(event.TopicOrders))
	assert.Equal(t, 1, h.Connections())

	err := h.Subscribe(conn, event.Topic("kitchen"))
	assert.ErrorIs(t, err, hub.ErrUnknownTopic)
}

func TestPublish_OnlyReachesTopicMembers(t *testing.T) {
	h := newHub()
	orders := hub.NewLocalConn("cashier", 4)
	tables := hub.NewLocalConn("waiter", 4)

	require.NoError(t, h.Subscribe(orders, event.TopicOrders))
	require.NoError(t, h.Subscribe(tables, event.TopicTables))

	delivered := h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, event.NewOrderChange(event.OrderCreated, nil, "o-1", ""))

	assert.Equal(t, 1, delivered)
	msg := receive(t, orders)
	assert.Equal(t, event.OrderUpdate, msg.Event)
	assert.Equal(t, event.TopicOrders, msg.Topic)
	assertEmpty(t, tables)
}

func TestPublish_NoSubscribers(t *testing.T) {
	h := newHub()

	done := make(chan int)
	go func() {
		done <- h.Publish(context.Background(), event.TopicMenuItems, event.MenuItemUpdate, nil)
	}()

	select {
	case delivered := <-done:
		assert.Zero(t, delivered)
	case <-time.After(time.Second):
		t.Fatal("publish blocked without subscribers")
	}
}

func TestPublish_PreservesOrderPerConnection(t *testing.T) {
	h := newHub()
	conn := hub.NewLocalConn("waiter", 16)
	require.NoError(t, h.Subscribe(conn, event.TopicTables))

	ctx := context.Background()
	signal := event.NewTableSignal("t-5", "Table 5")

	_, err := h.RelayTableSignal(ctx, event.TableBlocked, signal)
	require.NoError(t, err)
	_, err = h.RelayTableSignal(ctx, event.TableReleased, signal)
	require.NoError(t, err)

	first := receive(t, conn)
	second := receive(t, conn)

	assert.Equal(t, event.TableBlocked, first.Event)
	assert.Equal(t, event.TableReleased, second.Event)
	assert.Equal(t, "t-5", first.Payload.(event.TableSignal).TableID)
	assert.Equal(t, "t-5", second.Payload.(event.TableSignal).TableID)
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	h := newHub()
	leaving := hub.NewLocalConn("cashier", 4)
	staying := hub.NewLocalConn("kitchen", 4)

	require.NoError(t, h.Subscribe(leaving, event.TopicOrders))
	require.NoError(t, h.Subscribe(staying, event.TopicOrders))

	h.Unsubscribe(leaving, event.TopicOrders)
	h.Unsubscribe(leaving, event.TopicOrders)

	assert.Equal(t, 1, h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, nil))
	receive(t, staying)
	assertEmpty(t, leaving)
}

func TestPublish_IsolatesBrokenConnection(t *testing.T) {
	h := newHub()
	broken := &panicConn{id: "broken"}
	healthy := hub.NewLocalConn("kitchen", 4)

	require.NoError(t, h.Subscribe(broken, event.TopicOrders))
	require.NoError(t, h.Subscribe(healthy, event.TopicOrders))

	delivered := h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, nil)

	assert.Equal(t, 1, delivered)
	receive(t, healthy)
	assert.Equal(t, 1, broken.closed)
	assert.Equal(t, 1, h.Subscribers(event.TopicOrders))
	assert.Equal(t, 1, h.Connections())

	assert.Equal(t, 1, h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, nil))
	receive(t, healthy)
}

func TestPublish_DropsSlowConsumer(t *testing.T) {
	h := newHub()
	slow := hub.NewLocalConn("slow", 1)

	require.NoError(t, h.Subscribe(slow, event.TopicTables))

	assert.Equal(t, 1, h.Publish(context.Background(), event.TopicTables, event.TableUpdate, nil))
	assert.Equal(t, 0, h.Publish(context.Background(), event.TopicTables, event.TableUpdate, nil))
	assert.Zero(t, h.Connections())

	receive(t, slow)
	_, open := <-slow.Messages()
	assert.False(t, open)
}

func TestPublish_ReentrantUnsubscribe(t *testing.T) {
	h := newHub()
	self := &reentrantConn{LocalConn: hub.NewLocalConn("self", 4), h: h, topic: event.TopicOrders}
	other := hub.NewLocalConn("other", 4)

	require.NoError(t, h.Subscribe(self, event.TopicOrders))
	require.NoError(t, h.Subscribe(other, event.TopicOrders))

	assert.Equal(t, 2, h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, nil))
	receive(t, other)
	receive(t, self.LocalConn)

	assert.Equal(t, 1, h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, nil))
	receive(t, other)
	assertEmpty(t, self.LocalConn)
}

func TestDisconnect_Idempotent(t *testing.T) {
	h := newHub()
	conn := hub.NewLocalConn("cashier", 4)

	require.NoError(t, h.Subscribe(conn, event.TopicOrders))
	require.NoError(t, h.Subscribe(conn, event.TopicTables))

	assert.NotPanics(t, func() {
		h.Disconnect(conn)
		h.Disconnect(conn)
		h.Disconnect(nil)
	})

	assert.Zero(t, h.Subscribers(event.TopicOrders))
	assert.Zero(t, h.Subscribers(event.TopicTables))
	assert.ErrorIs(t, conn.Send(hub.Message{}), hub.ErrClosed)
}

func TestRelay_RejectsWrongKinds(t *testing.T) {
	h := newHub()
	ctx := context.Background()

	_, err := h.RelayServiceRequest(ctx, event.TableBlocked, event.NewTableSignal("t-1", "Table 1"))
	assert.ErrorIs(t, err, hub.ErrInvalidSignal)

	_, err = h.RelayTableSignal(ctx, event.BellRequest, event.NewTableSignal("t-1", "Table 1"))
	assert.ErrorIs(t, err, hub.ErrInvalidSignal)

	_, err = h.RelayServiceRequest(ctx, event.BellRequest, event.TableSignal{})
	assert.ErrorIs(t, err, hub.ErrInvalidSignal)
}

func TestRelayServiceRequest_StampsTimestamp(t *testing.T) {
	h := newHub()
	conn := hub.NewLocalConn("cashier", 4)
	require.NoError(t, h.Subscribe(conn, event.TopicTables))

	delivered, err := h.RelayServiceRequest(context.Background(), event.BillRequest, event.TableSignal{TableID: "t-2", TableLabel: "Table 2"})
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)

	msg := receive(t, conn)
	assert.Equal(t, event.BillRequest, msg.Event)
	assert.NotEmpty(t, msg.Payload.(event.TableSignal).Timestamp)
}

func TestClose(t *testing.T) {
	h := newHub()
	conn := hub.NewLocalConn("kitchen", 4)
	require.NoError(t, h.Subscribe(conn, event.TopicOrders))

	h.Close()

	assert.Zero(t, h.Connections())
	assert.ErrorIs(t, h.Register(hub.NewLocalConn("late", 1)), hub.ErrHubClosed)

	_, open := <-conn.Messages()
	assert.False(t, open)
}

func TestConcurrentMembershipChanges(t *testing.T) {
	h := newHub()
	ctx := context.Background()

	var wg sync.WaitGroup

	for range 20 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			conn := hub.NewLocalConn("churn", 64)
			for range 50 {
				_ = h.Subscribe(conn, event.TopicOrders)
				h.Unsubscribe(conn, event.TopicOrders)
			}
			h.Disconnect(conn)
		}()

		go func() {
			defer wg.Done()

			for range 50 {
				h.Publish(ctx, event.TopicOrders, event.OrderUpdate, nil)
			}
		}()
	}

	wg.Wait()

	assert.Zero(t, h.Subscribers(event.TopicOrders))
	assert.Zero(t, h.Connections())
}
