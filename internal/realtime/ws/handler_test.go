package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resto/config"
	"resto/infras/jwt"
	"resto/infras/otel/mocks"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
	"resto/internal/realtime/ws"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	hub    *hub.Hub
	jwt    jwt.JWT
	server *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "resto-test"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 5
	cfg.JWT.RefreshExpireMin = 10
	cfg.Realtime.SendBuffer = 16
	cfg.Realtime.WriteTimeoutSecond = 2
	cfg.Realtime.PongWaitSecond = 5
	cfg.Realtime.MaxMessageBytes = 4096

	h := hub.New(mocks.NewOtel())
	jwtSvc := jwt.New(cfg)

	router := chi.NewRouter()
	ws.New(cfg, h, jwtSvc).Router(router)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		h.Close()
		server.Close()
	})

	return &fixture{hub: h, jwt: jwtSvc, server: server}
}

func (f *fixture) dial(t *testing.T, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	if query != "" {
		url += "?" + query
	}

	return websocket.DefaultDialer.Dial(url, nil)
}

func (f *fixture) connect(t *testing.T, query string) *websocket.Conn {
	t.Helper()

	conn, _, err := f.dial(t, query)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func read(t *testing.T, conn *websocket.Conn) event.Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var envelope event.Envelope
	require.NoError(t, conn.ReadJSON(&envelope))

	return envelope
}

func subscribe(t *testing.T, conn *websocket.Conn, topic event.Topic) {
	t.Helper()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(event.SubscribePrefix+string(topic))))

	ack := read(t, conn)
	require.Equal(t, event.Subscribed, ack.Event)
}

func decodeSignal(t *testing.T, envelope event.Envelope) event.TableSignal {
	t.Helper()

	var signal event.TableSignal
	require.NoError(t, json.Unmarshal(envelope.Data, &signal))

	return signal
}

func TestSubscribeAndReceive(t *testing.T) {
	f := newFixture(t)
	conn := f.connect(t, "name=kitchen")

	subscribe(t, conn, event.TopicOrders)
	require.Eventually(t, func() bool { return f.hub.Subscribers(event.TopicOrders) == 1 }, time.Second, 10*time.Millisecond)

	f.hub.Publish(t.Context(), event.TopicOrders, event.OrderUpdate, event.NewOrderChange(event.OrderCreated, nil, "o-1", ""))

	envelope := read(t, conn)
	assert.Equal(t, event.OrderUpdate, envelope.Event)
	assert.Equal(t, event.TopicOrders, envelope.Topic)

	var change event.OrderChange
	require.NoError(t, json.Unmarshal(envelope.Data, &change))
	assert.Equal(t, event.OrderCreated, change.Type)
	assert.Equal(t, "o-1", change.OrderID)
}

func TestJSONControlAndUnsubscribe(t *testing.T) {
	f := newFixture(t)
	conn := f.connect(t, "")

	require.NoError(t, conn.WriteJSON(event.Envelope{Event: event.SubscribePrefix + event.Name(event.TopicMenuItems)}))
	assert.Equal(t, event.Subscribed, read(t, conn).Event)
	assert.Equal(t, 1, f.hub.Subscribers(event.TopicMenuItems))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("unsubscribe:menu-items")))
	assert.Equal(t, event.Unsubscribed, read(t, conn).Event)
	assert.Zero(t, f.hub.Subscribers(event.TopicMenuItems))
}

func TestUnknownTopicIsReported(t *testing.T) {
	f := newFixture(t)
	conn := f.connect(t, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("subscribe:kitchen")))

	envelope := read(t, conn)
	assert.Equal(t, event.Error, envelope.Event)
	assert.Contains(t, string(envelope.Data), "kitchen")
}

func TestServiceRequestRelay(t *testing.T) {
	f := newFixture(t)
	cashier := f.connect(t, "name=cashier")
	customer := f.connect(t, "name=table-5")

	subscribe(t, cashier, event.TopicTables)

	require.NoError(t, customer.WriteJSON(map[string]any{
		"event": "bell_request",
		"data":  map[string]string{"tableId": "t-5", "tableLabel": "Table 5"},
	}))

	envelope := read(t, cashier)
	assert.Equal(t, event.BellRequest, envelope.Event)

	signal := decodeSignal(t, envelope)
	assert.Equal(t, "t-5", signal.TableID)
	assert.Equal(t, "Table 5", signal.TableLabel)
	assert.NotEmpty(t, signal.Timestamp)
}

func TestBlockedTableReleasedOnDisconnect(t *testing.T) {
	f := newFixture(t)
	waiter := f.connect(t, "name=waiter")
	subscribe(t, waiter, event.TopicTables)

	customer, _, err := f.dial(t, "name=guest-7")
	require.NoError(t, err)

	require.NoError(t, customer.WriteJSON(map[string]any{
		"event": "table_blocked",
		"data":  map[string]string{"tableId": "t-7", "tableLabel": "Table 7"},
	}))

	blocked := read(t, waiter)
	assert.Equal(t, event.TableBlocked, blocked.Event)
	assert.Equal(t, "t-7", decodeSignal(t, blocked).TableID)

	require.NoError(t, customer.Close())

	released := read(t, waiter)
	assert.Equal(t, event.TableReleased, released.Event)
	assert.Equal(t, "t-7", decodeSignal(t, released).TableID)
}

func TestStaffTokenIdentifiesConnection(t *testing.T) {
	f := newFixture(t)

	pair, err := f.jwt.GenerateTokenPair("u-1", "siti", "cashier")
	require.NoError(t, err)

	conn := f.connect(t, "token="+pair.AccessToken)
	subscribe(t, conn, event.TopicOrders)

	assert.Equal(t, 1, f.hub.Connections())
}

func TestInvalidTokenRejected(t *testing.T) {
	f := newFixture(t)

	_, resp, err := f.dial(t, "token=not-a-token")

	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
