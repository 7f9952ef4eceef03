// Package hub fans realtime events out to subscribed connections.
//
// Delivery is best effort: there is no replay, acknowledgement or persistence. A connection
// that cannot take a message is dropped so the rest of the topic keeps receiving.
package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"resto/infras/otel"
	"resto/internal/realtime/event"
	"resto/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownTopic  = errors.New("unknown topic")
	ErrClosed        = errors.New("connection closed")
	ErrSlowConsumer  = errors.New("send queue full")
	ErrHubClosed     = errors.New("hub closed")
	ErrInvalidSignal = errors.New("invalid signal")
)

// Message is what a connection receives. Payload is marshalled by the connection.
type Message struct {
	Topic   event.Topic
	Event   event.Name
	Payload any
}

// Conn is one live client. Send must enqueue without blocking and keep FIFO order;
// Close must be idempotent.
type Conn interface {
	ID() string
	Username() string
	Send(msg Message) error
	Close()
}

// Broadcaster is the publishing side of the hub used by mutation handlers.
type Broadcaster interface {
	Publish(ctx context.Context, topic event.Topic, name event.Name, payload any) int
	RelayServiceRequest(ctx context.Context, name event.Name, signal event.TableSignal) (int, error)
	RelayTableSignal(ctx context.Context, name event.Name, signal event.TableSignal) (int, error)
}

type Hub struct {
	mu          sync.RWMutex
	conns       map[string]Conn
	topics      map[event.Topic]map[string]Conn
	memberships map[string]map[event.Topic]struct{}
	closed      bool
	otel        otel.Otel
}

func New(otl otel.Otel) *Hub {
	topics := make(map[event.Topic]map[string]Conn, len(event.Topics))
	for _, topic := range event.Topics {
		topics[topic] = map[string]Conn{}
	}

	return &Hub{
		conns:       map[string]Conn{},
		topics:      topics,
		memberships: map[string]map[event.Topic]struct{}{},
		otel:        otl,
	}
}

// Register tracks conn without subscribing it anywhere.
func (h *Hub) Register(conn Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.registerLocked(conn)
}

func (h *Hub) registerLocked(conn Conn) error {
	if h.closed {
		return ErrHubClosed
	}

	if _, ok := h.conns[conn.ID()]; !ok {
		h.conns[conn.ID()] = conn
		h.memberships[conn.ID()] = map[event.Topic]struct{}{}
	}

	return nil
}

// Subscribe is idempotent and registers conn if needed.
func (h *Hub) Subscribe(conn Conn, topic event.Topic) error {
	members, ok := h.topics[topic]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.registerLocked(conn); err != nil {
		return err
	}

	members[conn.ID()] = conn
	h.memberships[conn.ID()][topic] = struct{}{}

	return nil
}

// Unsubscribe is a no-op when conn is not a member.
func (h *Hub) Unsubscribe(conn Conn, topic event.Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.topics[topic]; ok {
		delete(members, conn.ID())
	}

	if topics, ok := h.memberships[conn.ID()]; ok {
		delete(topics, topic)
	}
}

// Disconnect drops conn from every topic and closes it. Safe to call repeatedly,
// including from inside Send.
func (h *Hub) Disconnect(conn Conn) {
	if conn == nil {
		return
	}

	h.mu.Lock()
	h.removeLocked(conn.ID())
	h.mu.Unlock()

	closeQuietly(conn)
}

func (h *Hub) removeLocked(id string) {
	for topic := range h.memberships[id] {
		delete(h.topics[topic], id)
	}

	delete(h.memberships, id)
	delete(h.conns, id)
}

// Publish delivers one message to every current subscriber of topic and reports how many
// accepted it. Membership is snapshotted first, so subscription changes made while
// delivering take effect from the next publish.
func (h *Hub) Publish(ctx context.Context, topic event.Topic, name event.Name, payload any) int {
	_, scope := h.otel.NewScope(ctx, constant.OtelRealtimeScopeName, constant.OtelRealtimeScopeName+".Publish")
	defer scope.End()

	h.mu.RLock()
	recipients := make([]Conn, 0, len(h.topics[topic]))
	for _, conn := range h.topics[topic] {
		recipients = append(recipients, conn)
	}
	h.mu.RUnlock()

	msg := Message{Topic: topic, Event: name, Payload: payload}

	var failed []Conn

	for _, conn := range recipients {
		if err := deliver(conn, msg); err != nil {
			log.Warn().
				Err(err).
				Str("conn", conn.ID()).
				Str("topic", string(topic)).
				Str("event", string(name)).
				Msg("dropping realtime connection after failed delivery")

			failed = append(failed, conn)
		}
	}

	for _, conn := range failed {
		h.Disconnect(conn)
	}

	delivered := len(recipients) - len(failed)

	scope.SetAttributes(map[string]any{
		"topic":      string(topic),
		"event":      string(name),
		"recipients": len(recipients),
		"delivered":  delivered,
	})

	return delivered
}

// RelayServiceRequest announces a bell or bill request to the tables topic. Nothing is stored.
func (h *Hub) RelayServiceRequest(ctx context.Context, name event.Name, signal event.TableSignal) (int, error) {
	if !event.IsServiceRequest(name) {
		return 0, fmt.Errorf("%w: %q is not a service request", ErrInvalidSignal, name)
	}

	return h.relay(ctx, name, signal)
}

// RelayTableSignal announces a table being blocked or released by a customer session.
func (h *Hub) RelayTableSignal(ctx context.Context, name event.Name, signal event.TableSignal) (int, error) {
	if !event.IsTableSignal(name) {
		return 0, fmt.Errorf("%w: %q is not a table signal", ErrInvalidSignal, name)
	}

	return h.relay(ctx, name, signal)
}

func (h *Hub) relay(ctx context.Context, name event.Name, signal event.TableSignal) (int, error) {
	if signal.TableID == "" {
		return 0, fmt.Errorf("%w: tableId is required", ErrInvalidSignal)
	}

	if signal.Timestamp == "" {
		signal.Timestamp = event.Timestamp()
	}

	return h.Publish(ctx, event.TopicTables, name, signal), nil
}

func (h *Hub) Subscribers(topic event.Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.topics[topic])
}

func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}

// Close disconnects everyone and refuses new registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true

	conns := make([]Conn, 0, len(h.conns))
	for id, conn := range h.conns {
		conns = append(conns, conn)
		h.removeLocked(id)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		closeQuietly(conn)
	}

	log.Info().Int("connections", len(conns)).Msg("realtime hub closed")
}

func deliver(conn Conn, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send panicked: %v", r)
		}
	}()

	return conn.Send(msg)
}

func closeQuietly(conn Conn) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("conn", conn.ID()).Msg("closing realtime connection panicked")
		}
	}()

	conn.Close()
}
