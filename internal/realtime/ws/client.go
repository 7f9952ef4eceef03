package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type settings struct {
	writeTimeout    time.Duration
	pongWait        time.Duration
	pingPeriod      time.Duration
	maxMessageBytes int64
	sendBuffer      int
}

// Client is one websocket connection registered with the hub.
type Client struct {
	id       string
	username string
	conn     *websocket.Conn
	hub      *hub.Hub
	settings settings

	send      chan hub.Message
	done      chan struct{}
	closeOnce sync.Once

	// tables this connection blocked and has not released yet
	blockedMu sync.Mutex
	blocked   map[string]event.TableSignal
}

func newClient(conn *websocket.Conn, h *hub.Hub, username string, s settings) *Client {
	return &Client{
		id:       uuid.NewString(),
		username: username,
		conn:     conn,
		hub:      h,
		settings: s,
		send:     make(chan hub.Message, s.sendBuffer),
		done:     make(chan struct{}),
		blocked:  map[string]event.TableSignal{},
	}
}

func (c *Client) ID() string       { return c.id }
func (c *Client) Username() string { return c.username }

func (c *Client) Send(msg hub.Message) error {
	select {
	case <-c.done:
		return hub.ErrClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return hub.ErrSlowConsumer
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// serve runs both pumps and cleans up once the read side ends.
func (c *Client) serve(ctx context.Context) {
	go c.writePump()

	c.readPump(ctx)

	c.hub.Disconnect(c)
	c.releaseBlocked(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(c.settings.maxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.settings.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.settings.pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("conn", c.id).Msg("realtime connection closed unexpectedly")
			}

			return
		}

		c.handle(ctx, raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.settings.pingPeriod)

	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				log.Warn().Err(err).Str("conn", c.id).Msg("realtime write failed")
				c.Close()

				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.settings.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()

				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.settings.writeTimeout))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

			return
		}
	}
}

func (c *Client) write(msg hub.Message) error {
	data, err := json.Marshal(msg.Payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", msg.Event, err)
	}

	envelope := event.Envelope{Event: msg.Event, Topic: msg.Topic, Data: data}

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.settings.writeTimeout))

	return c.conn.WriteJSON(envelope) //nolint:wrapcheck
}

func (c *Client) handle(ctx context.Context, raw []byte) {
	envelope, err := event.ParseControl(raw)
	if err != nil {
		c.reject("malformed message")

		return
	}

	name := string(envelope.Event)

	if topic, ok := strings.CutPrefix(name, event.SubscribePrefix); ok {
		c.subscribe(topic)

		return
	}

	if topic, ok := strings.CutPrefix(name, event.UnsubscribePrefix); ok {
		c.unsubscribe(topic)

		return
	}

	if event.IsTableSignal(envelope.Event) || event.IsServiceRequest(envelope.Event) {
		c.relay(ctx, envelope)

		return
	}

	c.reject(fmt.Sprintf("unknown event %q", name))
}

func (c *Client) subscribe(raw string) {
	topic, ok := event.ParseTopic(raw)
	if !ok {
		c.reject(fmt.Sprintf("unknown topic %q", raw))

		return
	}

	if err := c.hub.Subscribe(c, topic); err != nil {
		c.reject(err.Error())

		return
	}

	_ = c.Send(hub.Message{Event: event.Subscribed, Payload: event.SubscriptionAck{Topic: topic}})
}

func (c *Client) unsubscribe(raw string) {
	topic, ok := event.ParseTopic(raw)
	if !ok {
		c.reject(fmt.Sprintf("unknown topic %q", raw))

		return
	}

	c.hub.Unsubscribe(c, topic)

	_ = c.Send(hub.Message{Event: event.Unsubscribed, Payload: event.SubscriptionAck{Topic: topic}})
}

// relay forwards a client signal to the tables topic with a server timestamp.
func (c *Client) relay(ctx context.Context, envelope event.Envelope) {
	var signal event.TableSignal
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &signal); err != nil {
			c.reject("malformed signal payload")

			return
		}
	}

	signal.Timestamp = event.Timestamp()

	var err error
	if event.IsServiceRequest(envelope.Event) {
		_, err = c.hub.RelayServiceRequest(ctx, envelope.Event, signal)
	} else {
		_, err = c.hub.RelayTableSignal(ctx, envelope.Event, signal)
	}

	if err != nil {
		c.reject(err.Error())

		return
	}

	c.trackBlock(envelope.Event, signal)
}

func (c *Client) trackBlock(name event.Name, signal event.TableSignal) {
	c.blockedMu.Lock()
	defer c.blockedMu.Unlock()

	switch name {
	case event.TableBlocked:
		c.blocked[signal.TableID] = signal
	case event.TableReleased:
		delete(c.blocked, signal.TableID)
	}
}

// releaseBlocked announces a release for every table the session still held.
func (c *Client) releaseBlocked(ctx context.Context) {
	c.blockedMu.Lock()
	held := make([]event.TableSignal, 0, len(c.blocked))
	for _, signal := range c.blocked {
		held = append(held, signal)
	}
	c.blocked = map[string]event.TableSignal{}
	c.blockedMu.Unlock()

	for _, signal := range held {
		release := event.NewTableSignal(signal.TableID, signal.TableLabel)
		if _, err := c.hub.RelayTableSignal(context.WithoutCancel(ctx), event.TableReleased, release); err != nil {
			log.Error().Err(err).Str("table", signal.TableID).Msg("failed to release table on disconnect")
		}
	}

	if len(held) > 0 {
		log.Info().Str("conn", c.id).Int("tables", len(held)).Msg("released tables held by closed session")
	}
}

func (c *Client) reject(message string) {
	if err := c.Send(hub.Message{Event: event.Error, Payload: event.ErrorNotice{Message: message}}); err != nil && !errors.Is(err, hub.ErrClosed) {
		log.Warn().Err(err).Str("conn", c.id).Msg("could not report realtime error to client")
	}
}
