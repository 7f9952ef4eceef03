package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"resto/internal/realtime/event"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
	eventBuffer  = 64
)

// DialStream is a websocket connection to a remote server.
type DialStream struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial connects to rawURL (ws:// or wss://). A non-empty token identifies staff;
// otherwise name is shown as the display name.
func Dial(ctx context.Context, rawURL, token, name string) (*DialStream, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid realtime url: %w", err)
	}

	query := target.Query()
	if token != "" {
		query.Set("token", token)
	}

	if name != "" {
		query.Set("name", name)
	}

	target.RawQuery = query.Encode()

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: dialTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, target.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to dial realtime server: %w", err)
	}

	stream := &DialStream{
		conn:   conn,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}

	go stream.readPump()

	return stream, nil
}

func (s *DialStream) readPump() {
	defer close(s.events)

	for {
		var envelope event.Envelope
		if err := s.conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("realtime stream ended")
			}

			return
		}

		if envelope.Event == event.Error {
			log.Warn().RawJSON("data", envelope.Data).Msg("realtime server rejected a message")
		}

		select {
		case s.events <- Event{Name: envelope.Event, Topic: envelope.Topic, Data: envelope.Data}:
		case <-s.done:
			return
		}
	}
}

func (s *DialStream) Subscribe(_ context.Context, topic event.Topic) error {
	return s.write(websocket.TextMessage, []byte(event.SubscribePrefix+string(topic)))
}

func (s *DialStream) Events() <-chan Event {
	return s.events
}

func (s *DialStream) Signal(_ context.Context, name event.Name, signal event.TableSignal) error {
	data, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("failed to encode signal: %w", err)
	}

	frame, err := json.Marshal(event.Envelope{Event: name, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	return s.write(websocket.TextMessage, frame)
}

func (s *DialStream) write(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if err := s.conn.WriteMessage(messageType, data); err != nil {
		return fmt.Errorf("failed to write to realtime stream: %w", err)
	}

	return nil
}

func (s *DialStream) Close() error {
	var err error

	s.closeOnce.Do(func() {
		close(s.done)

		closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(writeTimeout))

		err = s.conn.Close()
	})

	return err //nolint:wrapcheck
}
