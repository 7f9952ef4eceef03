package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"

	"github.com/rs/zerolog/log"
)

// LocalStream attaches to a hub in the same process.
type LocalStream struct {
	hub    *hub.Hub
	conn   *hub.LocalConn
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func NewLocalStream(h *hub.Hub, name string, buffer int) (*LocalStream, error) {
	conn := hub.NewLocalConn(name, buffer)
	if err := h.Register(conn); err != nil {
		return nil, fmt.Errorf("failed to register local stream: %w", err)
	}

	stream := &LocalStream{
		hub:    h,
		conn:   conn,
		events: make(chan Event, max(buffer, 1)),
		done:   make(chan struct{}),
	}

	go stream.pump()

	return stream, nil
}

func (s *LocalStream) pump() {
	defer close(s.events)

	for msg := range s.conn.Messages() {
		data, err := json.Marshal(msg.Payload)
		if err != nil {
			log.Error().Err(err).Str("event", string(msg.Event)).Msg("failed to encode local event")

			continue
		}

		select {
		case s.events <- Event{Name: msg.Event, Topic: msg.Topic, Data: data}:
		case <-s.done:
			return
		}
	}
}

func (s *LocalStream) Subscribe(_ context.Context, topic event.Topic) error {
	return s.hub.Subscribe(s.conn, topic) //nolint:wrapcheck
}

func (s *LocalStream) Events() <-chan Event {
	return s.events
}

func (s *LocalStream) Signal(ctx context.Context, name event.Name, signal event.TableSignal) error {
	signal.Timestamp = event.Timestamp()

	var err error
	if event.IsServiceRequest(name) {
		_, err = s.hub.RelayServiceRequest(ctx, name, signal)
	} else {
		_, err = s.hub.RelayTableSignal(ctx, name, signal)
	}

	return err //nolint:wrapcheck
}

func (s *LocalStream) Close() error {
	s.once.Do(func() { close(s.done) })
	s.hub.Disconnect(s.conn)

	return nil
}
