// Package agent keeps client-side views in sync with the server. Broadcasts are treated as
// invalidation hints: an agent re-fetches the full filtered list instead of patching its copy.
package agent

import (
	"context"
	"encoding/json"
	"errors"

	"resto/internal/realtime/event"
)

var ErrStreamClosed = errors.New("realtime stream closed")

// Event is one frame received from the hub.
type Event struct {
	Name  event.Name
	Topic event.Topic
	Data  json.RawMessage
}

// Decode unmarshals the payload into dst.
func (e Event) Decode(dst any) error {
	if len(e.Data) == 0 {
		return nil
	}

	return json.Unmarshal(e.Data, dst) //nolint:wrapcheck
}

// Stream is a realtime connection as seen by an agent. Events is closed when the
// connection ends.
type Stream interface {
	Subscribe(ctx context.Context, topic event.Topic) error
	Events() <-chan Event
	Signal(ctx context.Context, name event.Name, signal event.TableSignal) error
	Close() error
}
