package agent_test

import (
	"context"
	"testing"
	"time"

	"resto/infras/otel/mocks"
	"resto/internal/agent"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialStream_ReceivesTopicEvents(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	url := realtimeServer(t, h)

	stream, err := agent.Dial(context.Background(), url, "", "kitchen")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stream.Close() })

	require.NoError(t, stream.Subscribe(context.Background(), event.TopicOrders))
	require.Eventually(t, func() bool { return h.Subscribers(event.TopicOrders) == 1 }, wait, 5*time.Millisecond)

	h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, event.NewOrderChange(event.OrderCreated, nil, "o-1", "new"))

	for {
		select {
		case ev := <-stream.Events():
			if ev.Name != event.OrderUpdate {
				continue
			}

			assert.Equal(t, event.TopicOrders, ev.Topic)

			var change event.OrderChange
			require.NoError(t, ev.Decode(&change))
			assert.Equal(t, "o-1", change.OrderID)

			return
		case <-time.After(wait):
			t.Fatal("no order event received")
		}
	}
}

func TestDialStream_ReaderStopsOnCloseWithoutConsumer(t *testing.T) {
	h := hub.New(mocks.NewOtel())
	url := realtimeServer(t, h)

	stream, err := agent.Dial(context.Background(), url, "", "idle")
	require.NoError(t, err)

	require.NoError(t, stream.Subscribe(context.Background(), event.TopicOrders))
	require.Eventually(t, func() bool { return h.Subscribers(event.TopicOrders) == 1 }, wait, 5*time.Millisecond)

	events := stream.Events()
	for range cap(events) + 16 {
		h.Publish(context.Background(), event.TopicOrders, event.OrderUpdate, event.NewOrderChange(event.OrderCreated, nil, "o-1", "new"))
	}

	require.Eventually(t, func() bool { return len(events) == cap(events) }, wait, 5*time.Millisecond)
	require.NoError(t, stream.Close())

	// The reader gives up on its pending event instead of waiting for room in the buffer.
	drained := 0
	deadline := time.After(wait)

	for {
		select {
		case _, ok := <-events:
			if !ok {
				assert.Equal(t, cap(events), drained)

				return
			}

			drained++
		case <-deadline:
			t.Fatal("event channel never closed after Close")
		}
	}
}
