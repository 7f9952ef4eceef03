package event_test

import (
	"encoding/json"
	"testing"

	"resto/internal/realtime/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopic(t *testing.T) {
	topic, ok := event.ParseTopic("menu-items")
	assert.True(t, ok)
	assert.Equal(t, event.TopicMenuItems, topic)

	_, ok = event.ParseTopic("kitchen")
	assert.False(t, ok)
}

func TestParseControl(t *testing.T) {
	envelope, err := event.ParseControl([]byte(" subscribe:tables\n"))
	require.NoError(t, err)
	assert.Equal(t, event.Name("subscribe:tables"), envelope.Event)

	envelope, err = event.ParseControl([]byte(`{"event":"bell_request","data":{"tableId":"t-5","tableLabel":"Table 5"}}`))
	require.NoError(t, err)
	assert.Equal(t, event.BellRequest, envelope.Event)

	var signal event.TableSignal
	require.NoError(t, json.Unmarshal(envelope.Data, &signal))
	assert.Equal(t, "t-5", signal.TableID)

	_, err = event.ParseControl([]byte(`{"event":`))
	assert.Error(t, err)
}

func TestOrderChange_JSON(t *testing.T) {
	change := event.NewOrderChange(event.OrderStatusChanged, map[string]string{"id": "o-1"}, "o-1", "cooking")

	raw, err := json.Marshal(change)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "order_status_changed", decoded["type"])
	assert.Equal(t, "cooking", decoded["status"])
	assert.Equal(t, "o-1", decoded["orderId"])
	assert.NotEmpty(t, decoded["timestamp"])
}

func TestTableChange_OmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(event.NewTableChange(event.TableDeleted, nil, "t-1"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.NotContains(t, decoded, "table")
	assert.Equal(t, "t-1", decoded["tableId"])
}

func TestSignalKinds(t *testing.T) {
	assert.True(t, event.IsServiceRequest(event.BillRequest))
	assert.False(t, event.IsServiceRequest(event.TableBlocked))
	assert.True(t, event.IsTableSignal(event.TableReleased))
	assert.False(t, event.IsTableSignal(event.OrderUpdate))
}
