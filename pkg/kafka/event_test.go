package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

func TestNewEvent(t *testing.T) {
	evt, err := NewEvent("storefront.cart.updated", "user-1", "cart", "storefront", samplePayload{UserID: "user-1", Count: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, "storefront.cart.updated", evt.EventType)
	assert.Equal(t, "user-1", evt.AggregateID)
	assert.Equal(t, "cart", evt.AggregateType)
	assert.Equal(t, "storefront", evt.Source)
	assert.False(t, evt.Timestamp.IsZero())
}

func TestNewEvent_RejectsUnmarshalablePayload(t *testing.T) {
	_, err := NewEvent("topic", "id", "type", "source", make(chan int))
	assert.Error(t, err)
}

func TestEvent_DataRoundTrip(t *testing.T) {
	evt, err := NewEvent("storefront.cart.updated", "user-1", "cart", "storefront", samplePayload{UserID: "user-1", Count: 3})
	require.NoError(t, err)

	var decoded samplePayload
	require.NoError(t, evt.UnmarshalData(&decoded))
	assert.Equal(t, "user-1", decoded.UserID)
	assert.Equal(t, 3, decoded.Count)
}

func TestEvent_Marshal(t *testing.T) {
	evt, err := NewEvent("storefront.order.placed", "order-1", "order", "storefront", samplePayload{})
	require.NoError(t, err)

	data, err := evt.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_type":"storefront.order.placed"`)
}

func TestWithCorrelationID(t *testing.T) {
	evt, err := NewEvent("topic", "id", "type", "source", samplePayload{})
	require.NoError(t, err)

	evt.WithCorrelationID("corr-123")
	assert.Equal(t, "corr-123", evt.CorrelationID)
}
