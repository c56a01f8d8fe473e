package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()

	// No Run loop draining the channel: fill past the buffer and make
	// sure Publish drops instead of blocking.
	for i := 0; i < 200; i++ {
		hub.Publish("wallet_adjusted", "test", nil)
	}

	assert.Equal(t, 0, hub.ClientCount())
}

func TestPublishQueuesEvent(t *testing.T) {
	hub := NewHub()

	hub.Publish("commission_paid", "Commission paid", map[string]interface{}{"amount": 100.0})

	event := <-hub.broadcast
	assert.Equal(t, "commission_paid", event.Type)
	assert.Equal(t, "Commission paid", event.Message)
	assert.False(t, event.Timestamp.IsZero())
}
