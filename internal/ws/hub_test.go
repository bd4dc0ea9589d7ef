package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(buffer int) *Client {
	return &Client{
		send:   make(chan any, buffer),
		done:   make(chan struct{}),
		userID: "u1",
	}
}

func TestHubBroadcastReachesSubscribers(t *testing.T) {
	h := NewHub(zap.NewNop().Sugar())
	a := testClient(4)
	b := testClient(4)
	other := testClient(4)

	h.Subscribe("c1", a)
	h.Subscribe("c1", b)
	h.Subscribe("c2", other)

	h.Broadcast("c1", "payload")

	assert.Equal(t, "payload", <-a.send)
	assert.Equal(t, "payload", <-b.send)
	assert.Empty(t, other.send)
}

func TestHubSlowClientIsSkipped(t *testing.T) {
	h := NewHub(zap.NewNop().Sugar())
	slow := testClient(1)
	h.Subscribe("c1", slow)

	h.Broadcast("c1", "first")
	h.Broadcast("c1", "second") // buffer full, dropped instead of blocking

	require.Len(t, slow.send, 1)
	assert.Equal(t, "first", <-slow.send)
}

func TestHubUnsubscribe(t *testing.T) {
	h := NewHub(zap.NewNop().Sugar())
	c := testClient(4)

	h.Subscribe("c1", c)
	assert.Equal(t, 1, h.Subscribers("c1"))

	h.Unsubscribe("c1", c)
	assert.Equal(t, 0, h.Subscribers("c1"))

	h.Broadcast("c1", "payload")
	assert.Empty(t, c.send)
}

func TestHubDropRemovesEverywhere(t *testing.T) {
	h := NewHub(zap.NewNop().Sugar())
	c := testClient(4)

	h.Subscribe("c1", c)
	h.Subscribe("c2", c)
	h.Drop(c)

	assert.Equal(t, 0, h.Subscribers("c1"))
	assert.Equal(t, 0, h.Subscribers("c2"))
}
