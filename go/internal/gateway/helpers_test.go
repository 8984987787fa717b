package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mcdev12/salon/go/internal/chess"
	"github.com/mcdev12/salon/go/internal/rooms"
	"github.com/stretchr/testify/require"
)

const afterE4 = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

// handlerFixture wires a handler to a running connection manager whose
// connections are plain buffered channels.
type handlerFixture struct {
	t        *testing.T
	registry *rooms.Registry
	manager  *ConnectionManager
	handler  *Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	return newHandlerFixtureWith(t, func(cm *ConnectionManager) Broadcaster {
		return NewLocalBroadcaster(cm)
	})
}

// newHandlerFixtureWith builds the broadcaster from the fixture's manager
func newHandlerFixtureWith(t *testing.T, broadcaster func(*ConnectionManager) Broadcaster) *handlerFixture {
	t.Helper()

	registry := rooms.NewRegistry(chess.NewEngine())
	cm := NewConnectionManager(DefaultConnectionConfig())
	h := NewHandler(registry, cm, broadcaster(cm), "default")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go cm.Start(ctx)

	return &handlerFixture{t: t, registry: registry, manager: cm, handler: h}
}

func (f *handlerFixture) connect(id string) *Connection {
	c := &Connection{
		ID:          id,
		Send:        make(chan []byte, 16),
		Manager:     f.manager,
		rooms:       make(map[string]bool),
		ConnectedAt: time.Now(),
	}
	f.manager.registerConnection(c)
	// Unregister before the manager shuts down, which would otherwise try
	// to close the missing socket.
	f.t.Cleanup(func() { f.manager.unregisterConnection(c) })
	return c
}

func (f *handlerFixture) send(t *testing.T, c *Connection, eventType EventType, data interface{}) {
	t.Helper()
	f.handler.HandleMessage(c, clientFrame(t, eventType, data))
}

func clientFrame(t *testing.T, eventType EventType, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	frame, err := json.Marshal(ClientMessage{Type: eventType, Data: raw})
	require.NoError(t, err)
	return frame
}

func nextEvent(t *testing.T, c *Connection) RoomEvent {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var event RoomEvent
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatalf("connection %s received no event", c.ID)
		return RoomEvent{}
	}
}

func assertNoEvent(t *testing.T, c *Connection) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("connection %s received unexpected event: %s", c.ID, data)
	case <-time.After(50 * time.Millisecond):
	}
}

func decodePayload[T any](t *testing.T, event RoomEvent) T {
	t.Helper()
	var payload T
	require.NoError(t, json.Unmarshal(event.Data, &payload))
	return payload
}
