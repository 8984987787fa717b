package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcdev12/salon/go/internal/chess"
	"github.com/mcdev12/salon/go/internal/rooms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestService(t *testing.T) (*httptest.Server, *Service) {
	t.Helper()

	registry := rooms.NewRegistry(chess.NewEngine())
	svc, err := NewService(DefaultConfig(), registry)
	require.NoError(t, err)

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)

	ctx, cancel := context.WithCancel(context.Background())
	go svc.Start(ctx)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv, svc
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chess"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func emit(t *testing.T, conn *websocket.Conn, eventType EventType, data interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, clientFrame(t, eventType, data)))
}

func receive(t *testing.T, conn *websocket.Conn) RoomEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event RoomEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestService_TwoPlayerRoom(t *testing.T) {
	srv, _ := startTestService(t)
	a := dial(t, srv)
	b := dial(t, srv)

	emit(t, a, EventTypeJoinGame, JoinRequest{Room: "r1"})
	event := receive(t, a)
	require.Equal(t, EventTypeGameState, event.Type)
	assert.Equal(t, chess.StartingFEN, decodePayload[GameStatePayload](t, event).FEN)

	emit(t, a, EventTypeMakeMove, MoveRequest{Room: "r1", UCI: "e2e4"})
	event = receive(t, a)
	require.Equal(t, EventTypeMoveMade, event.Type)
	assert.Equal(t, afterE4, decodePayload[MoveMadePayload](t, event).FEN)

	emit(t, b, EventTypeJoinGame, JoinRequest{Room: "r1"})
	event = receive(t, b)
	require.Equal(t, EventTypeGameState, event.Type)
	assert.Equal(t, afterE4, decodePayload[GameStatePayload](t, event).FEN)

	emit(t, b, EventTypeMakeMove, MoveRequest{Room: "r1", UCI: "e7e5e5"})
	event = receive(t, b)
	require.Equal(t, EventTypeInvalidMove, event.Type)
	assert.Equal(t, ReasonMalformed, decodePayload[InvalidMovePayload](t, event).Reason)

	// a never sees the rejected move: its next event is b's legal reply
	emit(t, b, EventTypeMakeMove, MoveRequest{Room: "r1", UCI: "e7e5"})
	for _, conn := range []*websocket.Conn{a, b} {
		event = receive(t, conn)
		require.Equal(t, EventTypeMoveMade, event.Type)
		payload := decodePayload[MoveMadePayload](t, event)
		assert.Equal(t, "e7e5", payload.UCI)
		assert.Equal(t, uint64(2), payload.Seq)
	}
}

func TestService_RoomStateEndpoints(t *testing.T) {
	srv, svc := startTestService(t)
	a := dial(t, srv)

	emit(t, a, EventTypeJoinGame, JoinRequest{Room: "r1"})
	receive(t, a)
	emit(t, a, EventTypeMakeMove, MoveRequest{Room: "r1", UCI: "e2e4"})
	receive(t, a)

	resp, err := http.Get(srv.URL + "/api/rooms/r1/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap rooms.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "r1", snap.RoomID)
	assert.Equal(t, afterE4, snap.FEN)
	assert.Len(t, snap.Participants, 1)

	resp, err = http.Get(srv.URL + "/api/rooms/missing/state")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/rooms")
	require.NoError(t, err)
	defer resp.Body.Close()
	var summaries []RoomSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Participants)
	assert.Equal(t, 1, summaries[0].Subscribers)

	stats := svc.GetStats()
	assert.Equal(t, 1, stats.TotalConnections)
	assert.Equal(t, 1, stats.ActiveRooms)
}

func TestService_DisconnectRemovesParticipant(t *testing.T) {
	srv, _ := startTestService(t)
	a := dial(t, srv)

	emit(t, a, EventTypeJoinGame, JoinRequest{Room: "r1"})
	receive(t, a)
	require.NoError(t, a.Close())

	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/api/rooms/r1/state")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var snap rooms.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return false
		}
		return len(snap.Participants) == 0
	}, 2*time.Second, 20*time.Millisecond)
}
