package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcdev12/salon/go/internal/chess"
	"github.com/mcdev12/salon/go/internal/rooms"
	"github.com/rs/zerolog/log"
)

// RoomRegistry defines what the gateway needs from the room registry
type RoomRegistry interface {
	Join(roomID, connID string) rooms.Snapshot
	Move(roomID, notation string) (rooms.MoveOutcome, error)
	Reset(roomID string) (*rooms.Room, rooms.Snapshot)
	Leave(connID string) []string
}

// Messages sent back to clients
const (
	msgInvalidUCI   = "invalid uci"
	msgIllegalMove  = "illegal move"
	msgGameNotFound = "game not found"
	msgBadMessage   = "invalid message"
	msgUnknownEvent = "unknown event type"
	msgInternal     = "internal error"
)

// Handler dispatches client events to the room registry and relays results
type Handler struct {
	registry    RoomRegistry
	manager     *ConnectionManager
	broadcaster Broadcaster
	defaultRoom string
}

// NewHandler creates a handler and attaches it to cm
func NewHandler(registry RoomRegistry, cm *ConnectionManager, broadcaster Broadcaster, defaultRoom string) *Handler {
	h := &Handler{
		registry:    registry,
		manager:     cm,
		broadcaster: broadcaster,
		defaultRoom: defaultRoom,
	}
	cm.SetHandler(h)
	return h
}

// HandleMessage decodes one client frame and dispatches it by type
func (h *Handler) HandleMessage(conn *Connection, message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Debug().Err(err).Str("connection_id", conn.ID).Msg("undecodable client message")
		h.replyError(conn, "", msgBadMessage)
		return
	}

	ctx := context.Background()
	switch msg.Type {
	case EventTypeJoinGame:
		var req JoinRequest
		if err := decodeRequest(msg.Data, &req); err != nil {
			h.replyError(conn, "", msgBadMessage)
			return
		}
		if err := req.Validate(h.defaultRoom); err != nil {
			h.replyError(conn, "", err.Error())
			return
		}
		h.handleJoin(conn, req)

	case EventTypeMakeMove:
		var req MoveRequest
		if err := decodeRequest(msg.Data, &req); err != nil {
			h.replyError(conn, "", msgBadMessage)
			return
		}
		if err := req.Validate(h.defaultRoom); err != nil {
			h.replyError(conn, "", err.Error())
			return
		}
		h.handleMove(ctx, conn, req)

	case EventTypeResetGame:
		var req ResetRequest
		if err := decodeRequest(msg.Data, &req); err != nil {
			h.replyError(conn, "", msgBadMessage)
			return
		}
		if err := req.Validate(h.defaultRoom); err != nil {
			h.replyError(conn, "", err.Error())
			return
		}
		h.handleReset(ctx, conn, req)

	default:
		h.replyError(conn, "", msgUnknownEvent)
	}
}

// HandleDisconnect drops the connection from every room it joined
func (h *Handler) HandleDisconnect(conn *Connection) {
	left := h.registry.Leave(conn.ID)
	if len(left) > 0 {
		log.Debug().
			Str("connection_id", conn.ID).
			Strs("room_ids", left).
			Msg("connection left rooms")
	}
}

func (h *Handler) handleJoin(conn *Connection, req JoinRequest) {
	h.manager.Subscribe(conn, req.Room)
	snap := h.registry.Join(req.Room, conn.ID)

	log.Info().
		Str("connection_id", conn.ID).
		Str("room_id", req.Room).
		Int("participants", len(snap.Participants)).
		Msg("joined room")

	h.reply(conn, req.Room, EventTypeGameState, GameStatePayload{FEN: snap.FEN, Seq: snap.Seq})
}

func (h *Handler) handleMove(ctx context.Context, conn *Connection, req MoveRequest) {
	outcome, err := h.registry.Move(req.Room, req.UCI)
	switch {
	case err == nil:
		h.broadcast(ctx, req.Room, EventTypeMoveMade, MoveMadePayload{
			UCI:     outcome.Notation,
			FEN:     outcome.FEN,
			Seq:     outcome.Seq,
			Outcome: outcome.Outcome,
		})
		log.Debug().
			Str("connection_id", conn.ID).
			Str("room_id", req.Room).
			Str("uci", req.UCI).
			Uint64("seq", outcome.Seq).
			Msg("move applied")

	case errors.Is(err, rooms.ErrRoomNotFound):
		h.replyError(conn, req.Room, msgGameNotFound)

	case errors.Is(err, chess.ErrMalformedMove):
		h.reply(conn, req.Room, EventTypeInvalidMove, InvalidMovePayload{Msg: msgInvalidUCI, Reason: ReasonMalformed})

	case errors.Is(err, chess.ErrIllegalMove):
		h.reply(conn, req.Room, EventTypeInvalidMove, InvalidMovePayload{Msg: msgIllegalMove, Reason: ReasonIllegal})

	default:
		log.Error().Err(err).Str("room_id", req.Room).Msg("unexpected move error")
		h.replyError(conn, req.Room, msgInternal)
	}
}

// handleReset broadcasts to the room channel rather than the participants,
// which the reset has just cleared.
func (h *Handler) handleReset(ctx context.Context, conn *Connection, req ResetRequest) {
	_, snap := h.registry.Reset(req.Room)

	log.Info().
		Str("connection_id", conn.ID).
		Str("room_id", req.Room).
		Msg("room reset")

	h.broadcast(ctx, req.Room, EventTypeGameState, GameStatePayload{FEN: snap.FEN, Seq: snap.Seq})
}

func (h *Handler) reply(conn *Connection, roomID string, eventType EventType, payload interface{}) {
	event, err := NewRoomEvent(roomID, eventType, payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to build reply")
		return
	}
	h.manager.SendToConnection(conn, event)
}

func (h *Handler) replyError(conn *Connection, roomID, msg string) {
	h.reply(conn, roomID, EventTypeError, ErrorPayload{Msg: msg})
}

func (h *Handler) broadcast(ctx context.Context, roomID string, eventType EventType, payload interface{}) {
	event, err := NewRoomEvent(roomID, eventType, payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to build broadcast")
		return
	}
	if err := h.broadcaster.Broadcast(ctx, roomID, event); err != nil {
		log.Error().
			Err(err).
			Str("room_id", roomID).
			Str("event_type", string(eventType)).
			Msg("failed to broadcast event")
	}
}

func decodeRequest(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
