package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoomEvent is the envelope for every frame sent to a client
type RoomEvent struct {
	ID        string          `json:"id"`        // Event UUID
	RoomID    string          `json:"room_id"`   // Room the event belongs to
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// ClientMessage is the envelope for every frame received from a client
type ClientMessage struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventType represents the type of a gateway event
type EventType string

// Inbound event types
const (
	EventTypeJoinGame  EventType = "join_game"
	EventTypeMakeMove  EventType = "make_move"
	EventTypeResetGame EventType = "reset_game"
)

// Outbound event types
const (
	EventTypeGameState   EventType = "game_state"
	EventTypeMoveMade    EventType = "move_made"
	EventTypeInvalidMove EventType = "invalid_move"
	EventTypeError       EventType = "error"
)

// Invalid move reasons
const (
	ReasonMalformed = "malformed"
	ReasonIllegal   = "illegal"
)

// MaxRoomIDLength bounds client supplied room ids
const MaxRoomIDLength = 64

// ErrInvalidRequest is returned when a client request fails validation
var ErrInvalidRequest = errors.New("invalid request")

// JoinRequest asks to join a room and receive its current state
type JoinRequest struct {
	Room string `json:"room"`
}

// MoveRequest asks to play a move in a room
type MoveRequest struct {
	Room string `json:"room"`
	UCI  string `json:"uci"`
}

// ResetRequest asks to start a new game in a room
type ResetRequest struct {
	Room string `json:"room"`
}

// Validate normalizes the room id
func (r *JoinRequest) Validate(defaultRoom string) error {
	room, err := normalizeRoom(r.Room, defaultRoom)
	r.Room = room
	return err
}

// Validate normalizes the room id. The move itself is judged by the room.
func (r *MoveRequest) Validate(defaultRoom string) error {
	room, err := normalizeRoom(r.Room, defaultRoom)
	r.Room = room
	return err
}

// Validate normalizes the room id
func (r *ResetRequest) Validate(defaultRoom string) error {
	room, err := normalizeRoom(r.Room, defaultRoom)
	r.Room = room
	return err
}

func normalizeRoom(room, defaultRoom string) (string, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return defaultRoom, nil
	}
	if len(room) > MaxRoomIDLength {
		return "", fmt.Errorf("%w: room id longer than %d bytes", ErrInvalidRequest, MaxRoomIDLength)
	}
	return room, nil
}

// GameStatePayload carries the full serialized position
type GameStatePayload struct {
	FEN string `json:"fen"`
	Seq uint64 `json:"seq"`
}

// MoveMadePayload is broadcast after an accepted move
type MoveMadePayload struct {
	UCI     string `json:"uci"`
	FEN     string `json:"fen"`
	Seq     uint64 `json:"seq"`
	Outcome string `json:"outcome"`
}

// InvalidMovePayload is sent to the mover only
type InvalidMovePayload struct {
	Msg    string `json:"msg"`
	Reason string `json:"reason"`
}

// ErrorPayload is sent to the originating connection only
type ErrorPayload struct {
	Msg string `json:"msg"`
}

// NewRoomEvent wraps payload in an event envelope
func NewRoomEvent(roomID string, eventType EventType, payload interface{}) (*RoomEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	return &RoomEvent{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}, nil
}

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *RoomEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeGameState:
		var payload GameStatePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeMoveMade:
		var payload MoveMadePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeInvalidMove:
		var payload InvalidMovePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeError:
		var payload ErrorPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("unknown event type: %s", event.Type)
	}
}
