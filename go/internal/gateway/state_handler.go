package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcdev12/salon/go/internal/rooms"
	"github.com/rs/zerolog/log"
)

// StateProvider defines what the state handler needs to read room state
type StateProvider interface {
	Get(roomID string) (*rooms.Room, bool)
	Snapshots() []rooms.Snapshot
}

// RoomSummary is one entry of the room listing
type RoomSummary struct {
	RoomID       string    `json:"room_id"`
	FEN          string    `json:"fen"`
	Seq          uint64    `json:"seq"`
	Outcome      string    `json:"outcome"`
	Participants int       `json:"participants"`
	Subscribers  int       `json:"subscribers"`
	LastActive   time.Time `json:"last_active"`
}

// StateHandler handles HTTP requests for room state
type StateHandler struct {
	stateProvider     StateProvider
	connectionManager *ConnectionManager
}

// NewStateHandler creates a new state handler
func NewStateHandler(provider StateProvider, cm *ConnectionManager) *StateHandler {
	return &StateHandler{
		stateProvider:     provider,
		connectionManager: cm,
	}
}

// HandleGetRoomState handles GET /api/rooms/{id}/state
func (h *StateHandler) HandleGetRoomState(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "room id is required"})
		return
	}

	room, ok := h.stateProvider.Get(roomID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}

	writeJSON(w, http.StatusOK, room.Snapshot())
}

// HandleListRooms handles GET /api/rooms
func (h *StateHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	stats := h.connectionManager.GetConnectionStats()

	snaps := h.stateProvider.Snapshots()
	summaries := make([]RoomSummary, 0, len(snaps))
	for _, s := range snaps {
		summaries = append(summaries, RoomSummary{
			RoomID:       s.RoomID,
			FEN:          s.FEN,
			Seq:          s.Seq,
			Outcome:      s.Outcome,
			Participants: len(s.Participants),
			Subscribers:  stats.RoomConnections[s.RoomID],
			LastActive:   s.LastActive,
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

// RegisterStateRoutes registers state-related HTTP routes
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/rooms", h.HandleListRooms)
	mux.HandleFunc("GET /api/rooms/{id}/state", h.HandleGetRoomState)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
