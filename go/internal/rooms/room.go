package rooms

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/salon/go/internal/chess"
)

// Engine is what a room needs from the position engine
type Engine interface {
	NewGame() chess.Position
	ApplyIfLegal(p chess.Position, notation string) (chess.Position, error)
	Serialize(p chess.Position) string
	Outcome(p chess.Position) string
}

// Snapshot is a consistent view of a room taken after a completed operation
type Snapshot struct {
	RoomID       string    `json:"room_id"`
	FEN          string    `json:"fen"`
	Seq          uint64    `json:"seq"`
	Outcome      string    `json:"outcome"`
	Participants []string  `json:"participants"`
	LastActive   time.Time `json:"last_active"`
}

// MoveOutcome is the result of an accepted move
type MoveOutcome struct {
	RoomID   string `json:"room_id"`
	Notation string `json:"uci"`
	FEN      string `json:"fen"`
	Seq      uint64 `json:"seq"`
	Outcome  string `json:"outcome"`
}

// Room holds one game session. All methods are safe for concurrent use and
// serialized by the room's own lock. seq starts at zero and grows with every
// accepted move and reset.
type Room struct {
	ID string

	engine Engine
	clock  clockwork.Clock

	mu           sync.Mutex
	position     chess.Position
	state        string
	outcome      string
	seq          uint64
	participants map[string]struct{}
	lastActive   time.Time
	evicted      bool
}

func newRoom(id string, engine Engine, clock clockwork.Clock) *Room {
	r := &Room{
		ID:     id,
		engine: engine,
		clock:  clock,
	}
	r.reinitialize()
	return r
}

// reinitialize must be called with mu held (or before the room is shared).
func (r *Room) reinitialize() {
	r.setPosition(r.engine.NewGame())
	r.participants = make(map[string]struct{})
}

// setPosition is the only place position changes, so state never diverges
// from the position it serializes. Callers bump seq.
func (r *Room) setPosition(p chess.Position) {
	r.position = p
	r.state = r.engine.Serialize(p)
	r.outcome = r.engine.Outcome(p)
	r.lastActive = r.clock.Now()
}

// Join adds connID to the participants and returns the current state.
// Joining twice is a no-op.
func (r *Room) Join(connID string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.participants[connID] = struct{}{}
	r.lastActive = r.clock.Now()
	return r.snapshotLocked()
}

// Leave removes connID from the participants, reporting whether it was present
func (r *Room) Leave(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[connID]; !ok {
		return false
	}
	delete(r.participants, connID)
	r.lastActive = r.clock.Now()
	return true
}

// AttemptMove validates and applies notation. On error the room is unchanged
// and the error wraps chess.ErrMalformedMove or chess.ErrIllegalMove, or
// ErrRoomNotFound once the room has been evicted. The outcome carries the
// move as the engine normalized it.
func (r *Room) AttemptMove(notation string) (MoveOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.evicted {
		return MoveOutcome{}, fmt.Errorf("move in %q: %w", r.ID, ErrRoomNotFound)
	}

	next, err := r.engine.ApplyIfLegal(r.position, notation)
	if err != nil {
		return MoveOutcome{}, err
	}
	r.setPosition(next)
	r.seq++

	if played := next.Moves(); len(played) > 0 {
		notation = played[len(played)-1]
	}
	return MoveOutcome{
		RoomID:   r.ID,
		Notation: notation,
		FEN:      r.state,
		Seq:      r.seq,
		Outcome:  r.outcome,
	}, nil
}

// Reset starts a new game and clears the participants.
func (r *Room) Reset() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reinitialize()
	r.seq++
	return r.snapshotLocked()
}

// Snapshot returns the current state of the room
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() Snapshot {
	participants := make([]string, 0, len(r.participants))
	for id := range r.participants {
		participants = append(participants, id)
	}
	sort.Strings(participants)

	return Snapshot{
		RoomID:       r.ID,
		FEN:          r.state,
		Seq:          r.seq,
		Outcome:      r.outcome,
		Participants: participants,
		LastActive:   r.lastActive,
	}
}

// evictIfIdle marks the room evicted when it has no participants and has
// seen no activity since cutoff. An evicted room rejects further moves.
func (r *Room) evictIfIdle(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.participants) > 0 || r.lastActive.After(cutoff) {
		return false
	}
	r.evicted = true
	return true
}
