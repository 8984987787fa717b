// Package rooms tracks the live chess rooms. The Registry is the sole owner
// of every Room; each Room serializes its own joins, moves and resets.
package rooms

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Registry maps room ids to rooms and creates them lazily
type Registry struct {
	engine Engine
	clock  clockwork.Clock

	mu    sync.RWMutex
	rooms map[string]*Room
}

// Option configures a Registry
type Option func(*Registry)

// WithClock sets the clock used for room activity timestamps
func WithClock(clock clockwork.Clock) Option {
	return func(r *Registry) {
		r.clock = clock
	}
}

// NewRegistry creates an empty registry
func NewRegistry(engine Engine, opts ...Option) *Registry {
	r := &Registry{
		engine: engine,
		clock:  clockwork.NewRealClock(),
		rooms:  make(map[string]*Room),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the room for id, creating it if needed. Concurrent
// callers for the same id always get the same *Room.
func (r *Registry) GetOrCreate(id string) *Room {
	r.mu.RLock()
	room, ok := r.rooms[id]
	r.mu.RUnlock()
	if ok {
		return room
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Someone may have won the race between the two locks
	if room, ok := r.rooms[id]; ok {
		return room
	}
	room = newRoom(id, r.engine, r.clock)
	r.rooms[id] = room

	log.Debug().
		Str("room_id", id).
		Int("total_rooms", len(r.rooms)).
		Msg("room created")

	return room
}

// Get looks up a room without creating it
func (r *Registry) Get(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Join adds connID to the room for id, creating the room if needed.
func (r *Registry) Join(id, connID string) Snapshot {
	var snap Snapshot
	r.withRoom(id, func(room *Room) {
		snap = room.Join(connID)
	})
	return snap
}

// Move applies notation in the room for id. Rooms are never created by a move.
// The registry lock is released before the move is applied; a room evicted in
// between reports ErrRoomNotFound.
func (r *Registry) Move(id, notation string) (MoveOutcome, error) {
	room, ok := r.Get(id)
	if !ok {
		return MoveOutcome{}, fmt.Errorf("move in %q: %w", id, ErrRoomNotFound)
	}
	return room.AttemptMove(notation)
}

// Reset starts a fresh game in the room for id, creating the room if it does
// not exist yet. The *Room for an id keeps its identity across resets.
func (r *Registry) Reset(id string) (*Room, Snapshot) {
	var (
		target *Room
		snap   Snapshot
	)
	r.withRoom(id, func(room *Room) {
		target = room
		snap = room.Reset()
	})
	return target, snap
}

// Leave removes connID from every room it joined and returns those room ids
func (r *Registry) Leave(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var left []string
	for id, room := range r.rooms {
		if room.Leave(connID) {
			left = append(left, id)
		}
	}
	sort.Strings(left)
	return left
}

// Len returns the number of live rooms
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Snapshots returns a snapshot of every room ordered by id
func (r *Registry) Snapshots() []Snapshot {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	snaps := make([]Snapshot, 0, len(rooms))
	for _, room := range rooms {
		snaps = append(snaps, room.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].RoomID < snaps[j].RoomID })
	return snaps
}

// Evict removes rooms that have no participants and no activity within ttl.
// It returns the evicted ids.
func (r *Registry) Evict(ttl time.Duration) []string {
	cutoff := r.clock.Now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, room := range r.rooms {
		if room.evictIfIdle(cutoff) {
			delete(r.rooms, id)
			evicted = append(evicted, id)
		}
	}
	sort.Strings(evicted)
	return evicted
}

// withRoom runs fn against the room for id while holding the read lock, so
// the room cannot be evicted underneath fn. Only joins and resets go through
// here; neither replays move history, so the lock is held briefly.
func (r *Registry) withRoom(id string, fn func(*Room)) {
	for {
		r.mu.RLock()
		room, ok := r.rooms[id]
		if ok {
			fn(room)
			r.mu.RUnlock()
			return
		}
		r.mu.RUnlock()
		r.GetOrCreate(id)
	}
}
