package leaderboard

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
)

// MemoryRepository keeps entries in process. Used when no database is
// configured and in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	entries []Entry
	nextID  int64
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository(clock clockwork.Clock) *MemoryRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryRepository{clock: clock}
}

// Insert records a result
func (r *MemoryRepository) Insert(_ context.Context, req SubmitRequest) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	e := Entry{
		ID:        r.nextID,
		Name:      req.Name,
		Score:     req.Score,
		Total:     req.Total,
		Timestamp: r.clock.Now().UTC(),
	}
	r.entries = append(r.entries, e)
	return &e, nil
}

// Top returns up to limit entries in rank order
func (r *MemoryRepository) Top(_ context.Context, limit int) ([]Entry, error) {
	r.mu.RLock()
	ranked := make([]Entry, len(r.entries))
	copy(ranked, r.entries)
	r.mu.RUnlock()

	sort.Slice(ranked, func(i, j int) bool { return ranksBefore(ranked[i], ranked[j]) })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
