package rooms

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// JanitorConfig controls idle room eviction. A zero IdleTTL disables it.
type JanitorConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// Janitor periodically evicts idle rooms from a Registry
type Janitor struct {
	registry *Registry
	clock    clockwork.Clock
	config   JanitorConfig
}

// NewJanitor creates a janitor for registry
func NewJanitor(registry *Registry, clock clockwork.Clock, config JanitorConfig) *Janitor {
	return &Janitor{
		registry: registry,
		clock:    clock,
		config:   config,
	}
}

// Start sweeps until ctx is cancelled
func (j *Janitor) Start(ctx context.Context) {
	if j.config.IdleTTL <= 0 || j.config.SweepInterval <= 0 {
		log.Info().Msg("idle room eviction disabled")
		return
	}

	log.Info().
		Dur("idle_ttl", j.config.IdleTTL).
		Dur("sweep_interval", j.config.SweepInterval).
		Msg("room janitor started")

	ticker := j.clock.NewTicker(j.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("room janitor shutting down")
			return
		case <-ticker.Chan():
			j.Sweep()
		}
	}
}

// Sweep runs a single eviction pass
func (j *Janitor) Sweep() []string {
	evicted := j.registry.Evict(j.config.IdleTTL)
	if len(evicted) > 0 {
		log.Info().
			Strs("room_ids", evicted).
			Int("remaining", j.registry.Len()).
			Msg("evicted idle rooms")
	}
	return evicted
}
