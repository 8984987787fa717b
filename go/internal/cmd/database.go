package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mcdev12/salon/go/internal/config"
	"github.com/mcdev12/salon/go/internal/database"
	"github.com/mcdev12/salon/go/internal/leaderboard"
	"github.com/rs/zerolog/log"
)

// leaderboardStore is the configured leaderboard repository and whatever
// must be released with it.
type leaderboardStore struct {
	Repository leaderboard.LeaderboardRepository
	pool       *database.Pool
}

func (s *leaderboardStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Health pings the database. The memory backend is always healthy.
func (s *leaderboardStore) Health(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Health(ctx, 2*time.Second)
}

func setupLeaderboardStore(ctx context.Context, cfg config.Config) (*leaderboardStore, error) {
	if cfg.Leaderboard.Backend == config.BackendMemory {
		log.Warn().Msg("using in-memory leaderboard, results are lost on restart")
		return &leaderboardStore{Repository: leaderboard.NewMemoryRepository(nil)}, nil
	}

	dbCfg := cfg.Database.Config
	if cfg.Database.AutoMigrate {
		res, err := database.Migrate(dbCfg.DSN(), database.Up, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info().
			Uint("version", res.Version).
			Bool("no_change", res.NoChange).
			Msg("database migrated")
	}

	pool, err := database.NewPool(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &leaderboardStore{
		Repository: leaderboard.NewRepository(pool.DB()),
		pool:       pool,
	}, nil
}
