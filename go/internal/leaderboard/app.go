package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// LeaderboardRepository defines what the app layer needs from storage
type LeaderboardRepository interface {
	Insert(ctx context.Context, req SubmitRequest) (*Entry, error)
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// App handles leaderboard business logic
type App struct {
	repo LeaderboardRepository
}

// NewApp creates a new leaderboard App
func NewApp(repo LeaderboardRepository) *App {
	return &App{repo: repo}
}

// Submit records a quiz result. A blank name is stored as DefaultName.
func (a *App) Submit(ctx context.Context, req SubmitRequest) (*Entry, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = DefaultName
	}

	entry, err := a.repo.Insert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit result: %w", err)
	}

	log.Info().
		Str("name", entry.Name).
		Int("score", entry.Score).
		Int("total", entry.Total).
		Msg("leaderboard entry recorded")
	return entry, nil
}

// Top returns the best results. limit outside (0, MaxLimit] falls back to
// DefaultLimit.
func (a *App) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	entries, err := a.repo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return entries, nil
}
