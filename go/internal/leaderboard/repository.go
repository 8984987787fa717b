package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores leaderboard entries in Postgres
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new leaderboard repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records a result and returns it with its id and timestamp set
func (r *Repository) Insert(ctx context.Context, req SubmitRequest) (*Entry, error) {
	var e Entry
	err := r.db.QueryRow(ctx,
		`INSERT INTO leaderboard (name, score, total)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, score, total, created_at`,
		req.Name, req.Score, req.Total,
	).Scan(&e.ID, &e.Name, &e.Score, &e.Total, &e.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}
	return &e, nil
}

// Top returns up to limit entries in rank order
func (r *Repository) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, score, total, created_at
		 FROM leaderboard
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.Name, &e.Score, &e.Total, &e.Timestamp)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan leaderboard: %w", err)
	}
	return entries, nil
}
