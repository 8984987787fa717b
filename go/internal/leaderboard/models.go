package leaderboard

import "time"

// DefaultName is recorded when a submission has no name
const DefaultName = "Anonymous"

// Limits for Top
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Entry is one recorded quiz result
type Entry struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitRequest represents a request to record a quiz result
type SubmitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Total int    `json:"total"`
}

// ranksBefore reports whether a ranks above b: higher score first, then
// earlier timestamp, then lower id.
func ranksBefore(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.ID < b.ID
}
