package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// LeaderboardApp defines what the service layer needs from the app
type LeaderboardApp interface {
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// Service serves the leaderboard over HTTP
type Service struct {
	app LeaderboardApp
}

// NewService creates a new leaderboard HTTP service
func NewService(app LeaderboardApp) *Service {
	return &Service{app: app}
}

// HandleTop handles GET /api/leaderboard[?limit=n]
func (s *Service) HandleTop(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.app.Top(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to load leaderboard")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

// RegisterRoutes registers leaderboard routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/leaderboard", s.HandleTop)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
