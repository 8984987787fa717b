// Package quiz serves randomly sampled quiz rounds and records finished
// rounds on the leaderboard.
package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcdev12/salon/go/internal/leaderboard"
	"github.com/rs/zerolog/log"
)

// DefaultRoundSize is the number of questions in one quiz round
const DefaultRoundSize = 15

// ResultRecorder defines what the quiz needs from the leaderboard
type ResultRecorder interface {
	Submit(ctx context.Context, req leaderboard.SubmitRequest) (*leaderboard.Entry, error)
}

// Service serves the quiz HTTP API
type Service struct {
	bank      *Bank
	recorder  ResultRecorder
	roundSize int
}

// NewService creates a new quiz service. roundSize <= 0 uses
// DefaultRoundSize.
func NewService(bank *Bank, recorder ResultRecorder, roundSize int) *Service {
	if roundSize <= 0 {
		roundSize = DefaultRoundSize
	}
	return &Service{
		bank:      bank,
		recorder:  recorder,
		roundSize: roundSize,
	}
}

// HandleStart handles GET /api/quiz/start
func (s *Service) HandleStart(w http.ResponseWriter, r *http.Request) {
	questions, err := s.bank.Sample(s.roundSize)
	if errors.Is(err, ErrInsufficientQuestionBank) {
		log.Warn().
			Int("bank_size", s.bank.Len()).
			Int("round_size", s.roundSize).
			Msg("question bank too small for a round")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Not enough questions in bank"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to sample questions")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// HandleSubmit handles POST /api/quiz/submit
func (s *Service) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req leaderboard.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if _, err := s.recorder.Submit(r.Context(), req); err != nil {
		log.Error().Err(err).Msg("failed to record quiz result")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterRoutes registers quiz routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/quiz/start", s.HandleStart)
	mux.HandleFunc("POST /api/quiz/submit", s.HandleSubmit)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
