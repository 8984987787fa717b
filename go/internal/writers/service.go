package writers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Service serves the writer catalog over HTTP
type Service struct {
	catalog *Catalog
}

// NewService creates a new writers HTTP service
func NewService(catalog *Catalog) *Service {
	return &Service{catalog: catalog}
}

// HandleList handles GET /api/writers
func (s *Service) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.All())
}

// HandleGet handles GET /api/writer/{id}
func (s *Service) HandleGet(w http.ResponseWriter, r *http.Request) {
	writer, err := s.catalog.Get(r.PathValue("id"))
	if errors.Is(err, ErrWriterNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to look up writer")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, writer)
}

// RegisterRoutes registers writer routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/writers", s.HandleList)
	mux.HandleFunc("GET /api/writer/{id}", s.HandleGet)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
