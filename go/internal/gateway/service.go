// Package gateway is the real-time transport for chess rooms. Clients talk
// to it over WebSocket; it turns their events into room registry calls and
// relays the results to the sender or to the whole room channel. Rooms live
// in one process; NATS, when configured, only receives a copy of the room
// traffic for outside consumers.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mcdev12/salon/go/internal/rooms"
	"github.com/rs/zerolog/log"
)

// Registry is everything the gateway needs from the room registry
type Registry interface {
	RoomRegistry
	StateProvider
}

// Service is the chess gateway service that handles WebSocket connections
// and room event broadcasting
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	stateHandler      *StateHandler
	handler           *Handler
	publisher         *NATSPublisher
}

// Config holds configuration for the gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	PublisherConfig  PublisherConfig
	DefaultRoom      string
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		PublisherConfig:  DefaultPublisherConfig(),
		DefaultRoom:      "default",
	}
}

// NewService creates a new gateway service. Broadcasts are always delivered
// in-process and are also published to NATS when a URL is configured.
func NewService(config Config, registry Registry) (*Service, error) {
	connectionManager := NewConnectionManager(config.ConnectionConfig)

	var (
		broadcaster Broadcaster = NewLocalBroadcaster(connectionManager)
		publisher   *NATSPublisher
	)
	if config.PublisherConfig.URL != "" {
		var err error
		publisher, err = NewNATSPublisher(config.PublisherConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
		broadcaster = NewPublishingBroadcaster(broadcaster, publisher)
	}

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager),
		stateHandler:      NewStateHandler(registry, connectionManager),
		handler:           NewHandler(registry, connectionManager, broadcaster, config.DefaultRoom),
		publisher:         publisher,
	}, nil
}

// Start runs the gateway until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Bool("nats_feed", s.publisher != nil).Msg("starting chess gateway service")

	go s.connectionManager.Start(ctx)

	<-ctx.Done()

	log.Info().Msg("chess gateway service shutting down")
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close NATS publisher: %w", err)
		}
	}
	return nil
}

// RegisterRoutes registers the WebSocket and room state HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	log.Info().Msg("chess gateway routes registered")
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() ConnectionStats {
	return s.connectionManager.GetConnectionStats()
}

var _ Registry = (*rooms.Registry)(nil)
