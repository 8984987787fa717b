package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// PublisherConfig holds configuration for the NATS room activity feed
type PublisherConfig struct {
	URL           string
	Subject       string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultPublisherConfig returns default publisher configuration. The URL is
// left empty, which disables the feed.
func DefaultPublisherConfig() PublisherConfig {
	return PublisherConfig{
		Subject:       "salon.rooms.events",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// EventPublisher publishes room events for consumers outside the gateway
type EventPublisher interface {
	Publish(ctx context.Context, event *RoomEvent) error
}

// NATSPublisher writes every room broadcast to a NATS subject. It is a one
// way feed: gateways never consume it, so rooms are only ever changed by
// the instance that owns them.
type NATSPublisher struct {
	nc     *nats.Conn
	config PublisherConfig
}

// NewNATSPublisher connects to NATS
func NewNATSPublisher(config PublisherConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("salon-gateway"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	log.Info().
		Str("url", nc.ConnectedUrl()).
		Str("subject", config.Subject).
		Msg("NATS room feed connected")

	return &NATSPublisher{nc: nc, config: config}, nil
}

// Publish writes event to the feed subject
func (p *NATSPublisher) Publish(_ context.Context, event *RoomEvent) error {
	if event.RoomID == "" {
		return errors.New("room event has no room id")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal room event: %w", err)
	}
	if p.nc == nil {
		return errors.New("NATS publisher is not connected")
	}
	if err := p.nc.Publish(p.config.Subject, data); err != nil {
		return fmt.Errorf("publish room event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	if p.nc == nil || p.nc.IsClosed() {
		return nil
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return fmt.Errorf("drain NATS connection: %w", err)
	}
	return nil
}
