package gateway

import (
	"context"
	"fmt"
)

// Broadcaster fans a room event out to every connection subscribed to the
// room on this instance.
type Broadcaster interface {
	Broadcast(ctx context.Context, roomID string, event *RoomEvent) error
}

// LocalBroadcaster delivers events through a single ConnectionManager
type LocalBroadcaster struct {
	manager *ConnectionManager
}

// NewLocalBroadcaster creates a broadcaster for in-process delivery
func NewLocalBroadcaster(cm *ConnectionManager) *LocalBroadcaster {
	return &LocalBroadcaster{manager: cm}
}

// Broadcast queues event for the room channel
func (b *LocalBroadcaster) Broadcast(_ context.Context, roomID string, event *RoomEvent) error {
	b.manager.BroadcastToRoom(roomID, event)
	return nil
}

// PublishingBroadcaster delivers locally and then copies the event to an
// EventPublisher. Local delivery never depends on the publisher.
type PublishingBroadcaster struct {
	local     Broadcaster
	publisher EventPublisher
}

// NewPublishingBroadcaster wraps local with a publisher
func NewPublishingBroadcaster(local Broadcaster, publisher EventPublisher) *PublishingBroadcaster {
	return &PublishingBroadcaster{local: local, publisher: publisher}
}

// Broadcast delivers event to the local room channel, then publishes it
func (b *PublishingBroadcaster) Broadcast(ctx context.Context, roomID string, event *RoomEvent) error {
	if err := b.local.Broadcast(ctx, roomID, event); err != nil {
		return err
	}
	if event.RoomID == "" {
		event.RoomID = roomID
	}
	if err := b.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("room %s delivered locally but not published: %w", roomID, err)
	}
	return nil
}
