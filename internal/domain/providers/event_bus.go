package providers

import (
	"context"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
)

// EventBus publishes booking lifecycle events and lets interested consumers
// (the front-desk dashboard) subscribe to them
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled or the bus shuts down
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Unsubscribe drops every subscriber of a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// ChannelBookingUpdates carries every booking lifecycle event
const ChannelBookingUpdates = "marcel:bookings"
