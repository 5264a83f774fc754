package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/providers"
	redisclient "github.com/academiebarbier/marcel-backend/internal/infrastructure/clients/redis"
)

func newTestBus(t *testing.T) providers.EventBus {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisclient.NewClientFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })

	bus := NewRedisEventBus(client)
	t.Cleanup(func() { bus.Close() })
	return bus
}

func confirmedEvent() *entities.BookingEvent {
	return entities.NewBookingEvent(entities.BookingEventTypeConfirmed, &entities.Booking{
		ID:         "11111111-2222-3333-4444-555555555555",
		Phone:      "+15145551234",
		Service:    "coupe_homme",
		Date:       "mardi",
		TimeBlock:  "matin",
		ClientName: "Jean Tremblay",
		Status:     entities.BookingStatusConfirmed,
	})
}

func TestRedisEventBus_PublishSubscribe(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := bus.Subscribe(ctx, providers.ChannelBookingUpdates)
	require.NoError(t, err)

	want := confirmedEvent()
	require.NoError(t, bus.Publish(ctx, providers.ChannelBookingUpdates, want))

	select {
	case got := <-events:
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, entities.BookingEventTypeConfirmed, got.EventType)
		assert.Equal(t, "Jean Tremblay", got.ClientName)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for booking event")
	}
}

func TestRedisEventBus_MultipleSubscribers(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := bus.Subscribe(ctx, providers.ChannelBookingUpdates)
	require.NoError(t, err)
	second, err := bus.Subscribe(ctx, providers.ChannelBookingUpdates)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, providers.ChannelBookingUpdates, confirmedEvent()))

	for _, events := range []<-chan *entities.BookingEvent{first, second} {
		select {
		case got := <-events:
			assert.Equal(t, entities.BookingEventTypeConfirmed, got.EventType)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for booking event")
		}
	}
}

func TestRedisEventBus_SubscriberContextCancel(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := bus.Subscribe(ctx, providers.ChannelBookingUpdates)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-events:
		assert.False(t, open, "channel should be closed after context cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
