package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []string
	d.Subscribe(EventVisitScheduled, func(ctx context.Context, event Event) error {
		received = append(received, "first:"+event.EntityID)
		return nil
	})
	d.Subscribe(EventVisitScheduled, func(ctx context.Context, event Event) error {
		received = append(received, "second:"+event.EntityID)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventVisitScheduled, EntityID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:t1", "second:t1"}, received)
}

func TestDispatcherIgnoresHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondRan bool
	d.Subscribe(EventTicketStatusChanged, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketStatusChanged, func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketStatusChanged, EntityID: "t1"})
	require.NoError(t, err)
	assert.True(t, secondRan)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	err := d.Publish(context.Background(), Event{Type: EventBookingStatusChanged, EntityID: "b1"})
	assert.NoError(t, err)
}
