//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-platform/service-booking/internal/application"
	"github.com/shareit-platform/service-booking/internal/events/schema"
)

// TestUserRegistered_PopulatesReplica verifies that user.registered and
// user.updated events on user.events end up in the local users table.
func TestUserRegistered_PopulatesReplica(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	userID := uuid.New()
	registered := time.Now().UTC()
	publishTestEvent(t, infra.KafkaBrokers, schema.TopicUserEvents, userID.String(),
		"service-identity", schema.UserRegistered, schema.UserEvent{
			UserID:     userID,
			Name:       "Ann",
			Email:      "ann@example.com",
			OccurredAt: registered,
		})
	waitForUser(t, infra.DB, userID, "Ann", 15*time.Second)

	publishTestEvent(t, infra.KafkaBrokers, schema.TopicUserEvents, userID.String(),
		"service-identity", schema.UserUpdated, schema.UserEvent{
			UserID:     userID,
			Name:       "Ann Lee",
			Email:      "ann@example.com",
			OccurredAt: registered.Add(time.Minute),
		})
	waitForUser(t, infra.DB, userID, "Ann Lee", 15*time.Second)
}

// TestBookingLifecycle_PublishesEvents drives a booking from request to
// approval against PostgreSQL and checks the events on booking.events.
func TestBookingLifecycle_PublishesEvents(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	owner := seedUser(t, stack, "owner")
	booker := seedUser(t, stack, "booker")

	available := true
	item, err := stack.Items.CreateItem(ctx, owner, application.CreateItemRequest{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   &available,
	})
	require.NoError(t, err)

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	created, err := stack.Bookings.CreateBooking(ctx, booker, application.CreateBookingRequest{
		ItemID: item.ID,
		Start:  start,
		End:    start.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)

	approved, err := stack.Bookings.Decide(ctx, owner, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	_, err = stack.Bookings.Decide(ctx, owner, created.ID, false)
	require.Error(t, err)

	// Assert: bucket queries on PostgreSQL.
	future, err := stack.Bookings.ListForOwner(ctx, owner, "FUTURE", 0, 10)
	require.NoError(t, err)
	require.Len(t, future.Items, 1)
	assert.Equal(t, created.ID, future.Items[0].ID)

	past, err := stack.Bookings.ListForBooker(ctx, booker, "PAST", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, past.Items)

	// Assert: the owner's listing shows the approved booking as next.
	listing, err := stack.Items.GetItem(ctx, owner, item.ID)
	require.NoError(t, err)
	require.NotNil(t, listing.NextBooking)
	assert.Equal(t, created.ID, listing.NextBooking.ID)
	assert.Nil(t, listing.LastBooking)

	// Assert: events on booking.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, schema.TopicBookingEvents,
		schema.BookingRequested, created.ID.String(), 15*time.Second)
	var requested schema.BookingEvent
	require.NoError(t, ce.ParseData(&requested))
	assert.Equal(t, booker, requested.BookerID)
	assert.Equal(t, owner, requested.OwnerID)

	ce = consumeOneEvent(t, infra.KafkaBrokers, schema.TopicBookingEvents,
		schema.BookingApproved, created.ID.String(), 15*time.Second)
	var decided schema.BookingEvent
	require.NoError(t, ce.ParseData(&decided))
	assert.Equal(t, created.ID, decided.BookingID)
	assert.Equal(t, "APPROVED", decided.Status)
}
