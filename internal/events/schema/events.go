// Package schema defines the topics, event types and payloads exchanged over Kafka.
package schema

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicBookingEvents = "booking.events"
	TopicUserEvents    = "user.events"
)

// Booking event types.
const (
	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
)

// User event types.
const (
	UserRegistered = "user.registered"
	UserUpdated    = "user.updated"
	UserDeleted    = "user.deleted"
)

// BookingEvent is published whenever a booking is created or decided.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserEvent carries the identity service's view of an account.
type UserEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
