package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// Booking is the aggregate root for a time-bounded request to borrow an item.
// It references its item and booker by id only.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	status   BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// ValidatePeriod checks that start is strictly before end.
func ValidatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.NewValidationError("booking start and end are required")
	}
	if !start.Before(end) {
		return domain.NewValidationError("booking start must be before end")
	}
	return nil
}

// NewBooking creates a new Booking aggregate with status=WAITING.
func NewBooking(itemID, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if err := ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status BookingStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the booked item's ID.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the requesting user's ID.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the beginning of the booked period.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the booked period.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the optimistic locking version.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns when the booking was requested.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns when the booking was last changed.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsBookedBy reports whether userID requested this booking.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}

// Decide applies the owner's decision: WAITING -> APPROVED or WAITING -> REJECTED.
func (b *Booking) Decide(approve bool, now time.Time) error {
	target := DecisionStatus(approve)
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the optimistic locking version before an update.
func (b *Booking) IncrementVersion() {
	b.version++
}
