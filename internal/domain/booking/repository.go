package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByBooker returns a page of the user's own bookings in the filter's bucket, ordered by start descending.
	FindByBooker(ctx context.Context, bookerID uuid.UUID, filter StateFilter, page domain.PageRequest) ([]*Booking, int64, error)

	// FindByItemOwner returns a page of bookings on items owned by ownerID, ordered by start descending.
	FindByItemOwner(ctx context.Context, ownerID uuid.UUID, filter StateFilter, page domain.PageRequest) ([]*Booking, int64, error)

	// FindApprovedByItemIDs bulk-loads APPROVED bookings for the given items, ordered by start descending.
	FindApprovedByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*Booking, error)

	// HasCompletedBooking reports whether bookerID holds an APPROVED booking on itemID that ended before now.
	HasCompletedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)

	// CountByStatus returns booking counts on ownerID's items grouped by status.
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
