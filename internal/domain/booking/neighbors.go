package booking

import (
	"time"

	"github.com/google/uuid"
)

// SelectLastNext scans bookings once and picks, relative to now:
//
//	last  the booking with the latest start among start <= now (ties go to the later end)
//	next  the booking with the earliest start among start > now
//
// Either result is nil when nothing qualifies. Callers pass only the
// bookings that should be visible, normally the APPROVED ones of one item.
func SelectLastNext(bookings []*Booking, now time.Time) (last, next *Booking) {
	for _, b := range bookings {
		if b.start.After(now) {
			if next == nil || b.start.Before(next.start) {
				next = b
			}
			continue
		}
		if last == nil ||
			b.start.After(last.start) ||
			(b.start.Equal(last.start) && b.end.After(last.end)) {
			last = b
		}
	}
	return last, next
}

// GroupByItem indexes bookings by item id, preserving input order within each group.
func GroupByItem(bookings []*Booking) map[uuid.UUID][]*Booking {
	groups := make(map[uuid.UUID][]*Booking)
	for _, b := range bookings {
		groups[b.itemID] = append(groups[b.itemID], b)
	}
	return groups
}
