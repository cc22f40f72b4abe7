package item

import "time"

// lastAndNext resolves the last and next booking of an item relative to now.
// Rejected bookings are ignored. The last booking is the one with the latest
// start strictly before now, the next booking the one with the earliest start
// strictly after now; a booking starting exactly at now lands in neither slot.
// Ties on start are broken by booking id (higher id wins for last, lower for
// next) so the result is deterministic.
func lastAndNext(bookings []ItemBooking, now time.Time) (last, next *BookingRef) {
	var lastB, nextB *ItemBooking

	for i := range bookings {
		b := &bookings[i]
		if b.Rejected {
			continue
		}
		switch {
		case b.Start.Before(now):
			if lastB == nil || b.Start.After(lastB.Start) ||
				(b.Start.Equal(lastB.Start) && b.ID > lastB.ID) {
				lastB = b
			}
		case b.Start.After(now):
			if nextB == nil || b.Start.Before(nextB.Start) ||
				(b.Start.Equal(nextB.Start) && b.ID < nextB.ID) {
				nextB = b
			}
		}
	}

	if lastB != nil {
		last = &BookingRef{ID: lastB.ID, BookerID: lastB.BookerID}
	}
	if nextB != nil {
		next = &BookingRef{ID: nextB.ID, BookerID: nextB.BookerID}
	}
	return last, next
}
