package booking

import (
	"context"
	"time"

	"github.com/gearshare/gearshare-backend/internal/item"
)

// itemBookingLookup adapts the booking repository to the item module's
// BookingLookup port.
type itemBookingLookup struct {
	repo Repository
}

// NewItemBookingLookup returns an item.BookingLookup backed by the booking
// repository.
func NewItemBookingLookup(repo Repository) item.BookingLookup {
	return &itemBookingLookup{repo: repo}
}

func (l *itemBookingLookup) ForItem(ctx context.Context, itemID int64) ([]item.ItemBooking, error) {
	bookings, err := l.repo.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toItemBookings(bookings), nil
}

func (l *itemBookingLookup) ForItems(ctx context.Context, itemIDs []int64) (map[int64][]item.ItemBooking, error) {
	grouped, err := l.repo.ListForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	result := make(map[int64][]item.ItemBooking, len(grouped))
	for id, bookings := range grouped {
		result[id] = toItemBookings(bookings)
	}
	return result, nil
}

func (l *itemBookingLookup) CompletedForBooker(ctx context.Context, itemID, bookerID int64, before time.Time) ([]item.ItemBooking, error) {
	bookings, err := l.repo.ListCompleted(ctx, itemID, bookerID, before)
	if err != nil {
		return nil, err
	}
	return toItemBookings(bookings), nil
}

func toItemBookings(bookings []*Booking) []item.ItemBooking {
	result := make([]item.ItemBooking, len(bookings))
	for i, b := range bookings {
		result[i] = item.ItemBooking{
			ID:       b.ID,
			BookerID: b.BookerID,
			Start:    b.Start,
			End:      b.End,
			Rejected: b.Status == StatusRejected,
		}
	}
	return result
}
