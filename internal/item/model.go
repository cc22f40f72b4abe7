package item

import (
	"context"
	"net/http"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "item not found")
	// Ownership failures answer 404 on purpose: a non-owner must not be able
	// to tell a foreign item apart from a missing one.
	ErrAccessDenied        = apperror.New(http.StatusNotFound, "user is not the owner of the item")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
	ErrAvailableRequired   = apperror.New(http.StatusBadRequest, "available flag is required")
	ErrTextRequired        = apperror.New(http.StatusBadRequest, "comment text is required")
	ErrNoFinishedBooking   = apperror.New(http.StatusBadRequest, "no finished booking for this item and user")
)

// Item is a catalog entry offered for sharing by its owner.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64 // set when the item was created in answer to an item request
}

// Comment is feedback left by a user who completed a booking of the item.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// BookingRef identifies a booking in item projections.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// Details is an Item together with its read-time projections. LastBooking and
// NextBooking are computed per request and only filled for the item's owner;
// they are never persisted.
type Details struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}

// ItemBooking is booking data as seen by the item module.
type ItemBooking struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
	Rejected bool
}

// BookingLookup is the port through which the item module reads booking data.
// The booking module provides the implementation; keeping the interface here
// avoids an import cycle and lets tests plug in fakes.
type BookingLookup interface {
	ForItem(ctx context.Context, itemID int64) ([]ItemBooking, error)
	// ForItems fetches bookings for the whole item set in one query and
	// returns them grouped by item id.
	ForItems(ctx context.Context, itemIDs []int64) (map[int64][]ItemBooking, error)
	// CompletedForBooker returns the booker's approved bookings of the item
	// that ended before the given time.
	CompletedForBooker(ctx context.Context, itemID, bookerID int64, before time.Time) ([]ItemBooking, error)
}
