package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "booking not found")
	// Access failures answer 404 on purpose so that callers cannot probe for
	// the existence of bookings they have no relationship with.
	ErrAccessDenied     = apperror.New(http.StatusNotFound, "user has no access to this booking")
	ErrOwnBooking       = apperror.New(http.StatusNotFound, "the owner cannot book their own item")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "end must be strictly after start")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available")
	ErrAlreadyDecided   = apperror.New(http.StatusBadRequest, "the booking decision has already been made")
)

// Status is the approval status of a booking. A booking starts WAITING and
// moves exactly once to APPROVED or REJECTED; both are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State is a read-side filter for listing endpoints. It is never persisted.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts a wire-level state string (case-insensitive) into a
// State. Anything unmapped fails with a bad-request error carrying the raw
// value, mirroring the message contract of the listing endpoints.
func ParseState(s string) (State, error) {
	switch State(strings.ToUpper(s)) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(strings.ToUpper(s)), nil
	default:
		return "", ErrUnknownState(s)
	}
}

// ErrUnknownState builds the unknown-state failure for a raw input value.
func ErrUnknownState(s string) error {
	return apperror.New(http.StatusBadRequest, "Unknown state: "+s)
}

// Booking is a reservation of an item by a user for a time interval.
// ItemName and BookerName are joined in for projections.
type Booking struct {
	ID         int64
	Start      time.Time
	End        time.Time
	ItemID     int64
	ItemName   string
	BookerID   int64
	BookerName string
	Status     Status
}

// ListFilter selects bookings for the listing queries. Exactly one of
// BookerID/OwnerID is set; the time predicates are all optional and are
// resolved against a single "now" snapshot by the service.
type ListFilter struct {
	BookerID int64
	OwnerID  int64

	Status     *Status
	StartAfter *time.Time // start > t
	EndBefore  *time.Time // end < t
	CurrentAt  *time.Time // start <= t <= end

	// Page-offset pagination: page index = From / Size, page length = Size.
	From int
	Size int
}
