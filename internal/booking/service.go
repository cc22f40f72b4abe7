package booking

import (
	"context"
	"time"

	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/pkg/clock"
	"github.com/gearshare/gearshare-backend/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error)
	// GetByID is restricted to the two interested parties: the booker and
	// the item's owner.
	GetByID(ctx context.Context, bookingID, userID int64) (*Booking, error)
	// Approve resolves a WAITING booking to APPROVED or REJECTED. Only the
	// item's owner may decide, and only once.
	Approve(ctx context.Context, bookingID, userID int64, approved bool) (*Booking, error)
	ListByBooker(ctx context.Context, state State, userID int64, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, state State, ownerID int64, from, size int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users user.Service
	items item.Service
	clock clock.Clock
}

func NewService(repo Repository, users user.Service, items item.Service, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error) {
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	it, err := s.items.GetByID(ctx, req.ItemID, bookerID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnBooking
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	b := &Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   req.ItemID,
		BookerID: bookerID,
		Status:   StatusWaiting,
	}
	return s.repo.Create(ctx, b)
}

func (s *service) GetByID(ctx context.Context, bookingID, userID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID == userID {
		return b, nil
	}
	ownerID, err := s.items.OwnerID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrAccessDenied
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, bookingID, userID int64, approved bool) (*Booking, error) {
	b, err := s.GetByID(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	ownerID, err := s.items.OwnerID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrAccessDenied
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	// Two racing approvals can both pass the WAITING check before either
	// writes; the write itself is unconditional. Known gap, kept as-is.
	status := StatusRejected
	if approved {
		status = StatusApproved
	}
	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, state State, userID int64, from, size int) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	f, err := s.resolveState(state, ListFilter{BookerID: userID, From: from, Size: size})
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBooker(ctx, f)
}

func (s *service) ListByOwner(ctx context.Context, state State, ownerID int64, from, size int) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	f, err := s.resolveState(state, ListFilter{OwnerID: ownerID, From: from, Size: size})
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, f)
}

// resolveState translates a view filter into repository predicates against a
// single "now" snapshot. The default branch guards wire-level inputs that
// bypass ParseState.
func (s *service) resolveState(state State, f ListFilter) (ListFilter, error) {
	now := s.clock.Now()
	switch state {
	case StateAll:
	case StateCurrent:
		f.CurrentAt = &now
	case StatePast:
		f.EndBefore = &now
	case StateFuture:
		f.StartAfter = &now
	case StateWaiting:
		st := StatusWaiting
		f.StartAfter = &now
		f.Status = &st
	case StateRejected:
		st := StatusRejected
		f.Status = &st
	default:
		return f, ErrUnknownState(string(state))
	}
	return f, nil
}
