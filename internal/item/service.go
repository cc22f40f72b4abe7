package item

import (
	"context"
	"strings"

	"github.com/gearshare/gearshare-backend/internal/pkg/clock"
	"github.com/gearshare/gearshare-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, itemID, ownerID int64, req UpdateRequest) (*Item, error)
	// GetByID returns the item with comments attached. The last/next booking
	// annotation is computed only when the viewer is the item's owner.
	GetByID(ctx context.Context, itemID, viewerID int64) (*Details, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	OwnerID(ctx context.Context, itemID int64) (int64, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
	Delete(ctx context.Context, itemID int64) error
	// ListByRequests returns items created in answer to the given item
	// requests, grouped by request id.
	ListByRequests(ctx context.Context, requestIDs []int64) (map[int64][]*Item, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    user.Service
	bookings BookingLookup
	clock    clock.Clock
}

func NewService(repo Repository, comments CommentRepository, users user.Service, bookings BookingLookup, clk clock.Clock) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, itemID, ownerID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID, viewerID int64) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &Details{Item: *it}
	if it.OwnerID == viewerID {
		bookings, err := s.bookings.ForItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		details.LastBooking, details.NextBooking = lastAndNext(bookings, s.clock.Now())
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	details.Comments = comments

	return details, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*Details{}, nil
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	// One bookings query and one comments query for the whole item set.
	bookingsByItem, err := s.bookings.ForItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result := make([]*Details, len(items))
	for i, it := range items {
		d := &Details{Item: *it, Comments: commentsByItem[it.ID]}
		d.LastBooking, d.NextBooking = lastAndNext(bookingsByItem[it.ID], now)
		result[i] = d
	}
	return result, nil
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) OwnerID(ctx context.Context, itemID int64) (int64, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return it.OwnerID, nil
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	finished, err := s.bookings.CompletedForBooker(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	// The start check is redundant (end < now and start < end already imply
	// it) but is kept as part of the documented eligibility rule.
	if len(finished) == 0 || !finished[0].Start.Before(now) {
		return nil, ErrNoFinishedBooking
	}

	comment := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *service) Delete(ctx context.Context, itemID int64) error {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, itemID)
}

func (s *service) ListByRequests(ctx context.Context, requestIDs []int64) (map[int64][]*Item, error) {
	if len(requestIDs) == 0 {
		return map[int64][]*Item{}, nil
	}
	items, err := s.repo.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]*Item)
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		grouped[*it.RequestID] = append(grouped[*it.RequestID], it)
	}
	return grouped, nil
}
