package request

import (
	"context"
	"strings"

	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/pkg/clock"
	"github.com/gearshare/gearshare-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	// ListOwn returns the user's own requests, newest first.
	ListOwn(ctx context.Context, userID int64) ([]*Details, error)
	// ListOthers returns other users' requests, newest first, paged like the
	// booking listings (page index = from / size).
	ListOthers(ctx context.Context, userID int64, from, size int) ([]*Details, error)
	GetByID(ctx context.Context, userID, requestID int64) (*Details, error)
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

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	r := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) ListOwn(ctx context.Context, userID int64) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, userID int64, from, size int) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListOthers(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, userID, requestID int64) (*Details, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	details, err := s.attachItems(ctx, []*ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// attachItems resolves the answering items for a batch of requests with one
// catalog query.
func (s *service) attachItems(ctx context.Context, requests []*ItemRequest) ([]*Details, error) {
	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}

	grouped, err := s.items.ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*Details, len(requests))
	for i, r := range requests {
		items := grouped[r.ID]
		if items == nil {
			items = []*item.Item{}
		}
		details[i] = &Details{ItemRequest: *r, Items: items}
	}
	return details, nil
}
