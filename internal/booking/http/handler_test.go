package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearshare/gearshare-backend/internal/booking"
	"github.com/gearshare/gearshare-backend/internal/identity"
)

type stubService struct {
	booking *booking.Booking
	err     error

	gotState booking.State
	gotFrom  int
	gotSize  int
	gotUser  int64
}

func (s *stubService) Create(_ context.Context, _ booking.CreateRequest, _ int64) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) GetByID(_ context.Context, _, _ int64) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) Approve(_ context.Context, _, _ int64, _ bool) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) ListByBooker(_ context.Context, state booking.State, userID int64, from, size int) ([]*booking.Booking, error) {
	s.gotState, s.gotUser, s.gotFrom, s.gotSize = state, userID, from, size
	if s.err != nil {
		return nil, s.err
	}
	return []*booking.Booking{}, nil
}

func (s *stubService) ListByOwner(_ context.Context, state booking.State, userID int64, from, size int) ([]*booking.Booking, error) {
	return s.ListByBooker(nil, state, userID, from, size)
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("")
	RegisterRoutes(group, NewHandler(svc), identity.Required())
	return r
}

func perform(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(identity.Header, "2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMapsBooking(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := &stubService{booking: &booking.Booking{
		ID: 7, Start: start, End: start.Add(24 * time.Hour),
		ItemID: 1, ItemName: "Drill", BookerID: 2, BookerName: "Alice",
		Status: booking.StatusWaiting,
	}}
	r := newTestRouter(svc)

	body := `{"itemId":1,"start":"2026-09-01T12:00:00Z","end":"2026-09-02T12:00:00Z"}`
	w := perform(r, http.MethodPost, "/bookings", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "WAITING", resp.Status)
	assert.Equal(t, int64(2), resp.Booker.ID)
	assert.Equal(t, "Drill", resp.Item.Name)
}

func TestCreateRejectsIncompleteBody(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := perform(r, http.MethodPost, "/bookings", `{"start":"2026-09-01T12:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{booking.ErrNotFound, http.StatusNotFound},
		{booking.ErrAccessDenied, http.StatusNotFound},
		{booking.ErrOwnBooking, http.StatusNotFound},
		{booking.ErrItemUnavailable, http.StatusBadRequest},
		{booking.ErrAlreadyDecided, http.StatusBadRequest},
	}
	for _, tc := range cases {
		r := newTestRouter(&stubService{err: tc.err})
		w := perform(r, http.MethodGet, "/bookings/7", "")
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestApproveQueryParameter(t *testing.T) {
	svc := &stubService{booking: &booking.Booking{ID: 7, Status: booking.StatusApproved}}
	r := newTestRouter(svc)

	w := perform(r, http.MethodPatch, "/bookings/7", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "approved is required")

	w = perform(r, http.MethodPatch, "/bookings/7?approved=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListDefaultsAndPaging(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	w := perform(r, http.MethodGet, "/bookings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.StateAll, svc.gotState, "state defaults to ALL")
	assert.Equal(t, 0, svc.gotFrom)
	assert.Equal(t, 10, svc.gotSize, "size defaults to 10")
	assert.Equal(t, int64(2), svc.gotUser)

	w = perform(r, http.MethodGet, "/bookings/owner?state=past&from=20&size=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.StatePast, svc.gotState)
	assert.Equal(t, 20, svc.gotFrom)
	assert.Equal(t, 5, svc.gotSize)
}

func TestListRejectsBadPaging(t *testing.T) {
	r := newTestRouter(&stubService{})

	for _, target := range []string{
		"/bookings?from=-1",
		"/bookings?size=0",
		"/bookings?state=SOMETHING",
	} {
		w := perform(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestListUnknownStateMessage(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := perform(r, http.MethodGet, "/bookings?state=SOMETHING", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown state: SOMETHING")
}
