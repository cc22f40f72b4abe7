package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearshare/gearshare-backend/internal/identity"
	"github.com/gearshare/gearshare-backend/internal/pkg/clock"
)

type upstreamCall struct {
	method string
	path   string
	query  string
	body   string
	caller string
}

// newTestGateway starts a fake core server recording what reaches it and
// returns a gateway router pointed at it.
func newTestGateway(t *testing.T, now time.Time) (*gin.Engine, *upstreamCall) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var last upstreamCall
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last = upstreamCall{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(body),
			caller: r.Header.Get(identity.Header),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"ok":true}`)
	}))
	t.Cleanup(upstream.Close)

	client := NewClient(upstream.URL, zerolog.Nop())
	handler := NewHandler(client, clock.Fixed{T: now})
	return NewRouter(handler, false, zerolog.Nop()), &last
}

func do(r *gin.Engine, method, target, body string, callerID string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if callerID != "" {
		req.Header.Set(identity.Header, callerID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestCreateBookingForwardsValidPayload(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, last := newTestGateway(t, now)

	payload := fmt.Sprintf(`{"itemId":1,"start":%q,"end":%q}`,
		now.Add(24*time.Hour).Format(time.RFC3339),
		now.Add(48*time.Hour).Format(time.RFC3339))

	w := do(r, http.MethodPost, "/bookings", payload, "2")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.MethodPost, last.method)
	assert.Equal(t, "/bookings", last.path)
	assert.Equal(t, payload, last.body, "the body is forwarded byte-for-byte")
	assert.Equal(t, "2", last.caller)
}

func TestCreateBookingValidation(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, _ := newTestGateway(t, now)

	future := now.Add(24 * time.Hour).Format(time.RFC3339)
	farFuture := now.Add(48 * time.Hour).Format(time.RFC3339)
	past := now.Add(-24 * time.Hour).Format(time.RFC3339)

	cases := []struct {
		name string
		body string
	}{
		{"missing item", fmt.Sprintf(`{"start":%q,"end":%q}`, future, farFuture)},
		{"missing times", `{"itemId":1}`},
		{"past start", fmt.Sprintf(`{"itemId":1,"start":%q,"end":%q}`, past, future)},
		{"end before start", fmt.Sprintf(`{"itemId":1,"start":%q,"end":%q}`, farFuture, future)},
		{"end equals start", fmt.Sprintf(`{"itemId":1,"start":%q,"end":%q}`, future, future)},
		{"garbage", `{"itemId":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/bookings", tc.body, "2")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestApproveBookingRequiresBool(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, last := newTestGateway(t, now)

	w := do(r, http.MethodPatch, "/bookings/5?approved=maybe", "", "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, "/bookings/5", "", "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, "/bookings/5?approved=true", "", "1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/bookings/5", last.path)
	assert.Equal(t, "approved=true", last.query)
}

func TestListBookingsStateGuard(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, last := newTestGateway(t, now)

	w := do(r, http.MethodGet, "/bookings?state=SOMETHING", "", "2")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown state: SOMETHING", errorMessage(t, w))

	w = do(r, http.MethodGet, "/bookings/owner?state=waiting&from=0&size=10", "", "1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/bookings/owner", last.path)
	assert.Equal(t, "state=waiting&from=0&size=10", last.query, "the query is forwarded untouched")
}

func TestListBookingsPagingGuard(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, _ := newTestGateway(t, now)

	for _, target := range []string{
		"/bookings?from=-1",
		"/bookings?size=0",
		"/bookings?size=-5",
		"/bookings?from=abc",
	} {
		w := do(r, http.MethodGet, target, "", "2")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestCreateUserValidation(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, last := newTestGateway(t, now)

	w := do(r, http.MethodPost, "/users", `{"name":"Alice"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing email")

	w = do(r, http.MethodPost, "/users", `{"name":"Alice","email":"not-an-address"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "email without @")

	w = do(r, http.MethodPost, "/users", `{"email":"alice@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing name")

	w = do(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users", last.path)
}

func TestCreateItemValidation(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, _ := newTestGateway(t, now)

	cases := []string{
		`{"description":"Power drill","available":true}`,
		`{"name":"Drill","available":true}`,
		`{"name":"Drill","description":"Power drill"}`,
		`{"name":"  ","description":"Power drill","available":true}`,
	}
	for _, body := range cases {
		w := do(r, http.MethodPost, "/items", body, "1")
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := do(r, http.MethodPost, "/items", `{"name":"Drill","description":"Power drill","available":true}`, "1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommentAndRequestValidation(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, _ := newTestGateway(t, now)

	w := do(r, http.MethodPost, "/items/3/comment", `{"text":"  "}`, "2")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/items/3/comment", `{"text":"great drill"}`, "2")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/requests", `{"description":""}`, "2")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/requests", `{"description":"need a drill"}`, "2")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentityHeaderRequiredOnGuardedGroups(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, _ := newTestGateway(t, now)

	for _, target := range []string{"/items", "/bookings", "/requests"} {
		w := do(r, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	w := do(r, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusOK, w.Code, "the user endpoints carry no identity")
}

func TestPassthroughRelaysResponse(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	r, last := newTestGateway(t, now)

	w := do(r, http.MethodGet, "/items/search?text=drill", "", "2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/items/search", last.path)
	assert.Equal(t, "text=drill", last.query)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
