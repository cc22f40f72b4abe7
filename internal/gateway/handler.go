package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gearshare/gearshare-backend/internal/booking"
	"github.com/gearshare/gearshare-backend/internal/pkg/clock"
)

// Handler validates request payloads before they reach the core server.
// Anything that passes validation is forwarded byte-for-byte.
type Handler struct {
	client *Client
	clock  clock.Clock
}

func NewHandler(client *Client, clk clock.Clock) *Handler {
	if clk == nil {
		clk = clock.System()
	}
	return &Handler{client: client, clock: clk}
}

// Passthrough forwards a request without inspecting it.
func (h *Handler) Passthrough(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	h.client.Forward(c, body)
}

func (h *Handler) CreateUser(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	var req createUserBody
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		badRequest(c, "name must not be blank")
		return
	}
	if req.Email == nil || !strings.Contains(*req.Email, "@") {
		badRequest(c, "email must be a valid address")
		return
	}
	h.client.Forward(c, body)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	var req updateUserBody
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		badRequest(c, "email must be a valid address")
		return
	}
	h.client.Forward(c, body)
}

func (h *Handler) CreateItem(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	var req createItemBody
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		badRequest(c, "name must not be blank")
		return
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		badRequest(c, "description must not be blank")
		return
	}
	if req.Available == nil {
		badRequest(c, "available is required")
		return
	}
	h.client.Forward(c, body)
}

func (h *Handler) CreateComment(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	var req createCommentBody
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		badRequest(c, "text must not be blank")
		return
	}
	h.client.Forward(c, body)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	var req createBookingBody
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.ItemID == nil {
		badRequest(c, "itemId is required")
		return
	}
	if req.Start == nil || req.End == nil {
		badRequest(c, "start and end are required")
		return
	}
	now := h.clock.Now()
	if req.Start.Before(now) {
		badRequest(c, "start must not be in the past")
		return
	}
	if !req.End.After(now) {
		badRequest(c, "end must be in the future")
		return
	}
	if !req.End.After(*req.Start) {
		badRequest(c, "end must be after start")
		return
	}
	h.client.Forward(c, body)
}

func (h *Handler) ApproveBooking(c *gin.Context) {
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		badRequest(c, "approved must be true or false")
		return
	}
	h.client.Forward(c, nil)
}

// ListBookings guards the state and paging query parameters for both the
// booker and the owner listings.
func (h *Handler) ListBookings(c *gin.Context) {
	state := c.DefaultQuery("state", "ALL")
	if _, err := booking.ParseState(state); err != nil {
		badRequest(c, "Unknown state: "+state)
		return
	}
	if !validPage(c) {
		return
	}
	h.client.Forward(c, nil)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	var req createRequestBody
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		badRequest(c, "description must not be blank")
		return
	}
	h.client.Forward(c, body)
}

func (h *Handler) ListOtherRequests(c *gin.Context) {
	if !validPage(c) {
		return
	}
	h.client.Forward(c, nil)
}

func (h *Handler) readBody(c *gin.Context) ([]byte, bool) {
	if c.Request.Body == nil {
		return nil, true
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "failed to read request body")
		return nil, false
	}
	return body, true
}

func validPage(c *gin.Context) bool {
	if raw := c.Query("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			badRequest(c, "from must be a non-negative integer")
			return false
		}
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			badRequest(c, "size must be a positive integer")
			return false
		}
	}
	return true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
