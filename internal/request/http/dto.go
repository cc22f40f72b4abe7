package http

import (
	"time"

	itemHttp "github.com/gearshare/gearshare-backend/internal/item/http"
	"github.com/gearshare/gearshare-backend/internal/request"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

// RequestDetailsResponse extends RequestResponse with the answering items.
type RequestDetailsResponse struct {
	RequestResponse
	Items []itemHttp.ItemResponse `json:"items"`
}

func NewRequestResponse(r *request.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
	}
}

func NewRequestDetailsResponse(d *request.Details) RequestDetailsResponse {
	resp := RequestDetailsResponse{
		RequestResponse: NewRequestResponse(&d.ItemRequest),
		Items:           make([]itemHttp.ItemResponse, len(d.Items)),
	}
	for i, it := range d.Items {
		resp.Items[i] = itemHttp.NewItemResponse(it)
	}
	return resp
}
