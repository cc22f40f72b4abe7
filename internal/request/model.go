package request

import (
	"net/http"
	"time"

	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is a wish for an item that does not yet exist in the catalog.
// Other users may answer it by creating items referencing the request.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// Details is an ItemRequest together with the items created in answer to it.
type Details struct {
	ItemRequest
	Items []*item.Item
}
