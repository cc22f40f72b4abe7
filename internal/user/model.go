package user

import (
	"net/http"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailExists   = apperror.New(http.StatusConflict, "email already in use")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email is required")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
)

// User represents a registered account: a user may own items, book other
// users' items, or both.
type User struct {
	ID    int64
	Name  string
	Email string
}
