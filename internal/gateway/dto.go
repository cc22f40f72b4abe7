package gateway

import "time"

// Validation payloads: every field is a pointer so that absence can be told
// apart from a zero value. Unknown fields are passed through untouched — the
// core server owns the full contract.

type createBookingBody struct {
	ItemID *int64     `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type createUserBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type updateUserBody struct {
	Email *string `json:"email"`
}

type createItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type createCommentBody struct {
	Text *string `json:"text"`
}

type createRequestBody struct {
	Description *string `json:"description"`
}
