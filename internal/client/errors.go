package client

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ErrPaginationExhausted means the backend kept reporting more pages past
// the configured cutoff instead of ever signalling a final page.
var ErrPaginationExhausted = errors.New("pagination never terminated")

// APIError is a non-2xx response from the applications API. Detail carries
// the backend-supplied message when one was present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("applications api: %s (status %d)", e.Detail, e.StatusCode)
}

// Message returns the backend-supplied detail if there was one, otherwise
// the given fallback. Works on any error so callers can pass transport
// failures through it too.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func newAPIError(resp *resty.Response) error {
	return &APIError{
		StatusCode: resp.StatusCode(),
		Detail:     gjson.GetBytes(resp.Body(), "detail").String(),
	}
}
