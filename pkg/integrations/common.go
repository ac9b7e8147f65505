package integrations

import (
	"errors"
	"net/http"
	"time"
)

// ErrNetwork is returned when a request cannot complete: connection refused,
// reset, DNS failure, timeout, or a body that is cut off mid-read.
// An HTTP error status is not a network error; the body is still returned.
var ErrNetwork = errors.New("network error")

// NewHTTPClient creates an HTTP client with the given overall request
// timeout. A timeout of 0 means requests never time out.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
