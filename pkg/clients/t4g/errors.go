package t4g

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned on HTTP 401. The stored credential
	// has already been cleared when this is returned.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAccessDenied is returned on HTTP 403.
	ErrAccessDenied = errors.New("access denied")
	// ErrNotFound is returned on HTTP 404.
	ErrNotFound = errors.New("resource not found")
	// ErrUnavailable marks transport-level failures (connection refused,
	// DNS, timeout, open circuit). The resilient-fetch layer keys its
	// cache fallback off this marker.
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError is a non-2xx response outside the dedicated statuses above,
// carrying the backend's message verbatim when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error: %d", e.Status)
}

// IsNetworkError reports whether err is a transport-level failure rather
// than a backend-issued response.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
