package recruitee

import (
	"errors"
	"fmt"
)

// ErrRemote is the sentinel all remote-layer errors unwrap to, so callers can
// match the whole family with errors.Is(err, ErrRemote) or a concrete subtype
// with errors.As.
var ErrRemote = errors.New("recruitee remote error")

// APIError is returned when the Recruitee API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string // best-effort read of the error body, "" if unreadable
	URL        string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API request to %q failed with status=%d", e.URL, e.StatusCode)
	if e.Body != "" {
		msg += " body=" + e.Body
	}
	return msg
}

func (e *APIError) Unwrap() error { return ErrRemote }

// ConnectionError is returned when the API cannot be reached at all: DNS
// failure, connection refused, or timeout.
type ConnectionError struct {
	Reason string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error while requesting %q: %s", e.URL, e.Reason)
}

func (e *ConnectionError) Unwrap() error { return ErrRemote }

// ProtocolError is returned when the API responds successfully but the body
// is not valid JSON.
type ProtocolError struct {
	URL string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("invalid JSON response returned by %q", e.URL)
}

func (e *ProtocolError) Unwrap() error { return ErrRemote }

// ValidationError is returned for bad tool or filter arguments detected
// before any remote call is issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrRemote }
