package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkUnavailable means the request could not be sent or the reply not received
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrMalformedResponse means the body did not parse or lacked the expected shape
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned when the server answered with a non-2xx status
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Kind classifies an error for logs and metrics labels
func Kind(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrNetworkUnavailable):
		return "network"
	default:
		return "unknown"
	}
}

// Reason normalizes any fetch error into the single failure string the UI shows.
// The result is never empty.
func Reason(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "Request failed"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Search request failed with status %d", statusErr.Code)
	case errors.Is(err, ErrMalformedResponse):
		return "Search service returned an invalid response"
	case errors.Is(err, ErrNetworkUnavailable):
		return "Search service is unreachable"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Request failed"
}
