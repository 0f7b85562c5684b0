package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	json "github.com/goccy/go-json"
)

// Error is an HTTP-level failure from the backend. Message carries the
// server-supplied text when the response body had one.
type Error struct {
	StatusCode int
	Resource   string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s returned %d: %s", e.Resource, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %s returned %d", e.Resource, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// isNetworkError distinguishes no-response/timeout failures, which drive
// host discovery, from HTTP errors, which do not.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// serverMessage pulls a human-readable message out of an error response
// body. Backends in the wild use either "message" or "error".
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Err
}
