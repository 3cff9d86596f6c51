package elevenlabs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an ElevenLabs API error.
type Error struct {
	// Status is the API status label, e.g. "invalid_api_key".
	Status string `json:"status"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// HTTPStatus is the HTTP status code of the response.
	HTTPStatus int `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("elevenlabs: %s (%s, http=%d)", e.Message, e.Status, e.HTTPStatus)
	}
	return fmt.Sprintf("elevenlabs: %s (http=%d)", e.Message, e.HTTPStatus)
}

// IsAuth returns true if credentials are missing or rejected.
func (e *Error) IsAuth() bool {
	return e.HTTPStatus == http.StatusUnauthorized ||
		e.HTTPStatus == http.StatusForbidden ||
		e.Status == "invalid_api_key" ||
		e.Status == "needs_authorization"
}

// IsUnavailable returns true for transport or service-side failures.
func (e *Error) IsUnavailable() bool {
	return e.HTTPStatus >= 500 || e.HTTPStatus == http.StatusTooManyRequests
}

// IsRejected returns true when the provider rejected the submitted
// content itself, e.g. an enrollment sample that fails provider-side
// audio checks.
func (e *Error) IsRejected() bool {
	if e.IsAuth() {
		return false
	}
	return e.HTTPStatus == http.StatusBadRequest ||
		e.HTTPStatus == http.StatusUnprocessableEntity
}

// IsUnsupported returns true when the endpoint or call shape is not
// supported by the provider, as opposed to a generic failure.
func (e *Error) IsUnsupported() bool {
	return e.HTTPStatus == http.StatusMethodNotAllowed ||
		e.HTTPStatus == http.StatusNotImplemented
}

// Retryable returns true if the request can be retried.
func (e *Error) Retryable() bool {
	return e.IsUnavailable()
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := elevenlabs.AsError(err); ok && e.IsAuth() {
//	    // credentials problem
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
