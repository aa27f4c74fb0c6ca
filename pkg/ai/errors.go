package ai

import (
	"errors"
	"fmt"
)

// TransportError reports a failed exchange with the remote service: either
// the request never completed (Err set, StatusCode 0) or the service
// answered with a non-200 status (StatusCode and Body set).
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return "transport error"
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a 200 response whose body lacks the reply field.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse response: %s: %v", e.Reason, e.Err)
	}
	return "parse response: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsTransportError reports whether err carries a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsParseError reports whether err carries a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// StatusCode extracts the HTTP status from a TransportError, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
