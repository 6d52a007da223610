package careerapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers network failures and non-2xx answers.
	ErrTransport = errors.New("careerapi: transport failure")
	// ErrSchema means the body did not match the endpoint's schema.
	ErrSchema = errors.New("careerapi: response does not match schema")
	// ErrClosed is returned once Close has been called.
	ErrClosed = errors.New("careerapi: client closed")
)

// TransportError carries whatever the backend managed to say on a failed exchange.
// Message is the "error" field of a JSON error body, when one was sent.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// APIError is an application-level failure: the backend answered with success=false.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request unsuccessful", e.Endpoint)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

// ServerMessage extracts the backend-provided error text from err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Message
	}
	return ""
}
