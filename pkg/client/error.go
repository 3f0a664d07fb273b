package client

import (
	"fmt"
	"reflect"
)

// Kind classifies a normalized client error.
type Kind int

const (
	// KindUnspecified is the zero value; used when an error handler
	// substituted a foreign error and the wrapper carries only a cause.
	KindUnspecified Kind = iota
	// KindNetwork marks a (simulated) transport-level failure.
	KindNetwork
	// KindHTTP marks a non-2xx response signalled by the implementation.
	KindHTTP
	// KindUnexpected marks any other failure raised by the implementation.
	KindUnexpected
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NETWORK"
	case KindHTTP:
		return "HTTP"
	case KindUnexpected:
		return "UNEXPECTED"
	default:
		return "UNSPECIFIED"
	}
}

// Error is the normalized error record produced for any failed call. It is
// built fresh per failure and handed to the configured ErrorHandler before
// delivery; it is never persisted.
type Error struct {
	Kind        Kind
	Response    *Response
	Body        any
	SuccessType reflect.Type
	Cause       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("network error: %v", e.Cause)
	case KindHTTP:
		return fmt.Sprintf("http error: %d %s", e.Response.Status, e.Response.Reason)
	case KindUnexpected:
		return fmt.Sprintf("unexpected error: %v", e.Cause)
	default:
		return fmt.Sprintf("error: %v", e.Cause)
	}
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a NETWORK-kind error with no response metadata.
func NewNetworkError(cause error, successType reflect.Type) *Error {
	return &Error{
		Kind:        KindNetwork,
		SuccessType: successType,
		Cause:       cause,
	}
}

// NewHTTPError creates an HTTP-kind error carrying the response metadata and
// an optional body value. The body may be nil.
func NewHTTPError(response *Response, body any, successType reflect.Type, cause error) *Error {
	return &Error{
		Kind:        KindHTTP,
		Response:    response,
		Body:        body,
		SuccessType: successType,
		Cause:       cause,
	}
}

// NewUnexpectedError creates an UNEXPECTED-kind error wrapping the raised
// cause.
func NewUnexpectedError(cause error, successType reflect.Type) *Error {
	return &Error{
		Kind:        KindUnexpected,
		SuccessType: successType,
		Cause:       cause,
	}
}

// ErrorHandler lets callers substitute the error a failed call delivers. The
// handler is invoked exactly once per failure with the normalized error and
// may return any error in its place; returning the input keeps it unchanged.
type ErrorHandler interface {
	HandleError(err *Error) error
}

// ErrorHandlerFunc adapts a plain function to the ErrorHandler interface.
type ErrorHandlerFunc func(err *Error) error

// HandleError implements ErrorHandler.
func (f ErrorHandlerFunc) HandleError(err *Error) error {
	return f(err)
}

// identityErrorHandler keeps every error unchanged.
type identityErrorHandler struct{}

func (identityErrorHandler) HandleError(err *Error) error {
	return err
}
