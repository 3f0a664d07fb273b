package mocknet

import "fmt"

// HTTPError is the error a wrapped implementation returns (or panics with) to
// simulate a non-2xx HTTP response. The body is carried through to the
// normalized error untouched and may be nil.
type HTTPError struct {
	Status int
	Reason string
	Body   any
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d %s", e.Status, e.Reason)
}

// NewHTTPError creates an HTTPError with the given status line and body.
func NewHTTPError(status int, reason string, body any) *HTTPError {
	return &HTTPError{Status: status, Reason: reason, Body: body}
}

// NewBadRequest creates a 400 error.
func NewBadRequest(body any) *HTTPError {
	return NewHTTPError(400, "Bad Request", body)
}

// NewUnauthorized creates a 401 error.
func NewUnauthorized(body any) *HTTPError {
	return NewHTTPError(401, "Unauthorized", body)
}

// NewNotFound creates a 404 error.
func NewNotFound(body any) *HTTPError {
	return NewHTTPError(404, "Not Found", body)
}

// NewInternalServerError creates a 500 error.
func NewInternalServerError(body any) *HTTPError {
	return NewHTTPError(500, "Internal Server Error", body)
}
