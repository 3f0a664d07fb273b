package mocknet

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/guoGavin/retrofit/pkg/client"
)

// The error translator: raised implementation errors become normalized
// client.Error records, pass through the configured handler exactly once, and
// are then adapted to the shape the delivery channel expects. Synchronous and
// stream channels deliver the handler's output verbatim; only the callback
// channel is constrained to *client.Error and wraps foreign substitutions.

// normalize converts an error raised by the wrapped implementation into the
// normalized record. An *HTTPError becomes an HTTP-kind error carrying the
// simulated status line and body; anything else is UNEXPECTED.
func (m *MockClient) normalize(raised error, successType reflect.Type) *client.Error {
	var he *HTTPError
	if errors.As(raised, &he) {
		resp := client.NewResponse(he.Status, he.Reason, m.cfg.BaseURL())
		return client.NewHTTPError(resp, he.Body, successType, he)
	}
	return client.NewUnexpectedError(raised, successType)
}

// networkError builds the normalized record for a simulated transport
// failure.
func (m *MockClient) networkError(successType reflect.Type) *client.Error {
	return client.NewNetworkError(errMockNetwork, successType)
}

// applyHandler runs the handler pipeline. A nil return keeps the normalized
// error; any other return substitutes it. The result is what the synchronous
// and stream channels deliver.
func (m *MockClient) applyHandler(norm *client.Error) error {
	replacement := m.handler.HandleError(norm)
	if replacement == nil {
		return norm
	}
	return replacement
}

// adaptCallback coerces a handler result to the *client.Error the callback
// failure channel requires. A foreign substitution is wrapped in a fresh
// record carrying only the cause.
func adaptCallback(replacement error) *client.Error {
	if ce, ok := replacement.(*client.Error); ok {
		return ce
	}
	return &client.Error{Cause: replacement}
}

// raisedError converts a recovered panic value into an error.
func raisedError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
