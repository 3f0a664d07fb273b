package client

import (
	"errors"
	"reflect"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnspecified, "UNSPECIFIED"},
		{KindNetwork, "NETWORK"},
		{KindHTTP, "HTTP"},
		{KindUnexpected, "UNEXPECTED"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("socket closed")
	stringType := reflect.TypeOf("")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "network",
			err:  NewNetworkError(cause, stringType),
			want: "network error: socket closed",
		},
		{
			name: "http",
			err:  NewHTTPError(NewResponse(404, "Not Found", "http://example.com"), nil, stringType, cause),
			want: "http error: 404 Not Found",
		},
		{
			name: "unexpected",
			err:  NewUnexpectedError(cause, stringType),
			want: "unexpected error: socket closed",
		},
		{
			name: "unspecified wrapper",
			err:  &Error{Cause: cause},
			want: "error: socket closed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := NewUnexpectedError(cause, nil)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
}

func TestConstructorsCarryMetadata(t *testing.T) {
	stringType := reflect.TypeOf("")
	body := map[string]string{"reason": "missing"}

	err := NewHTTPError(NewResponse(404, "Not Found", "http://example.com"), body, stringType, nil)

	if err.Kind != KindHTTP {
		t.Errorf("Kind = %v, want %v", err.Kind, KindHTTP)
	}
	if err.Response.Status != 404 || err.Response.Reason != "Not Found" {
		t.Errorf("unexpected response metadata: %+v", err.Response)
	}
	if !reflect.DeepEqual(err.Body, body) {
		t.Errorf("Body = %v, want %v", err.Body, body)
	}
	if err.SuccessType != stringType {
		t.Errorf("SuccessType = %v, want %v", err.SuccessType, stringType)
	}
}
