package client

// Callback is the two-channel result sink for callback-style service methods.
// Exactly one of the two funcs is invoked per call: OnSuccess with the
// produced value and response metadata, or OnFailure with the normalized
// error.
//
// Service definitions are free to declare their own callback types instead of
// this one; any struct carrying func fields with these exact names and shapes
// is treated as a callback by the dispatch layer.
type Callback[T any] struct {
	OnSuccess func(result T, response *Response)
	OnFailure func(err *Error)
}
