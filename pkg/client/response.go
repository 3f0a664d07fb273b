package client

// Response carries the HTTP-level metadata of a completed call: status code,
// reason phrase and the URL the call was issued against. The mock layer never
// performs real I/O, so a Response is only ever a value object.
type Response struct {
	Status int
	Reason string
	URL    string
}

// NewResponse creates a response envelope.
func NewResponse(status int, reason, url string) *Response {
	return &Response{
		Status: status,
		Reason: reason,
		URL:    url,
	}
}
