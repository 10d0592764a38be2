package fortigate

import "encoding/json"

// Response is a status-coded device response: the HTTP status plus the
// raw body. It satisfies outcome.Responder.
type Response struct {
	status int
	body   []byte
}

// NewResponse builds a Response from a status code and body. Exposed for
// tests and fake collections.
func NewResponse(status int, body []byte) *Response {
	return &Response{status: status, body: body}
}

// StatusCode returns the HTTP status of the response.
func (r *Response) StatusCode() int { return r.status }

// JSON decodes the body into a mapping. The second return is false when
// the body is not a JSON object.
func (r *Response) JSON() (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal(r.body, &m); err != nil {
		return nil, false
	}
	return m, true
}

// Text returns the raw body as a string.
func (r *Response) Text() string { return string(r.body) }
