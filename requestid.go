package hroute

import (
	"github.com/google/uuid"
)

// RequestIDKey is the context key holding the request id.
const RequestIDKey = "hroute_requestid"

// RequestID tags every request with an id, taken from the X-Request-Id
// header when the client sent one.
func RequestID() Middleware {
	return func(next Handler) Handler {
		return func(c *Context) error {
			id := c.request.Header(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.SetKey(RequestIDKey, id)
			c.response.SetHeader(requestIDHeader, id)
			return next(c)
		}
	}
}
