package hroute

// Handler answers a request. Returning an error hands it to the app's error
// handler.
type Handler func(*Context) error

// Middleware wraps a handler. Registered with Use it runs for every matching
// request and decides whether to call next.
type Middleware func(next Handler) Handler

// Bind wraps h with middleware, the first one outermost.
func (h Handler) Bind(middleware ...Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
