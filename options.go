package hroute

type options struct {
	router       string
	optimize     bool
	hostRouting  bool
	notFound     Handler
	errorHandler func(*Context, error)
	tlsCertFile  string
	tlsKeyFile   string
}

// Option configures New.
type Option func(*options)

// WithRouter selects the matching strategy by name, see registry.Names.
// The default is the smart router.
func WithRouter(name string) Option {
	return func(o *options) {
		o.router = name
	}
}

// WithOptimize serves routes without labels or wildcards from a map in front
// of the router.
func WithOptimize() Option {
	return func(o *options) {
		o.optimize = true
	}
}

// WithHostRouting matches "/<host><path>" instead of the path, so that routes
// such as /api.example.com/users only answer for one host.
func WithHostRouting() Option {
	return func(o *options) {
		o.hostRouting = true
	}
}

// WithNotFound replaces the handler run when no route answers a request.
// Middleware matching the request still wraps it.
func WithNotFound(h Handler) Option {
	return func(o *options) {
		o.notFound = h
	}
}

// WithErrorHandler replaces the function receiving handler errors.
func WithErrorHandler(f func(*Context, error)) Option {
	return func(o *options) {
		o.errorHandler = f
	}
}

// WithTLS serves HTTPS with the given certificate and key files.
func WithTLS(certFile, keyFile string) Option {
	return func(o *options) {
		o.tlsCertFile = certFile
		o.tlsKeyFile = keyFile
	}
}
