package hroute

const (
	contentTypeHeader  = "Content-Type"
	cacheControlHeader = "Cache-Control"
	forwardedForHeader = "X-Forwarded-For"
	forwardedProto     = "X-Forwarded-Proto"
	realIPHeader       = "X-Real-Ip"
	requestIDHeader    = "X-Request-Id"
	locationHeader     = "Location"

	contentTypeJSON      = "application/json; charset=utf-8"
	contentTypePlainText = "text/plain; charset=utf-8"

	cacheControlMedia = "public, max-age=864000"
)
