package hroute

import (
	stdContext "context"
	"mime"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
)

// Context represents a request & response context.
type Context struct {
	app      *App
	status   int
	request  request
	response response
	result   router.Result[*route]
	// index is the match whose parameters Get reads.
	index       int
	handlerPath string
	mu          sync.RWMutex
	keys        map[string]any
}

// App returns the app serving the request.
func (c *Context) App() *App {
	return c.app
}

// SetKey stores a value for the lifetime of the request.
func (c *Context) SetKey(key string, value any) {
	c.mu.Lock()
	if c.keys == nil {
		c.keys = make(map[string]any)
	}
	c.keys[key] = value
	c.mu.Unlock()
}

// GetKey returns the value for the given key, ie: (value, true).
// If the value does not exists it returns (nil, false)
func (c *Context) GetKey(key string) (value any, exists bool) {
	c.mu.RLock()
	value, exists = c.keys[key]
	c.mu.RUnlock()
	return
}

func (c *Context) GetKeyString(key string) (s string) {
	if val, ok := c.GetKey(key); ok && val != nil {
		s, _ = val.(string)
	}
	return
}

// Get retrieves a path parameter of the route currently running.
func (c *Context) Get(param string) string {
	if c.index >= c.result.Len() {
		return ""
	}
	v, _ := c.result.Param(c.index, param)
	return v
}

// Params returns every path parameter of the route currently running.
func (c *Context) Params() router.Params {
	if c.index >= c.result.Len() {
		return router.EmptyParams()
	}
	return c.result.Params(c.index)
}

// RoutePath returns the pattern the running handler or middleware was
// registered with.
func (c *Context) RoutePath() string {
	if c.index >= c.result.Len() {
		return ""
	}
	return c.result.Matches[c.index].Handler.path
}

// HandlerPath returns the pattern of the handler that answered the request,
// empty when none matched.
func (c *Context) HandlerPath() string {
	return c.handlerPath
}

// Bytes writes the status and body.
func (c *Context) Bytes(body []byte) error {
	// If the request has been canceled by the client, stop.
	if c.request.Context().Err() != nil {
		return errors.New("Request interrupted by the client")
	}

	header := c.response.rw.Header()
	if isMedia(header.Get(contentTypeHeader)) {
		header.Set(cacheControlHeader, cacheControlMedia)
	}
	c.response.rw.WriteHeader(c.status)
	_, err := c.response.rw.Write(body)
	return err
}

// JSON encodes the object to a JSON string and responds.
func (c *Context) JSON(value any) error {
	c.response.SetHeader(contentTypeHeader, contentTypeJSON)
	bytes, err := Json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Bytes(bytes)
}

func (c *Context) JSONAndStatus(status int, value any) error {
	c.status = status
	return c.JSON(value)
}

// Text sends a plain text string.
func (c *Context) Text(text string) error {
	c.response.SetHeader(contentTypeHeader, contentTypePlainText)
	return c.String(text)
}

// String responds with raw text.
func (c *Context) String(body string) error {
	return c.Bytes([]byte(body))
}

// File sends the contents of a local file and determines its mime type by extension.
func (c *Context) File(file string) error {
	contentType := mime.TypeByExtension(filepath.Ext(file))
	if isMedia(contentType) {
		c.response.SetHeader(cacheControlHeader, cacheControlMedia)
	}
	http.ServeFile(c.response.rw, c.request.req, file)
	return nil
}

// Error should be used for sending error messages to the client.
func (c *Context) Error(statusCode int, errorList ...any) error {
	c.status = statusCode

	if len(errorList) == 0 {
		message := http.StatusText(statusCode)
		_ = c.String(message)
		return errors.New(message)
	}

	parts := make([]string, 0, len(errorList))
	for _, param := range errorList {
		switch err := param.(type) {
		case string:
			parts = append(parts, err)
		case error:
			parts = append(parts, err.Error())
		}
	}
	message := strings.Join(parts, ": ")
	_ = c.String(message)
	return errors.New(message)
}

// Redirect redirects to the given URL.
func (c *Context) Redirect(status int, u string) error {
	c.status = status
	c.response.SetHeader(locationHeader, u)
	c.response.rw.WriteHeader(c.status)
	return nil
}

// Path returns the request path, e.g. /entry/12.
func (c *Context) Path() string {
	return c.request.req.URL.Path
}

// Query returns a query string parameter.
func (c *Context) Query(param string) string {
	return c.request.req.URL.Query().Get(param)
}

// IP returns the host of RemoteAddr.
func (c *Context) IP() string {
	if ip, _, err := net.SplitHostPort(strings.TrimSpace(c.request.req.RemoteAddr)); err == nil {
		return ip
	}
	return ""
}

// ClientIP tries to determine the real IP address of the client.
func (c *Context) ClientIP() string {
	ip := c.request.Header(forwardedForHeader)
	ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	if ip == "" {
		ip = strings.TrimSpace(c.request.Header(realIPHeader))
	}
	if ip != "" {
		return ip
	}
	return c.IP()
}

// Written reports whether a status or body has been sent.
func (c *Context) Written() bool {
	w, ok := c.response.rw.(*responseWriter)
	return ok && w.written
}

// Status returns the HTTP status.
func (c *Context) Status() int {
	return c.status
}

// SetStatus sets the HTTP status.
func (c *Context) SetStatus(status int) {
	c.status = status
}

// Request returns the HTTP request.
func (c *Context) Request() Request {
	return &c.request
}

// SetContext replaces the context of the request, so that values such as a
// trace span reach handlers further down the chain.
func (c *Context) SetContext(ctx stdContext.Context) {
	c.request.req = c.request.req.WithContext(ctx)
}

// Response returns the HTTP response.
func (c *Context) Response() Response {
	return &c.response
}

// Close frees up resources and is automatically called
// in the ServeHTTP part of the web server.
func (c *Context) Close() {
	c.request.req = nil
	c.response.rw = nil
	c.result = router.Result[*route]{}
	c.keys = nil
	c.handlerPath = ""
	c.app.contextPool.Put(c)
}

// isMedia returns whether the given content type is a media type.
func isMedia(contentType string) bool {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return true
	case strings.HasPrefix(contentType, "video/"):
		return true
	case strings.HasPrefix(contentType, "audio/"):
		return true
	default:
		return false
	}
}
