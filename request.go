package hroute

import (
	"bytes"
	stdContext "context"
	"io"
	"net/http"

	"github.com/zatxm/hroute/tools"
)

// Request is the read side of a Context, as seen by middleware.
type Request interface {
	RawData() ([]byte, error)
	RawDataSetBody() ([]byte, error)
	Context() stdContext.Context
	Header(string) string
	Method() string
	Path() string
	RawQuery() string
	Scheme() string
	Req() *http.Request
}

type request struct {
	req *http.Request
}

// RawData reads the body. It can be read once unless RawDataSetBody ran
// earlier in the chain.
func (r *request) RawData() ([]byte, error) {
	return tools.ReadAll(r.req.Body)
}

// RawDataSetBody reads the body and puts a copy back for the handlers
// after it.
func (r *request) RawDataSetBody() ([]byte, error) {
	b, err := tools.ReadAll(r.req.Body)
	if err != nil {
		return nil, err
	}
	r.req.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}

func (r *request) Context() stdContext.Context {
	return r.req.Context()
}

func (r *request) Header(key string) string {
	return r.req.Header.Get(key)
}

func (r *request) Method() string {
	return r.req.Method
}

// Path is the request path, without the host prefix host routing matches on.
func (r *request) Path() string {
	return r.req.URL.Path
}

func (r *request) RawQuery() string {
	return r.req.URL.RawQuery
}

// Scheme honors X-Forwarded-Proto set by a proxy in front of the app.
func (r *request) Scheme() string {
	if scheme := r.Header(forwardedProto); scheme != "" {
		return scheme
	}
	if r.req.TLS != nil {
		return "https"
	}
	return "http"
}

func (r *request) Req() *http.Request {
	return r.req
}
