// Package hroute is a small HTTP app on top of the route matchers in
// router/. A request runs every route that matches it, in registration
// order: middleware registered with Use wraps what follows it, and the first
// plain handler ends the chain.
package hroute

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/router/registry"
	"github.com/zatxm/hroute/urlpath"
)

// route is what the app stores in its router. Exactly one of handler and
// middleware is set.
type route struct {
	path       string
	handler    Handler
	middleware Middleware
}

type App struct {
	server       *http.Server
	tlsCertFile  string
	tlsKeyFile   string
	router       router.Router[*route]
	contextPool  sync.Pool
	notFound     Handler
	errorHandler func(*Context, error)
	hostRouting  bool
}

// New creates an app. It fails only for an unknown router name.
func New(opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var regOpts []registry.Option
	if o.optimize {
		regOpts = append(regOpts, registry.WithOptimize())
	}
	r, err := registry.New[*route](o.router, regOpts...)
	if err != nil {
		return nil, err
	}

	a := &App{
		router:       r,
		tlsCertFile:  o.tlsCertFile,
		tlsKeyFile:   o.tlsKeyFile,
		hostRouting:  o.hostRouting,
		notFound:     o.notFound,
		errorHandler: o.errorHandler,
	}
	if a.notFound == nil {
		a.notFound = func(c *Context) error {
			c.SetStatus(http.StatusNotFound)
			return c.String(http.StatusText(http.StatusNotFound))
		}
	}
	if a.errorHandler == nil {
		a.errorHandler = func(c *Context, err error) {
			Log.Error("Error in handler",
				zap.Error(err),
				zap.String("path", c.request.Path()))
			if !c.Written() {
				_ = c.Error(http.StatusInternalServerError)
			}
		}
	}

	// Context pool
	a.contextPool.New = func() any { return &Context{app: a} }

	return a, nil
}

// RouterName reports the matching strategy in use. A smart router names its
// pick once the first request has been served.
func (a *App) RouterName() string {
	return a.router.Name()
}

func (a *App) add(method, path string, rt *route) error {
	if err := a.router.Add(method, path, rt); err != nil {
		return errors.WithMessagef(err, "add %s %s", method, path)
	}
	return nil
}

// Add registers a handler for the given method and path. m wraps this
// handler only.
func (a *App) Add(method, path string, handler Handler, m ...Middleware) error {
	return a.add(method, path, &route{path: path, handler: handler.Bind(m...)})
}

// Get registers your function to be called when the given GET path has been requested.
func (a *App) Get(path string, handler Handler, m ...Middleware) error {
	return a.Add(http.MethodGet, path, handler, m...)
}

// Post registers your function to be called when the given POST path has been requested.
func (a *App) Post(path string, handler Handler, m ...Middleware) error {
	return a.Add(http.MethodPost, path, handler, m...)
}

// Put registers your function to be called when the given PUT path has been requested.
func (a *App) Put(path string, handler Handler, m ...Middleware) error {
	return a.Add(http.MethodPut, path, handler, m...)
}

// Patch registers your function to be called when the given PATCH path has been requested.
func (a *App) Patch(path string, handler Handler, m ...Middleware) error {
	return a.Add(http.MethodPatch, path, handler, m...)
}

// Delete registers your function to be called when the given DELETE path has been requested.
func (a *App) Delete(path string, handler Handler, m ...Middleware) error {
	return a.Add(http.MethodDelete, path, handler, m...)
}

// Any registers a handler for every method.
func (a *App) Any(path string, handler Handler, m ...Middleware) error {
	return a.Add(router.MethodAll, path, handler, m...)
}

// Use adds middleware running for every request, including those no route
// answers.
func (a *App) Use(m ...Middleware) error {
	return a.UsePath("*", m...)
}

// UsePath adds middleware running for every request matching path.
func (a *App) UsePath(path string, m ...Middleware) error {
	for _, mw := range m {
		if err := a.add(router.MethodAll, path, &route{path: path, middleware: mw}); err != nil {
			return err
		}
	}
	return nil
}

// Static serves the files below dir under prefix.
// a.Static("/static", "public/")
func (a *App) Static(prefix, dir string, m ...Middleware) error {
	return a.Get(urlpath.MergePath(prefix, "*"), staticHandler(prefix, dir), m...)
}

func staticHandler(prefix, dir string) Handler {
	prefix = strings.TrimSuffix(prefix, "/")
	return func(c *Context) error {
		name := path.Clean("/" + strings.TrimPrefix(c.Path(), prefix))
		return c.File(filepath.Join(dir, filepath.FromSlash(name)))
	}
}

// Group returns a route group under prefix. m wraps every handler added
// through the group.
func (a *App) Group(prefix string, m ...Middleware) *Group {
	return &Group{app: a, prefix: urlpath.MergePath(prefix), middleware: m}
}

// ServeHTTP responds to the given request.
func (a *App) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	c := a.newContext(req, rw)

	res, err := a.router.Match(req.Method, a.routingPath(req))
	if err != nil {
		a.errorHandler(c, err)
		c.Close()
		return
	}
	c.result = res

	if err := a.compose(res)(c); err != nil {
		a.errorHandler(c, err)
	}
	c.Close()
}

func (a *App) routingPath(req *http.Request) string {
	if !a.hostRouting {
		return req.URL.Path
	}
	host := req.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "/" + host + req.URL.Path
}

// compose chains the matched routes back to front. A plain handler drops
// everything registered after it; middleware receives the rest as next.
func (a *App) compose(res router.Result[*route]) Handler {
	next := at(res.Len(), a.notFound)
	for i := res.Len() - 1; i >= 0; i-- {
		rt := res.Matches[i].Handler
		if rt.middleware != nil {
			next = at(i, rt.middleware(next))
			continue
		}
		handler, path := rt.handler, rt.path
		next = at(i, func(c *Context) error {
			c.handlerPath = path
			return handler(c)
		})
	}
	return next
}

// at runs h with the parameters of the i-th match.
func at(i int, h Handler) Handler {
	return func(c *Context) error {
		prev := c.index
		c.index = i
		err := h(c)
		c.index = prev
		return err
	}
}

// Run start your application with http(s)
func (a *App) Run(addr string) error {
	Log.Debug("Listening and serving HTTP(S)", zap.String("address", addr))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	a.server = &http.Server{Addr: addr, Handler: a}
	errCh := make(chan error, 1)
	go func() {
		var err error
		if a.tlsCertFile == "" || a.tlsKeyFile == "" {
			err = a.server.ListenAndServe()
		} else {
			err = a.server.ListenAndServeTLS(a.tlsCertFile, a.tlsKeyFile)
		}
		if err != nil && err != http.ErrServerClosed {
			Log.Error("http(s) listen error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case sig := <-stop:
		Log.Info("Shutting down signal", zap.String("signal", sig.String()))
		return a.Shutdown()
	case err := <-errCh:
		return errors.Wrapf(err, "http(s) server error, addr: %v", addr)
	}
}

// RunServer start your application by given server and listener
func (a *App) RunServer(srv *http.Server, l net.Listener) error {
	Log.Debug("Listening and serving HTTP(S) on listener what's bind with address",
		zap.String("address", l.Addr().String()))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	a.server = srv
	srv.Handler = a
	errCh := make(chan error, 1)
	go func() {
		var err error
		if a.tlsCertFile == "" || a.tlsKeyFile == "" {
			err = srv.Serve(l)
		} else {
			err = srv.ServeTLS(l, a.tlsCertFile, a.tlsKeyFile)
		}
		if err != nil && err != http.ErrServerClosed {
			Log.Error("listen server error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case sig := <-stop:
		Log.Info("Shutting down signal", zap.String("signal", sig.String()))
		return a.Shutdown()
	case err := <-errCh:
		return errors.Wrapf(err, "listen server: %v", l.Addr())
	}
}

func (a *App) Shutdown() error {
	Log.Info("Shutting down http(s) server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http(s) server forced to shutdown")
	}
	Log.Info("Http(s) server exited properly")
	return nil
}

// newContext returns a new context from the pool.
func (a *App) newContext(req *http.Request, rw http.ResponseWriter) *Context {
	c := a.contextPool.Get().(*Context)
	c.status = http.StatusOK
	c.request.req = req
	c.response.rw = &responseWriter{ResponseWriter: rw}
	c.index = 0
	return c
}

// BodyBytesKey holds the request body read by EnableLogRequest.
const BodyBytesKey = "hroute_bodybyteskey"

// EnableLogRequest logs one record per request.
func (a *App) EnableLogRequest() error {
	return a.Use(func(next Handler) Handler {
		return func(c *Context) error {
			start := time.Now()
			path := c.request.Path()
			query := c.request.RawQuery()
			method := c.request.Method()

			var b []byte
			if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
				b, _ = c.request.RawDataSetBody()
				c.SetKey(BodyBytesKey, b)
			}

			err := next(c)

			latency := time.Since(start)
			if latency > time.Minute {
				latency = latency - latency%time.Second
			}
			Log.Info("Request record",
				zap.String("request_id", c.GetKeyString(RequestIDKey)),
				zap.Int("status", c.Status()),
				zap.String("method", method),
				zap.String("path", path),
				zap.String("route", c.HandlerPath()),
				zap.String("query", query),
				zap.ByteString("body", b),
				zap.String("ip", c.ClientIP()),
				zap.String("user-agent", c.request.req.UserAgent()),
				zap.Duration("latency", latency))

			return err
		}
	})
}
