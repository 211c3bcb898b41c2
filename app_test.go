package hroute

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zatxm/hroute/router/registry"
)

func init() {
	Log = zap.NewNop()
}

func serve(a *App, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func newApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	a, err := New(opts...)
	require.NoError(t, err)
	return a
}

func TestAppEveryRouter(t *testing.T) {
	for _, name := range registry.Names() {
		t.Run(name, func(t *testing.T) {
			a := newApp(t, WithRouter(name))
			require.NoError(t, a.Get("/hello", func(c *Context) error {
				return c.Text("hello")
			}))
			require.NoError(t, a.Get("/users/:id", func(c *Context) error {
				return c.Text("user " + c.Get("id"))
			}))

			rec := serve(a, http.MethodGet, "/hello", nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "hello", rec.Body.String())

			rec = serve(a, http.MethodGet, "/users/42", nil)
			assert.Equal(t, "user 42", rec.Body.String())

			rec = serve(a, http.MethodPost, "/hello", nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestAppUnknownRouter(t *testing.T) {
	_, err := New(WithRouter("radix"))
	assert.True(t, errors.Is(err, registry.ErrUnknownRouter))
}

func TestMiddlewareWrapsHandler(t *testing.T) {
	a := newApp(t)
	var trace []string
	require.NoError(t, a.Use(func(next Handler) Handler {
		return func(c *Context) error {
			trace = append(trace, "before")
			err := next(c)
			trace = append(trace, "after")
			return err
		}
	}))
	require.NoError(t, a.Get("/ping", func(c *Context) error {
		trace = append(trace, "handler")
		return c.Text("pong")
	}))

	rec := serve(a, http.MethodGet, "/ping", nil)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, []string{"before", "handler", "after"}, trace)
}

func TestMiddlewareRunsForNotFound(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Use(func(next Handler) Handler {
		return func(c *Context) error {
			c.Response().SetHeader("X-Seen", "yes")
			return next(c)
		}
	}))

	rec := serve(a, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Seen"))
	assert.Equal(t, http.StatusText(http.StatusNotFound), rec.Body.String())
}

func TestFirstHandlerWins(t *testing.T) {
	a := newApp(t, WithRouter(registry.Trie))
	require.NoError(t, a.Get("/posts/:id", func(c *Context) error {
		return c.Text("by id " + c.Get("id"))
	}))
	require.NoError(t, a.Get("/posts/*", func(c *Context) error {
		return c.Text("wildcard")
	}))

	rec := serve(a, http.MethodGet, "/posts/7", nil)
	assert.Equal(t, "by id 7", rec.Body.String())
	rec = serve(a, http.MethodGet, "/posts/7/comments", nil)
	assert.Equal(t, "wildcard", rec.Body.String())
}

func TestEachEntrySeesItsOwnParams(t *testing.T) {
	a := newApp(t)
	var seen []string
	require.NoError(t, a.UsePath("/:lang/*", func(next Handler) Handler {
		return func(c *Context) error {
			seen = append(seen, "mw lang="+c.Get("lang")+" route="+c.RoutePath())
			err := next(c)
			seen = append(seen, "mw after lang="+c.Get("lang"))
			return err
		}
	}))
	require.NoError(t, a.Get("/:lang/users/:id", func(c *Context) error {
		seen = append(seen, "handler lang="+c.Get("lang")+" id="+c.Get("id"))
		return c.Text(c.HandlerPath())
	}))

	rec := serve(a, http.MethodGet, "/en/users/9", nil)
	assert.Equal(t, "/:lang/users/:id", rec.Body.String())
	assert.Equal(t, []string{
		"mw lang=en route=/:lang/*",
		"handler lang=en id=9",
		"mw after lang=en",
	}, seen)
}

func TestRouteMiddleware(t *testing.T) {
	a := newApp(t)
	auth := func(next Handler) Handler {
		return func(c *Context) error {
			if c.Request().Header("Authorization") == "" {
				return c.Error(http.StatusUnauthorized)
			}
			return next(c)
		}
	}
	require.NoError(t, a.Get("/admin", func(c *Context) error {
		return c.Text("admin")
	}, auth))

	rec := serve(a, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "token")
	rec = httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestErrorHandler(t *testing.T) {
	var got error
	a := newApp(t, WithErrorHandler(func(c *Context, err error) {
		got = err
		c.SetStatus(http.StatusTeapot)
		_ = c.Text("custom")
	}))
	require.NoError(t, a.Get("/fail", func(c *Context) error {
		return errors.New("boom")
	}))

	rec := serve(a, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "custom", rec.Body.String())
	assert.EqualError(t, got, "boom")
}

func TestDefaultErrorHandler(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Get("/fail", func(c *Context) error {
		return errors.New("boom")
	}))
	require.NoError(t, a.Get("/written", func(c *Context) error {
		c.SetStatus(http.StatusAccepted)
		_ = c.Text("partial")
		return errors.New("late failure")
	}))

	rec := serve(a, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(a, http.MethodGet, "/written", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestNotFoundOption(t *testing.T) {
	a := newApp(t, WithNotFound(func(c *Context) error {
		return c.JSONAndStatus(http.StatusNotFound, map[string]string{"path": c.Path()})
	}))
	rec := serve(a, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"path":"/missing"}`, rec.Body.String())
}

func TestRecovery(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Use(Recovery()))
	require.NoError(t, a.Get("/panic", func(c *Context) error {
		panic("oops")
	}))

	rec := serve(a, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "oops", rec.Body.String())
}

func TestRequestID(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Use(RequestID()))
	require.NoError(t, a.Get("/", func(c *Context) error {
		return c.Text(c.GetKeyString(RequestIDKey))
	}))

	rec := serve(a, http.MethodGet, "/", nil)
	id := rec.Header().Get(requestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "given")
	rec = httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, "given", rec.Body.String())
}

func TestGroup(t *testing.T) {
	a := newApp(t)
	var hits []string
	api := a.Group("/api")
	require.NoError(t, api.Use(func(next Handler) Handler {
		return func(c *Context) error {
			hits = append(hits, c.Path())
			return next(c)
		}
	}))
	v1 := api.Group("v1")
	assert.Equal(t, "/api/v1", v1.Prefix())
	require.NoError(t, v1.Get("/users/:id", func(c *Context) error {
		return c.Text("v1 user " + c.Get("id"))
	}))
	require.NoError(t, a.Get("/health", func(c *Context) error {
		return c.Text("ok")
	}))

	rec := serve(a, http.MethodGet, "/api/v1/users/3", nil)
	assert.Equal(t, "v1 user 3", rec.Body.String())
	rec = serve(a, http.MethodGet, "/health", nil)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, []string{"/api/v1/users/3"}, hits)
}

func TestHostRouting(t *testing.T) {
	a := newApp(t, WithHostRouting())
	require.NoError(t, a.Get("/api.example.com/users", func(c *Context) error {
		return c.Text("api users")
	}))
	require.NoError(t, a.Get("/:host/users", func(c *Context) error {
		return c.Text("users on " + c.Get("host"))
	}))

	req := httptest.NewRequest(http.MethodGet, "http://api.example.com:8080/users", nil)
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, "api users", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "http://www.example.com/users", nil)
	rec = httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, "users on www.example.com", rec.Body.String())
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o644))

	a := newApp(t)
	require.NoError(t, a.Static("/assets", dir))
	rec := serve(a, http.MethodGet, "/assets/app.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get(contentTypeHeader), "text/css"))
}

func TestEnableLogRequestKeepsBody(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.EnableLogRequest())
	require.NoError(t, a.Post("/echo", func(c *Context) error {
		b, err := c.Request().RawData()
		if err != nil {
			return err
		}
		return c.String(string(b))
	}))

	rec := serve(a, http.MethodPost, "/echo", strings.NewReader("payload"))
	assert.Equal(t, "payload", rec.Body.String())
}

func TestSmartRouterName(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Get("/users/:id", func(c *Context) error { return nil }))
	serve(a, http.MethodGet, "/users/1", nil)
	assert.Equal(t, "SmartRouter + RegExpRouter", a.RouterName())
}

func TestQueryAndRedirect(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Get("/search", func(c *Context) error {
		if q := c.Query("q"); q != "" {
			return c.Text("results for " + q)
		}
		return c.Redirect(http.StatusFound, "/search?q=all")
	}))

	rec := serve(a, http.MethodGet, "/search?q=go", nil)
	assert.Equal(t, "results for go", rec.Body.String())

	rec = serve(a, http.MethodGet, "/search", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/search?q=all", rec.Header().Get("Location"))
}

func TestContextReusedClean(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Get("/set", func(c *Context) error {
		c.SetKey("user", "alice")
		return c.Text(c.HandlerPath())
	}))
	require.NoError(t, a.Get("/get", func(c *Context) error {
		return c.Text("user=" + c.GetKeyString("user"))
	}))

	for i := 0; i < 10; i++ {
		serve(a, http.MethodGet, "/set", nil)
		rec := serve(a, http.MethodGet, "/get", nil)
		assert.Equal(t, "user=", rec.Body.String())
	}
}

func TestResponseController(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Get("/stream", func(c *Context) error {
		c.Response().SetHeader(contentTypeHeader, contentTypePlainText)
		if err := c.String("chunk"); err != nil {
			return err
		}
		assert.Equal(t, contentTypePlainText, c.Response().Header(contentTypeHeader))
		return http.NewResponseController(c.Response().Rw()).Flush()
	}))

	rec := serve(a, http.MethodGet, "/stream", nil)
	assert.True(t, rec.Flushed)
	assert.Equal(t, "chunk", rec.Body.String())
}

func TestClientIP(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Get("/ip", func(c *Context) error {
		return c.Text(c.ClientIP())
	}))

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set(forwardedForHeader, "10.0.0.1, 10.0.0.2")
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, "10.0.0.1", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set(realIPHeader, "10.0.0.3")
	rec = httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, "10.0.0.3", rec.Body.String())

	// httptest requests come from 192.0.2.1:1234
	rec = serve(a, http.MethodGet, "/ip", nil)
	assert.Equal(t, "192.0.2.1", rec.Body.String())
}
