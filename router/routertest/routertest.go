// Package routertest is the conformance suite every router.Router
// implementation runs from its own tests:
//
//	func TestConformance(t *testing.T) {
//		routertest.Run(t, func() router.Router[string] { return New[string]() })
//	}
package routertest

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatxm/hroute/router"
)

// Factory returns a fresh, empty router.
type Factory func() router.Router[string]

type config struct {
	skip    map[string]string
	lenient bool
}

// Option tunes the suite for one implementation.
type Option func(*config)

// Skip disables the named cases, documenting a known limitation.
func Skip(reason string, cases ...string) Option {
	return func(c *config) {
		for _, name := range cases {
			c.skip[name] = reason
		}
	}
}

// LenientTrailingSlash expects "/book/" to match a route registered as "/book".
func LenientTrailingSlash() Option {
	return func(c *config) {
		c.lenient = true
	}
}

type testCase struct {
	name string
	run  func(t *testing.T, newRouter Factory, c *config)
}

// Run executes every case against routers built by newRouter.
func Run(t *testing.T, newRouter Factory, opts ...Option) {
	c := &config{skip: make(map[string]string)}
	for _, opt := range opts {
		opt(c)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if reason, ok := c.skip[tc.name]; ok {
				t.Skip(reason)
			}
			tc.run(t, newRouter, c)
		})
	}
}

// Handlers matches and returns only the handler names.
func Handlers(t *testing.T, r router.Router[string], method, path string) []string {
	t.Helper()
	res, err := r.Match(method, path)
	require.NoError(t, err)
	if res.Empty() {
		return []string{}
	}
	return res.Handlers()
}

// ParamsOf returns the resolved parameters of every match.
func ParamsOf(t *testing.T, r router.Router[string], method, path string) []router.Params {
	t.Helper()
	res, err := r.Match(method, path)
	require.NoError(t, err)
	out := make([]router.Params, res.Len())
	for i := range res.Matches {
		out[i] = res.Params(i)
	}
	return out
}

func mustAdd(t *testing.T, r router.Router[string], method, path, handler string) {
	t.Helper()
	require.NoError(t, r.Add(method, path, handler))
}

var cases = []testCase{
	{"basic", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/hello", "get hello")
		mustAdd(t, r, http.MethodPost, "/hello", "post hello")
		mustAdd(t, r, http.MethodGet, "/hello/world", "get hello world")

		assert.Equal(t, []string{"get hello"}, Handlers(t, r, http.MethodGet, "/hello"))
		assert.Equal(t, []string{"post hello"}, Handlers(t, r, http.MethodPost, "/hello"))
		assert.Equal(t, []string{"get hello world"}, Handlers(t, r, http.MethodGet, "/hello/world"))
		assert.Empty(t, Handlers(t, r, http.MethodPut, "/hello"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/foo"))
	}},

	{"root", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/", "root")
		mustAdd(t, r, http.MethodGet, "/hello", "hello")

		assert.Equal(t, []string{"root"}, Handlers(t, r, http.MethodGet, "/"))
		assert.Equal(t, []string{"hello"}, Handlers(t, r, http.MethodGet, "/hello"))
	}},

	{"no match is empty", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/hello", "hello")

		res, err := r.Match(http.MethodGet, "/nothing")
		require.NoError(t, err)
		assert.True(t, res.Empty())
	}},

	{"ordering", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, router.MethodAll, "*", "A")
		mustAdd(t, r, http.MethodGet, "/x", "B")

		assert.Equal(t, []string{"A", "B"}, Handlers(t, r, http.MethodGet, "/x"))
		assert.Equal(t, []string{"A"}, Handlers(t, r, http.MethodGet, "/y"))
	}},

	{"multi match", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, router.MethodAll, "*", "a")
		mustAdd(t, r, http.MethodGet, "*", "b")
		mustAdd(t, r, http.MethodGet, "/entry", "c")

		assert.Equal(t, []string{"a", "b", "c"}, Handlers(t, r, http.MethodGet, "/entry"))
		assert.Equal(t, []string{"a", "b"}, Handlers(t, r, http.MethodGet, "/other"))
		assert.Equal(t, []string{"a"}, Handlers(t, r, http.MethodPost, "/entry"))
	}},

	{"middleware registered after route", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/page", "page")
		mustAdd(t, r, router.MethodAll, "/page/*", "after")

		assert.Equal(t, []string{"page", "after"}, Handlers(t, r, http.MethodGet, "/page"))
		assert.Equal(t, []string{"after"}, Handlers(t, r, http.MethodGet, "/page/x"))
	}},

	{"all method", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, router.MethodAll, "/any", "any")
		mustAdd(t, r, http.MethodGet, "/get", "get")

		assert.Equal(t, []string{"any"}, Handlers(t, r, http.MethodGet, "/any"))
		assert.Equal(t, []string{"any"}, Handlers(t, r, http.MethodPost, "/any"))
		assert.Equal(t, []string{"any"}, Handlers(t, r, "PURGE", "/any"))
		assert.Empty(t, Handlers(t, r, http.MethodPost, "/get"))
	}},

	{"param", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/entry/:id", "get entry")

		res, err := r.Match(http.MethodGet, "/entry/123")
		require.NoError(t, err)
		require.Equal(t, 1, res.Len())
		id, ok := res.Param(0, "id")
		assert.True(t, ok)
		assert.Equal(t, "123", id)

		assert.Empty(t, Handlers(t, r, http.MethodGet, "/entry"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/entry/123/comments"))
	}},

	{"multiple params", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/posts/:postId/comments/:commentId", "comment")

		params := ParamsOf(t, r, http.MethodGet, "/posts/456/comments/789")
		require.Len(t, params, 1)
		assert.Equal(t, router.Params{"postId": "456", "commentId": "789"}, params[0])
	}},

	{"constrained param", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/post/:date{[0-9]+}/:title{[a-z]+}", "post")

		params := ParamsOf(t, r, http.MethodGet, "/post/20210101/hello")
		require.Len(t, params, 1)
		assert.Equal(t, router.Params{"date": "20210101", "title": "hello"}, params[0])

		assert.Empty(t, Handlers(t, r, http.MethodGet, "/post/onetwothree"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/post/20210101/Hello"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/post/x20210101/hello"))
	}},

	{"constraint stays in its segment", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, `/files/:name{.+\.png}`, "png")

		params := ParamsOf(t, r, http.MethodGet, "/files/logo.png")
		require.Len(t, params, 1)
		assert.Equal(t, "logo.png", params[0]["name"])
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/files/img/logo.png"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/files/logo.jpg"))
	}},

	{"specificity", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/book/a", "literal")
		mustAdd(t, r, http.MethodGet, "/book/:slug{[a-z]+}", "constrained")
		mustAdd(t, r, http.MethodGet, "/book/:slug", "label")
		mustAdd(t, r, http.MethodGet, "/book/*", "wildcard")

		assert.Equal(t, []string{"literal", "constrained", "label", "wildcard"}, Handlers(t, r, http.MethodGet, "/book/a"))
		assert.Equal(t, []string{"constrained", "label", "wildcard"}, Handlers(t, r, http.MethodGet, "/book/xyz"))
		assert.Equal(t, []string{"label", "wildcard"}, Handlers(t, r, http.MethodGet, "/book/123"))
		assert.Equal(t, []string{"wildcard"}, Handlers(t, r, http.MethodGet, "/book/1/2"))
		assert.Equal(t, []string{"wildcard"}, Handlers(t, r, http.MethodGet, "/book"))

		params := ParamsOf(t, r, http.MethodGet, "/book/xyz")
		require.Len(t, params, 3)
		assert.Equal(t, "xyz", params[0]["slug"])
		assert.Equal(t, "xyz", params[1]["slug"])
		assert.Empty(t, params[2])
	}},

	{"registration order with named params", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/book/a", "no-slug")
		mustAdd(t, r, http.MethodGet, "/book/:slug", "slug")
		mustAdd(t, r, http.MethodGet, "/book/b", "no-slug-b")

		assert.Equal(t, []string{"no-slug", "slug"}, Handlers(t, r, http.MethodGet, "/book/a"))
		assert.Equal(t, []string{"slug"}, Handlers(t, r, http.MethodGet, "/book/foo"))
		assert.Equal(t, []string{"slug", "no-slug-b"}, Handlers(t, r, http.MethodGet, "/book/b"))

		params := ParamsOf(t, r, http.MethodGet, "/book/b")
		require.Len(t, params, 2)
		assert.Equal(t, router.Params{"slug": "b"}, params[0])
		assert.Empty(t, params[1])
	}},

	{"middleware params", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/:id/*", "middleware")
		mustAdd(t, r, http.MethodGet, "/:id/comments", "comments")

		assert.Equal(t, []string{"middleware", "comments"}, Handlers(t, r, http.MethodGet, "/123/comments"))
		params := ParamsOf(t, r, http.MethodGet, "/123/comments")
		require.Len(t, params, 2)
		assert.Equal(t, router.Params{"id": "123"}, params[0])
		assert.Equal(t, router.Params{"id": "123"}, params[1])
	}},

	{"wildcard tail", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/entry/*", "entry")

		assert.Equal(t, []string{"entry"}, Handlers(t, r, http.MethodGet, "/entry"))
		assert.Equal(t, []string{"entry"}, Handlers(t, r, http.MethodGet, "/entry/"))
		assert.Equal(t, []string{"entry"}, Handlers(t, r, http.MethodGet, "/entry/a/b"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/entryx"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/other"))
	}},

	{"wildcard in the middle", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/wild/*/card", "card")

		assert.Equal(t, []string{"card"}, Handlers(t, r, http.MethodGet, "/wild/xx/card"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/wild/card"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/wild/xx/yy/card"))
	}},

	{"trailing wildcard after a middle wildcard", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/a/*/*", "h")

		assert.Equal(t, []string{"h"}, Handlers(t, r, http.MethodGet, "/a/b"))
		assert.Equal(t, []string{"h"}, Handlers(t, r, http.MethodGet, "/a/b/"))
		assert.Equal(t, []string{"h"}, Handlers(t, r, http.MethodGet, "/a/b/c"))
	}},

	{"optional param", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/api/animals/:type?", "animals")

		assert.Equal(t, []string{"animals"}, Handlers(t, r, http.MethodGet, "/api/animals"))
		params := ParamsOf(t, r, http.MethodGet, "/api/animals/dog")
		require.Len(t, params, 1)
		assert.Equal(t, router.Params{"type": "dog"}, params[0])
	}},

	{"optional param rejected when not trailing", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		err := r.Add(http.MethodGet, "/api/:type?/list", "bad")
		assert.True(t, errors.Is(err, router.ErrOptionalParameter), "got %v", err)
	}},

	{"duplicate param name", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		err := r.Add(http.MethodGet, "/:id/:id", "dup")
		assert.True(t, errors.Is(err, router.ErrDuplicateParam), "got %v", err)
	}},

	{"trailing slash", func(t *testing.T, newRouter Factory, c *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/book", "book")
		mustAdd(t, r, http.MethodGet, "/shelf/", "shelf")

		assert.Equal(t, []string{"book"}, Handlers(t, r, http.MethodGet, "/book"))
		assert.Equal(t, []string{"shelf"}, Handlers(t, r, http.MethodGet, "/shelf/"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/shelf"))
		if c.lenient {
			assert.Equal(t, []string{"book"}, Handlers(t, r, http.MethodGet, "/book/"))
		} else {
			assert.Empty(t, Handlers(t, r, http.MethodGet, "/book/"))
		}
	}},

	{"hostname", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/www1.example.com/hello", "www1")
		mustAdd(t, r, http.MethodGet, "/www2.example.com/hello", "www2")

		assert.Equal(t, []string{"www1"}, Handlers(t, r, http.MethodGet, "/www1.example.com/hello"))
		assert.Equal(t, []string{"www2"}, Handlers(t, r, http.MethodGet, "/www2.example.com/hello"))
		assert.Empty(t, Handlers(t, r, http.MethodGet, "/www3.example.com/hello"))
	}},

	{"same path twice", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, http.MethodGet, "/twice/:id", "first")
		mustAdd(t, r, http.MethodGet, "/twice/:id", "second")

		assert.Equal(t, []string{"first", "second"}, Handlers(t, r, http.MethodGet, "/twice/1"))
	}},

	{"idempotent match", func(t *testing.T, newRouter Factory, _ *config) {
		r := newRouter()
		mustAdd(t, r, router.MethodAll, "*", "mw")
		mustAdd(t, r, http.MethodGet, "/entry/:id", "entry")
		mustAdd(t, r, http.MethodGet, "/static", "static")

		for i := 0; i < 3; i++ {
			assert.Equal(t, []string{"mw", "entry"}, Handlers(t, r, http.MethodGet, "/entry/1"))
			assert.Equal(t, []string{"mw", "static"}, Handlers(t, r, http.MethodGet, "/static"))
		}
	}},
}
