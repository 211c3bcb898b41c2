// Package patternrouter compiles one regular expression per route and tries
// them in registration order. It is the simplest router and accepts the
// widest range of route shapes. "/book/" matches a route registered as
// "/book".
package patternrouter

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

const name = "PatternRouter"

var paramName = regexp.MustCompile(`^\w+$`)

type route[T any] struct {
	method  string
	re      *regexp.Regexp
	handler T
}

// Router is a regexp-per-route router.
type Router[T any] struct {
	routes []route[T]
}

var (
	_ router.Router[any]          = (*Router[any])(nil)
	_ router.TrailingSlashLenient = (*Router[any])(nil)
)

// New creates an empty pattern router.
func New[T any]() *Router[T] {
	return &Router[T]{}
}

// Name implements router.Router.
func (r *Router[T]) Name() string {
	return name
}

// LenientTrailingSlash implements router.TrailingSlashLenient.
func (r *Router[T]) LenientTrailingSlash() bool {
	return true
}

// Add implements router.Router. Parameter names must be word characters.
func (r *Router[T]) Add(method, path string, handler T) error {
	paths, err := urlpath.ExpandPath(path)
	if err != nil {
		return errors.WithMessage(err, name)
	}
	compiled := make([]*regexp.Regexp, 0, len(paths))
	for _, p := range paths {
		re, err := Compile(p)
		if err != nil {
			return err
		}
		compiled = append(compiled, re)
	}
	for _, re := range compiled {
		r.routes = append(r.routes, route[T]{method: method, re: re, handler: handler})
	}
	return nil
}

// Match implements router.Router.
func (r *Router[T]) Match(method, path string) (router.Result[T], error) {
	var matches []router.Match[T]
	for i := range r.routes {
		rt := &r.routes[i]
		if !router.MethodMatches(rt.method, method) {
			continue
		}
		m := rt.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		params := router.EmptyParams()
		if len(m) > 1 {
			params = make(router.Params, len(m)-1)
			for j, n := range rt.re.SubexpNames() {
				if n != "" {
					params[n] = m[j]
				}
			}
		}
		matches = append(matches, router.Match[T]{Handler: rt.handler, Params: params})
	}
	return router.Result[T]{Matches: matches}, nil
}

// Compile turns one concrete route into its anchored expression.
//
//	"/entry/:id"  -> ^/entry/(?P<id>[^/]+)/?$
//	"/entry/*"    -> ^/entry(?:/.*)?$
func Compile(path string) (*regexp.Regexp, error) {
	parsed, err := urlpath.ParseRoute(path)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}

	var b strings.Builder
	b.WriteString("(?s)^")
	end := "/?$"
	for _, seg := range parsed.Segments {
		switch seg.Kind {
		case urlpath.KindTail:
			end = "(?:/.*)?$"
			continue
		case urlpath.KindLiteral:
			b.WriteString("/" + regexp.QuoteMeta(seg.Text))
			continue
		}

		n := seg.Name()
		if n == "" {
			b.WriteString("/[^/]+")
			continue
		}
		if !paramName.MatchString(n) {
			return nil, router.NewUnsupportedPathError(name, path, "parameter name "+n+" is not a word")
		}
		token := "[^/]+"
		if seg.Kind == urlpath.KindConstrained {
			token = seg.Pattern.Scoped
		}
		b.WriteString("/(?P<" + n + ">" + token + ")")
	}
	b.WriteString(end)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, errors.Wrapf(router.ErrInvalidPattern, "%s: %s: %v", name, path, err)
	}
	return re, nil
}
