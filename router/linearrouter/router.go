// Package linearrouter matches by scanning the registered routes in order.
// There is no build step, which makes it the cheapest router to set up for
// short-lived route tables. "/book/" matches a route registered as "/book".
package linearrouter

import (
	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

const name = "LinearRouter"

type entry[T any] struct {
	method  string
	handler T
	route   *matchRoute
}

// Router is a linear scan router.
type Router[T any] struct {
	routes []entry[T]
}

var (
	_ router.Router[any]          = (*Router[any])(nil)
	_ router.TrailingSlashLenient = (*Router[any])(nil)
)

// New creates an empty linear router.
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

// Add implements router.Router. Routes mixing labels and wildcards are
// rejected with an *router.UnsupportedPathError.
func (r *Router[T]) Add(method, path string, handler T) error {
	routes, err := prepare(path)
	if err != nil {
		return err
	}
	for _, route := range routes {
		r.routes = append(r.routes, entry[T]{method: method, handler: handler, route: route})
	}
	return nil
}

// Match implements router.Router.
func (r *Router[T]) Match(method, path string) (router.Result[T], error) {
	var matches []router.Match[T]
	for i := range r.routes {
		e := &r.routes[i]
		if !router.MethodMatches(e.method, method) {
			continue
		}
		params, ok := e.route.match(path)
		if !ok {
			continue
		}
		if params == nil {
			params = router.EmptyParams()
		}
		matches = append(matches, router.Match[T]{Handler: e.handler, Params: params})
	}
	return router.Result[T]{Matches: matches}, nil
}

func prepare(path string) ([]*matchRoute, error) {
	paths, err := urlpath.ExpandPath(path)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	routes := make([]*matchRoute, 0, len(paths))
	for _, p := range paths {
		parsed, err := urlpath.ParseRoute(p)
		if err != nil {
			return nil, errors.WithMessage(err, name)
		}
		route, err := newMatchRoute(parsed)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// MatchRoute reports whether path matches the single route routePath, with
// the same rules as a linear router holding only that route.
func MatchRoute(routePath, path string) (router.Params, bool) {
	routes, err := prepare(routePath)
	if err != nil {
		return nil, false
	}
	for _, route := range routes {
		if params, ok := route.match(path); ok {
			if params == nil {
				params = router.EmptyParams()
			}
			return params, true
		}
	}
	return nil, false
}
