// Package regexprouter compiles every route of a method into one regular
// expression. A request costs a map lookup for static paths and a single
// expression match otherwise.
//
// Routes whose shapes partially overlap (each matches a path the other does
// not, and some path matches both) cannot be told apart by one expression;
// the router reports them as unsupported when it builds its matcher.
package regexprouter

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

const name = "RegExpRouter"

type state uint8

const (
	stateBuilding state = iota
	stateCompiled
)

// slot is one registration. Every concrete path of the registration points
// back to it, so the slot index is the registration order.
type slot[T any] struct {
	method  string
	path    string
	handler T
}

// Router builds its matchers on the first Match. Routes cannot be added
// after that.
type Router[T any] struct {
	slots   []slot[T]
	entries []*entry

	once     sync.Once
	state    state
	matchers map[string]*matcher
	err      error
}

var _ router.Router[any] = (*Router[any])(nil)

// New creates an empty router.
func New[T any]() *Router[T] {
	return &Router[T]{}
}

// Name implements router.Router.
func (r *Router[T]) Name() string {
	return name
}

// Add implements router.Router.
func (r *Router[T]) Add(method, path string, handler T) error {
	if r.state == stateCompiled {
		return errors.Wrapf(router.ErrMatcherAlreadyBuilt, "%s: %s %s", name, method, path)
	}
	paths, err := urlpath.ExpandPath(path)
	if err != nil {
		return errors.WithMessage(err, name)
	}
	routes := make([]*urlpath.Route, 0, len(paths))
	for _, p := range paths {
		route, err := urlpath.ParseRoute(p)
		if err != nil {
			return errors.WithMessage(err, name)
		}
		routes = append(routes, route)
	}

	idx := len(r.slots)
	r.slots = append(r.slots, slot[T]{method: method, path: path, handler: handler})
	for _, route := range routes {
		r.entries = append(r.entries, &entry{slot: idx, method: method, route: route})
	}
	return nil
}

// Match implements router.Router. The first call compiles the matchers and
// fails with an *router.UnsupportedPathError when the routes cannot share
// one expression.
func (r *Router[T]) Match(method, path string) (router.Result[T], error) {
	r.once.Do(r.build)
	if r.err != nil {
		return router.Result[T]{}, r.err
	}
	m := r.matchers[method]
	if m == nil {
		m = r.matchers[router.MethodAll]
	}
	if m == nil {
		return router.Result[T]{}, nil
	}
	return match(m, path, r.lookup), nil
}

func (r *Router[T]) lookup(slot int) (T, bool) {
	return r.slots[slot].handler, true
}

func (r *Router[T]) build() {
	r.state = stateCompiled
	r.matchers, r.err = buildMatchers(r.entries)
}

// buildMatchers compiles one matcher per registered method. Methods without
// routes of their own fall back to the ALL matcher at match time.
func buildMatchers(entries []*entry) (map[string]*matcher, error) {
	methods := methodsOf(entries)
	matchers := make(map[string]*matcher, len(methods))
	for _, method := range methods {
		var own []*entry
		for _, e := range entries {
			if router.MethodMatches(e.method, method) {
				own = append(own, e)
			}
		}
		m, err := compile(own)
		if err != nil {
			router.Log.Debug("regexp matcher rejected routes",
				zap.String("method", method), zap.Error(err))
			return nil, err
		}
		matchers[method] = m
		if m.re != nil {
			router.Log.Debug("regexp matcher compiled",
				zap.String("method", method),
				zap.Int("routes", len(own)),
				zap.Int("static", len(m.static)),
				zap.Int("groups", m.re.NumSubexp()))
		}
	}
	return matchers, nil
}

// methodsOf returns the distinct methods in a stable order.
func methodsOf(entries []*entry) []string {
	seen := make(map[string]struct{})
	var methods []string
	for _, e := range entries {
		if _, ok := seen[e.method]; ok {
			continue
		}
		seen[e.method] = struct{}{}
		methods = append(methods, e.method)
	}
	sort.Strings(methods)
	return methods
}
