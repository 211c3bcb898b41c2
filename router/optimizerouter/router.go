// Package optimizerouter puts a hash lookup for static routes in front of
// any router. Only routes with a label or a wildcard reach the inner router,
// which keeps its tree or expression small.
package optimizerouter

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

const name = "OptimizeRouter"

// Router merges static hits with the inner router's matches, restoring
// registration order.
type Router[T any] struct {
	inner    router.Router[int]
	handlers []T
	// static maps method -> path -> registration indexes.
	static  map[string]map[string][]int
	lenient bool
}

var _ router.Router[any] = (*Router[any])(nil)

// New wraps inner, which must be empty. The inner router receives
// registration indexes as handlers.
func New[T any](inner router.Router[int]) *Router[T] {
	r := &Router[T]{
		inner:  inner,
		static: make(map[string]map[string][]int),
	}
	if l, ok := inner.(router.TrailingSlashLenient); ok {
		r.lenient = l.LenientTrailingSlash()
	}
	return r
}

// Name returns "OptimizeRouter + <inner name>".
func (r *Router[T]) Name() string {
	return name + " + " + r.inner.Name()
}

// LenientTrailingSlash implements router.TrailingSlashLenient by reporting
// the inner router's behavior.
func (r *Router[T]) LenientTrailingSlash() bool {
	return r.lenient
}

// Add implements router.Router.
func (r *Router[T]) Add(method, path string, handler T) error {
	static, ok, err := staticPath(path)
	if err != nil {
		return errors.WithMessage(err, name)
	}
	if ok {
		r.handlers = append(r.handlers, handler)
		paths := r.static[method]
		if paths == nil {
			paths = make(map[string][]int)
			r.static[method] = paths
		}
		paths[static] = append(paths[static], len(r.handlers)-1)
		return nil
	}

	if err := r.inner.Add(method, path, len(r.handlers)); err != nil {
		return err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

// staticPath returns the request path a route without labels or wildcards
// matches.
func staticPath(path string) (string, bool, error) {
	if urlpath.IsDynamic(path) {
		return "", false, nil
	}
	route, err := urlpath.ParseRoute(path)
	if err != nil {
		return "", false, err
	}
	if !route.Static() {
		return "", false, nil
	}
	var b strings.Builder
	for _, seg := range route.Segments {
		b.WriteByte('/')
		b.WriteString(seg.Text)
	}
	return b.String(), true, nil
}

type indexed struct {
	index int
	match router.Match[int]
}

// Match implements router.Router.
func (r *Router[T]) Match(method, path string) (router.Result[T], error) {
	res, err := r.inner.Match(method, path)
	if err != nil {
		return router.Result[T]{}, err
	}

	var hits []int
	hits = r.appendStatic(hits, method, path)
	if r.lenient && len(path) > 1 && strings.HasSuffix(path, "/") {
		hits = r.appendStatic(hits, method, path[:len(path)-1])
	}
	if len(hits) == 0 {
		return r.translate(res), nil
	}

	merged := make([]indexed, 0, len(res.Matches)+len(hits))
	for _, m := range res.Matches {
		merged = append(merged, indexed{index: m.Handler, match: m})
	}
	for _, idx := range hits {
		merged = append(merged, indexed{index: idx, match: router.Match[int]{Handler: idx, Params: router.EmptyParams()}})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].index < merged[j].index
	})

	matches := make([]router.Match[T], len(merged))
	for i, m := range merged {
		matches[i] = r.handlerOf(m.match)
	}
	return router.Result[T]{Matches: matches, Stash: res.Stash}, nil
}

func (r *Router[T]) appendStatic(hits []int, method, path string) []int {
	hits = append(hits, r.static[method][path]...)
	if method != router.MethodAll {
		hits = append(hits, r.static[router.MethodAll][path]...)
	}
	return hits
}

func (r *Router[T]) translate(res router.Result[int]) router.Result[T] {
	if res.Empty() {
		return router.Result[T]{}
	}
	matches := make([]router.Match[T], len(res.Matches))
	for i, m := range res.Matches {
		matches[i] = r.handlerOf(m)
	}
	return router.Result[T]{Matches: matches, Stash: res.Stash}
}

func (r *Router[T]) handlerOf(m router.Match[int]) router.Match[T] {
	return router.Match[T]{Handler: r.handlers[m.Handler], Params: m.Params, Indexes: m.Indexes}
}
