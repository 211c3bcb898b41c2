// Package trierouter matches routes by walking a per-segment tree. It
// accepts every route shape the urlpath package can parse and is the last
// fallback of a smart router.
package trierouter

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

const name = "TrieRouter"

// Router is a trie based router.
type Router[T any] struct {
	root  *node[T]
	order int
}

var _ router.Router[any] = (*Router[any])(nil)

// New creates an empty trie router.
func New[T any]() *Router[T] {
	return &Router[T]{root: newNode[T]()}
}

// Name implements router.Router.
func (r *Router[T]) Name() string {
	return name
}

// Add registers handler for method and path. An optional trailing label
// registers both expansions under one registration index.
func (r *Router[T]) Add(method, path string, handler T) error {
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

	r.order++
	for _, route := range routes {
		r.root.insert(method, route, handler, r.order)
	}
	return nil
}

// Match implements router.Router.
func (r *Router[T]) Match(method, path string) (router.Result[T], error) {
	found := r.root.search(method, path)
	if len(found) == 0 {
		return router.Result[T]{}, nil
	}
	if len(found) > 1 {
		sort.SliceStable(found, func(i, j int) bool {
			return found[i].score < found[j].score
		})
	}

	matches := make([]router.Match[T], len(found))
	for i := range found {
		matches[i] = router.Match[T]{Handler: found[i].handler, Params: found[i].params}
	}
	return router.Result[T]{Matches: matches}, nil
}
