// Package smartrouter picks, on the first match, the first candidate router
// able to represent every registered route and delegates to it from then
// on.
package smartrouter

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

const name = "SmartRouter"

type route[T any] struct {
	method  string
	path    string
	handler T
}

// Router buffers routes until the first Match. The candidates are tried in
// the order given, so list the most specialized first and a trie router
// last.
type Router[T any] struct {
	candidates []router.Router[T]
	routes     []route[T]

	once   sync.Once
	active router.Router[T]
	err    error
}

var _ router.Router[any] = (*Router[any])(nil)

// New creates a smart router over candidates. Each candidate must be empty.
func New[T any](candidates ...router.Router[T]) *Router[T] {
	return &Router[T]{candidates: candidates}
}

// Name returns "SmartRouter" until a candidate is selected, then
// "SmartRouter + <candidate name>".
func (r *Router[T]) Name() string {
	if r.active == nil {
		return name
	}
	return name + " + " + r.active.Name()
}

// Active returns the selected router, nil before the first Match.
func (r *Router[T]) Active() router.Router[T] {
	return r.active
}

// Add implements router.Router. Routes are validated right away so that
// malformed paths fail here rather than on the first request.
func (r *Router[T]) Add(method, path string, handler T) error {
	if r.active != nil || r.err != nil {
		return errors.Wrapf(router.ErrMatcherAlreadyBuilt, "%s: %s %s", name, method, path)
	}
	paths, err := urlpath.ExpandPath(path)
	if err != nil {
		return errors.WithMessage(err, name)
	}
	for _, p := range paths {
		if _, err := urlpath.ParseRoute(p); err != nil {
			return errors.WithMessage(err, name)
		}
	}
	r.routes = append(r.routes, route[T]{method: method, path: path, handler: handler})
	return nil
}

// Match implements router.Router.
func (r *Router[T]) Match(method, path string) (router.Result[T], error) {
	var (
		res   router.Result[T]
		first bool
	)
	r.once.Do(func() {
		first = true
		res, r.err = r.resolve(method, path)
	})
	if first || r.err != nil {
		return res, r.err
	}
	return r.active.Match(method, path)
}

// resolve replays the buffered routes into each candidate and keeps the
// first one that neither Add nor Match reject as unsupported.
func (r *Router[T]) resolve(method, path string) (router.Result[T], error) {
	defer func() {
		r.candidates = nil
		r.routes = nil
	}()

	for _, candidate := range r.candidates {
		res, err := r.try(candidate, method, path)
		if err == nil {
			r.active = candidate
			router.Log.Debug("smart router selected candidate",
				zap.String("router", candidate.Name()),
				zap.Int("routes", len(r.routes)))
			return res, nil
		}
		if !router.IsUnsupportedPath(err) {
			return router.Result[T]{}, err
		}
		router.Log.Debug("smart router skipped candidate",
			zap.String("router", candidate.Name()), zap.Error(err))
	}
	return router.Result[T]{}, errors.Wrapf(router.ErrNoRouter, "%s: %d candidates", name, len(r.candidates))
}

func (r *Router[T]) try(candidate router.Router[T], method, path string) (router.Result[T], error) {
	for _, rt := range r.routes {
		if err := candidate.Add(rt.method, rt.path, rt.handler); err != nil {
			return router.Result[T]{}, err
		}
	}
	return candidate.Match(method, path)
}
