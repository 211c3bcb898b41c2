package regexprouter

import (
	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
)

const preparedName = "PreparedRegExpRouter"

// PreparedRouter serves a Snapshot. Add does not register new routes; it
// binds a handler to the next unbound registration with the same method and
// path. Registrations left unbound never match.
type PreparedRouter[T any] struct {
	routes   []Route
	handlers []T
	bound    []bool
	pending  map[Route][]int
	matchers map[string]*matcher
}

var _ router.Router[any] = (*PreparedRouter[any])(nil)

// NewPrepared creates a router from a snapshot.
func NewPrepared[T any](s *Snapshot) (*PreparedRouter[T], error) {
	r := &PreparedRouter[T]{
		routes:   s.Routes,
		handlers: make([]T, len(s.Routes)),
		bound:    make([]bool, len(s.Routes)),
		pending:  make(map[Route][]int, len(s.Routes)),
		matchers: make(map[string]*matcher, len(s.Matchers)),
	}
	for i, rt := range s.Routes {
		r.pending[rt] = append(r.pending[rt], i)
	}
	for _, ms := range s.Matchers {
		m, err := importMatcher(ms, len(s.Routes))
		if err != nil {
			return nil, err
		}
		r.matchers[ms.Method] = m
	}
	return r, nil
}

// Name implements router.Router.
func (r *PreparedRouter[T]) Name() string {
	return preparedName
}

// Add implements router.Router.
func (r *PreparedRouter[T]) Add(method, path string, handler T) error {
	key := Route{Method: method, Path: path}
	slots := r.pending[key]
	if len(slots) == 0 {
		return errors.Wrapf(router.ErrPathNotPrepared, "%s: %s %s", preparedName, method, path)
	}
	r.handlers[slots[0]] = handler
	r.bound[slots[0]] = true
	r.pending[key] = slots[1:]
	return nil
}

// Match implements router.Router.
func (r *PreparedRouter[T]) Match(method, path string) (router.Result[T], error) {
	m := r.matchers[method]
	if m == nil {
		m = r.matchers[router.MethodAll]
	}
	if m == nil {
		return router.Result[T]{}, nil
	}
	return match(m, path, r.lookup), nil
}

func (r *PreparedRouter[T]) lookup(slot int) (T, bool) {
	return r.handlers[slot], r.bound[slot]
}
