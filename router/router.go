// Package router defines the contract shared by every route-matching
// strategy: a Router registers (method, path, handler) triples and matches a
// request (method, path) to the ordered list of handlers that apply to it.
//
// Routers are built by one goroutine and then read by many. Add must not be
// called concurrently with Match.
package router

// MethodAll registers a route for every method.
const MethodAll = "ALL"

// Router maps a method and a path to every registered handler that applies,
// in registration order.
type Router[T any] interface {
	// Name identifies the strategy, e.g. "TrieRouter".
	Name() string
	// Add registers handler for method and path.
	Add(method, path string, handler T) error
	// Match returns the handlers for method and path. No match is an empty
	// Result and a nil error.
	Match(method, path string) (Result[T], error)
}

// TrailingSlashLenient is implemented by routers that let "/book/" match a
// route registered as "/book".
type TrailingSlashLenient interface {
	LenientTrailingSlash() bool
}

// Params maps parameter names to their values.
type Params map[string]string

// ParamIndexMap maps parameter names to positions in Result.Stash.
type ParamIndexMap map[string]int

// emptyParams is shared by every match without parameters; never mutate it.
var emptyParams = Params{}

// EmptyParams returns a shared, read-only empty Params.
func EmptyParams() Params {
	return emptyParams
}

// Match is one matched handler together with its parameters. Exactly one of
// Params or Indexes is meaningful.
type Match[T any] struct {
	Handler T
	Params  Params
	Indexes ParamIndexMap
}

// Result is the ordered list of matches for one request. When one compiled
// expression serves many handlers the values live once in Stash and every
// Match refers to them through Indexes.
type Result[T any] struct {
	Matches []Match[T]
	Stash   []string
}

// Len returns the number of matched handlers.
func (r Result[T]) Len() int {
	return len(r.Matches)
}

// Empty reports whether nothing matched.
func (r Result[T]) Empty() bool {
	return len(r.Matches) == 0
}

// Handlers returns the matched handlers in order.
func (r Result[T]) Handlers() []T {
	handlers := make([]T, len(r.Matches))
	for i := range r.Matches {
		handlers[i] = r.Matches[i].Handler
	}
	return handlers
}

// Param returns the value of name for the i-th match.
func (r Result[T]) Param(i int, name string) (string, bool) {
	m := &r.Matches[i]
	if m.Indexes != nil {
		idx, ok := m.Indexes[name]
		if !ok || idx >= len(r.Stash) {
			return "", false
		}
		return r.Stash[idx], true
	}
	v, ok := m.Params[name]
	return v, ok
}

// Params resolves every parameter of the i-th match.
func (r Result[T]) Params(i int) Params {
	m := &r.Matches[i]
	if m.Indexes == nil {
		if m.Params == nil {
			return emptyParams
		}
		return m.Params
	}
	params := make(Params, len(m.Indexes))
	for name, idx := range m.Indexes {
		if idx < len(r.Stash) {
			params[name] = r.Stash[idx]
		}
	}
	return params
}

// MethodMatches reports whether a route registered for routeMethod applies
// to a request with method.
func MethodMatches(routeMethod, method string) bool {
	return routeMethod == method || routeMethod == MethodAll
}
