package regexprouter

import (
	"io"
	"regexp"
	"sort"

	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"

	"github.com/zatxm/hroute/router"
)

// ErrInvalidSnapshot is returned for a snapshot that does not describe a
// consistent matcher.
var ErrInvalidSnapshot = errors.New("invalid matcher snapshot")

// Route is one registration of a snapshot.
type Route struct {
	Method string `codec:"method"`
	Path   string `codec:"path"`
}

// Snapshot is a compiled matcher without its handlers. It is produced once,
// stored, and turned into a PreparedRouter that skips the build step.
type Snapshot struct {
	Routes   []Route           `codec:"routes"`
	Matchers []MatcherSnapshot `codec:"matchers"`
}

// MatcherSnapshot is the matcher of one method.
type MatcherSnapshot struct {
	Method    string             `codec:"method"`
	Source    string             `codec:"source"`
	Terminals []TerminalSnapshot `codec:"terminals"`
	Static    []StaticSnapshot   `codec:"static"`
}

// TerminalSnapshot ties the group closing a dynamic leaf to its handlers.
type TerminalSnapshot struct {
	Group    int               `codec:"group"`
	Handlers []HandlerSnapshot `codec:"handlers"`
}

// StaticSnapshot lists the handlers of one static path.
type StaticSnapshot struct {
	Path     string            `codec:"path"`
	Handlers []HandlerSnapshot `codec:"handlers"`
}

// HandlerSnapshot refers to a registration by its index in Snapshot.Routes.
type HandlerSnapshot struct {
	Route   int               `codec:"route"`
	Indexes map[string]int    `codec:"indexes,omitempty"`
	Params  map[string]string `codec:"params,omitempty"`
}

// Snapshot compiles the router, if it has not been, and exports its matchers.
func (r *Router[T]) Snapshot() (*Snapshot, error) {
	r.once.Do(r.build)
	if r.err != nil {
		return nil, r.err
	}

	s := &Snapshot{Routes: make([]Route, len(r.slots))}
	for i, sl := range r.slots {
		s.Routes[i] = Route{Method: sl.method, Path: sl.path}
	}
	methods := make([]string, 0, len(r.matchers))
	for method := range r.matchers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	for _, method := range methods {
		s.Matchers = append(s.Matchers, exportMatcher(method, r.matchers[method]))
	}
	return s, nil
}

// Prepare compiles routes into a snapshot.
func Prepare(routes ...Route) (*Snapshot, error) {
	r := New[struct{}]()
	for _, rt := range routes {
		if err := r.Add(rt.Method, rt.Path, struct{}{}); err != nil {
			return nil, err
		}
	}
	return r.Snapshot()
}

func exportMatcher(method string, m *matcher) MatcherSnapshot {
	ms := MatcherSnapshot{Method: method}
	if m.re != nil {
		ms.Source = m.re.String()
	}
	for _, t := range m.terminals {
		ms.Terminals = append(ms.Terminals, TerminalSnapshot{Group: t.group, Handlers: exportHandlers(t.handlers)})
	}
	paths := make([]string, 0, len(m.static))
	for path := range m.static {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		ms.Static = append(ms.Static, StaticSnapshot{Path: path, Handlers: exportHandlers(m.static[path])})
	}
	return ms
}

func exportHandlers(handlers []boundHandler) []HandlerSnapshot {
	out := make([]HandlerSnapshot, len(handlers))
	for i, h := range handlers {
		out[i] = HandlerSnapshot{Route: h.slot, Indexes: h.indexes, Params: h.params}
	}
	return out
}

// importMatcher rebuilds a matcher, checking every reference it holds.
func importMatcher(ms MatcherSnapshot, routes int) (*matcher, error) {
	m := &matcher{static: make(map[string][]boundHandler, len(ms.Static))}
	groups := 0
	if ms.Source != "" {
		re, err := regexp.Compile(ms.Source)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "method %s: %v", ms.Method, err)
		}
		m.re = re
		groups = re.NumSubexp()
	}

	for _, ts := range ms.Terminals {
		if ts.Group < 1 || ts.Group > groups {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "method %s: group %d out of range", ms.Method, ts.Group)
		}
		handlers, err := importHandlers(ms.Method, ts.Handlers, routes, groups)
		if err != nil {
			return nil, err
		}
		m.terminals = append(m.terminals, terminal{group: ts.Group, handlers: handlers})
	}
	sort.Slice(m.terminals, func(i, j int) bool {
		return m.terminals[i].group < m.terminals[j].group
	})
	for _, ss := range ms.Static {
		handlers, err := importHandlers(ms.Method, ss.Handlers, routes, groups)
		if err != nil {
			return nil, err
		}
		m.static[ss.Path] = handlers
	}
	return m, nil
}

func importHandlers(method string, hs []HandlerSnapshot, routes, groups int) ([]boundHandler, error) {
	out := make([]boundHandler, len(hs))
	for i, h := range hs {
		if h.Route < 0 || h.Route >= routes {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "method %s: route %d out of range", method, h.Route)
		}
		for param, g := range h.Indexes {
			if g < 1 || g > groups {
				return nil, errors.Wrapf(ErrInvalidSnapshot, "method %s: param %q group %d out of range", method, param, g)
			}
		}
		out[i] = boundHandler{slot: h.Route}
		if len(h.Indexes) > 0 {
			out[i].indexes = router.ParamIndexMap(h.Indexes)
		}
		if len(h.Params) > 0 {
			out[i].params = router.Params(h.Params)
		}
	}
	return out, nil
}

// Encode writes the snapshot as msgpack.
func (s *Snapshot) Encode(w io.Writer) error {
	return codec.NewEncoder(w, new(codec.MsgpackHandle)).Encode(s)
}

// DecodeSnapshot reads a snapshot written by Encode.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	s := new(Snapshot)
	if err := codec.NewDecoder(r, new(codec.MsgpackHandle)).Decode(s); err != nil {
		return nil, errors.Wrap(ErrInvalidSnapshot, err.Error())
	}
	return s, nil
}
