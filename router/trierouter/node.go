package trierouter

import (
	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

// wildcardKey is the child key of a '*' segment.
const wildcardKey = "*"

// handlerSet is one registration stored on the node where its route ends.
type handlerSet[T any] struct {
	method  string
	handler T
	keys    []string
	score   int
}

// node is one route segment. Children are keyed by literal text or by the
// raw label of a pattern; patterns keeps the dynamic children in insertion
// order.
type node[T any] struct {
	methods  []handlerSet[T]
	children map[string]*node[T]
	patterns []*urlpath.Pattern
}

func newNode[T any]() *node[T] {
	return &node[T]{children: make(map[string]*node[T])}
}

// insert walks or creates one child per segment and records the handler on
// the last one.
func (n *node[T]) insert(method string, route *urlpath.Route, handler T, score int) {
	current := n
	for _, seg := range route.Segments {
		key := seg.Text
		if seg.Pattern != nil {
			key = seg.Pattern.Key
		}
		child, ok := current.children[key]
		if !ok {
			child = newNode[T]()
			current.children[key] = child
			if seg.Pattern != nil {
				current.patterns = append(current.patterns, seg.Pattern)
			}
		}
		current = child
	}
	current.methods = append(current.methods, handlerSet[T]{
		method:  method,
		handler: handler,
		keys:    route.Names,
		score:   score,
	})
}

// state is a node reached by the search together with the parameters bound
// on the way there.
type state[T any] struct {
	node   *node[T]
	params router.Params
}

type found[T any] struct {
	score   int
	handler T
	params  router.Params
}

// search keeps every node that can still match the path active, so a path
// that satisfies a wildcard middleware and a terminal route yields both.
func (n *node[T]) search(method, path string) []found[T] {
	var matches []found[T]
	collect := func(target *node[T], params router.Params) {
		if target == nil {
			return
		}
		for i := range target.methods {
			hs := &target.methods[i]
			if !router.MethodMatches(hs.method, method) {
				continue
			}
			matches = append(matches, found[T]{
				score:   hs.score,
				handler: hs.handler,
				params:  restrict(params, hs.keys),
			})
		}
	}

	parts := urlpath.SplitPath(path)
	current := []state[T]{{node: n}}
	for i, part := range parts {
		last := i == len(parts)-1
		next := make([]state[T], 0, len(current))

		for _, st := range current {
			if child := st.node.children[part]; child != nil {
				if last {
					// "/hello/*" matches "/hello"
					collect(child.children[wildcardKey], st.params)
					collect(child, st.params)
				} else {
					next = append(next, state[T]{node: child, params: st.params})
				}
			}

			for _, p := range st.node.patterns {
				child := st.node.children[p.Key]
				if p.IsWildcard() {
					collect(child, st.params)
					switch {
					case last && part != "":
						// "/a/*/*" matches "/a/b"
						collect(child.children[wildcardKey], st.params)
					case part != "":
						next = append(next, state[T]{node: child, params: st.params})
					}
					continue
				}
				if !p.Test(part) {
					continue
				}
				params := bind(st.params, p.Name, part)
				if last {
					collect(child, params)
					collect(child.children[wildcardKey], params)
				} else {
					next = append(next, state[T]{node: child, params: params})
				}
			}
		}
		current = next
	}
	return matches
}

// bind returns a copy of params with name set to value.
func bind(params router.Params, name, value string) router.Params {
	out := make(router.Params, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out[name] = value
	return out
}

// restrict keeps only the parameters a handler's own route declares.
func restrict(params router.Params, keys []string) router.Params {
	if len(keys) == 0 || len(params) == 0 {
		return router.EmptyParams()
	}
	out := make(router.Params, len(keys))
	for _, k := range keys {
		if v, ok := params[k]; ok {
			out[k] = v
		}
	}
	return out
}
