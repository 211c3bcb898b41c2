package regexprouter

import (
	"regexp"

	"github.com/zatxm/hroute/router"
)

// boundHandler is one handler of a leaf. Dynamic leaves locate parameters
// through capture groups, static leaves know their values up front.
type boundHandler struct {
	slot    int
	indexes router.ParamIndexMap
	params  router.Params
}

// terminal ties the empty group closing a leaf to the leaf's handlers.
type terminal struct {
	group    int
	handlers []boundHandler
}

// matcher serves one method: static paths from a map, everything else from
// a single expression.
type matcher struct {
	re        *regexp.Regexp
	terminals []terminal
	static    map[string][]boundHandler
}

var emptyIndexes = router.ParamIndexMap{}

// match resolves path. lookup returns the handler stored in a slot, or false
// when the slot has no handler bound yet.
func match[T any](m *matcher, path string, lookup func(slot int) (T, bool)) router.Result[T] {
	if handlers, ok := m.static[path]; ok {
		matches := make([]router.Match[T], 0, len(handlers))
		for i := range handlers {
			h, ok := lookup(handlers[i].slot)
			if !ok {
				continue
			}
			params := handlers[i].params
			if params == nil {
				params = router.EmptyParams()
			}
			matches = append(matches, router.Match[T]{Handler: h, Params: params})
		}
		return router.Result[T]{Matches: matches}
	}
	if m.re == nil {
		return router.Result[T]{}
	}

	loc := m.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return router.Result[T]{}
	}
	var t *terminal
	for i := range m.terminals {
		if loc[2*m.terminals[i].group] >= 0 {
			t = &m.terminals[i]
			break
		}
	}
	if t == nil {
		return router.Result[T]{}
	}

	stash := make([]string, len(loc)/2)
	for g := range stash {
		if loc[2*g] >= 0 {
			stash[g] = path[loc[2*g]:loc[2*g+1]]
		}
	}
	matches := make([]router.Match[T], 0, len(t.handlers))
	for i := range t.handlers {
		h, ok := lookup(t.handlers[i].slot)
		if !ok {
			continue
		}
		indexes := t.handlers[i].indexes
		if indexes == nil {
			indexes = emptyIndexes
		}
		matches = append(matches, router.Match[T]{Handler: h, Indexes: indexes})
	}
	return router.Result[T]{Matches: matches, Stash: stash}
}
