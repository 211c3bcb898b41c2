package linearrouter

import (
	"strings"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

type kind uint8

const (
	kindStatic kind = iota
	kindWildcard
	kindLabel
)

// matchRoute is a route prepared for scanning. Nothing is compiled; the
// route is only classified so that each request takes the cheapest test.
type matchRoute struct {
	kind kind
	path string
	// fragments are the literal runs between wildcards, kindWildcard only.
	fragments []string
	tail      bool
	// segments are walked one by one, kindLabel only.
	segments []urlpath.Segment
}

// newMatchRoute classifies a concrete route. Labels and wildcards in the
// same route are not supported: the scan has no way to bind a label seen
// before a wildcard consumed an unknown number of segments.
func newMatchRoute(route *urlpath.Route) (*matchRoute, error) {
	m := &matchRoute{path: route.Path}
	switch {
	case route.Static():
		m.kind = kindStatic
		m.path = staticPath(route)
	case route.HasWildcard() && route.HasLabel():
		return nil, router.NewUnsupportedPathError(name, route.Path, "labels and wildcards cannot be mixed")
	case route.HasWildcard():
		m.kind = kindWildcard
		m.fragments, m.tail = fragments(route)
	default:
		m.kind = kindLabel
		m.segments = route.Segments
	}
	return m, nil
}

func staticPath(route *urlpath.Route) string {
	var b strings.Builder
	for _, seg := range route.Segments {
		b.WriteByte('/')
		b.WriteString(seg.Text)
	}
	return b.String()
}

// fragments cuts a wildcard route at every '*'.
//
//	"/wild/*/card" -> ["/wild/", "/card"], false
//	"/entry/*"     -> ["/entry"], true
//	"*"            -> [""], true
func fragments(route *urlpath.Route) ([]string, bool) {
	var (
		frags []string
		cur   strings.Builder
	)
	for _, seg := range route.Segments {
		switch seg.Kind {
		case urlpath.KindTail:
			return append(frags, cur.String()), true
		case urlpath.KindLabel:
			cur.WriteByte('/')
			frags = append(frags, cur.String())
			cur.Reset()
		default:
			cur.WriteByte('/')
			cur.WriteString(seg.Text)
		}
	}
	return append(frags, cur.String()), false
}

// match tests path against the route. params is nil unless the route binds
// labels.
func (m *matchRoute) match(path string) (router.Params, bool) {
	switch m.kind {
	case kindStatic:
		if path == m.path {
			return nil, true
		}
		return nil, !strings.HasSuffix(m.path, "/") && path == m.path+"/"
	case kindWildcard:
		return nil, m.matchWildcard(path)
	default:
		return m.matchLabels(path)
	}
}

// matchWildcard checks each fragment at the cursor; a wildcard between two
// fragments consumes exactly one non-empty segment.
func (m *matchRoute) matchWildcard(path string) bool {
	pos := 0
	for i, frag := range m.fragments {
		if i > 0 {
			end := segmentEnd(path, pos)
			if end == pos {
				return false
			}
			pos = end
		}
		if !strings.HasPrefix(path[pos:], frag) {
			return false
		}
		pos += len(frag)
	}
	if m.tail {
		return pos == len(path) || path[pos] == '/'
	}
	return rest(path, pos)
}

// matchLabels walks the route one segment at a time.
func (m *matchRoute) matchLabels(path string) (router.Params, bool) {
	var params router.Params
	pos := 0
	for _, seg := range m.segments {
		if pos >= len(path) || path[pos] != '/' {
			return nil, false
		}
		pos++
		end := segmentEnd(path, pos)
		value := path[pos:end]
		pos = end

		if seg.Kind == urlpath.KindLiteral {
			if value != seg.Text {
				return nil, false
			}
			continue
		}
		if !seg.Pattern.Test(value) {
			return nil, false
		}
		if params == nil {
			params = make(router.Params, len(m.segments))
		}
		params[seg.Pattern.Name] = value
	}
	if !rest(path, pos) {
		return nil, false
	}
	return params, true
}

func segmentEnd(path string, pos int) int {
	if i := strings.IndexByte(path[pos:], '/'); i >= 0 {
		return pos + i
	}
	return len(path)
}

// rest accepts the end of the path or a single trailing slash.
func rest(path string, pos int) bool {
	return pos == len(path) || path[pos:] == "/"
}
