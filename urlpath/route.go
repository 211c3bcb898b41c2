package urlpath

import (
	"github.com/pkg/errors"
)

// Kind classifies one route segment.
type Kind uint8

const (
	// KindLiteral matches its text exactly.
	KindLiteral Kind = iota
	// KindLabel matches any non-empty segment (:name, or a mid-path *).
	KindLabel
	// KindConstrained matches a segment accepted by the label's regex.
	KindConstrained
	// KindTail is a trailing * and matches zero or more remaining segments.
	KindTail
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindLabel:
		return "label"
	case KindConstrained:
		return "constrained"
	case KindTail:
		return "tail"
	default:
		return "unknown"
	}
}

// Segment is one parsed piece of a route.
type Segment struct {
	Text    string
	Kind    Kind
	Pattern *Pattern
}

// Name returns the parameter bound by the segment, if any.
func (s Segment) Name() string {
	if s.Pattern == nil {
		return ""
	}
	return s.Pattern.Name
}

// Route is a concrete (already expanded) route path split into segments.
type Route struct {
	Path     string
	Segments []Segment
	// Names lists the parameters in path order.
	Names []string
}

// Static reports whether every segment is a literal.
func (r *Route) Static() bool {
	for _, s := range r.Segments {
		if s.Kind != KindLiteral {
			return false
		}
	}
	return true
}

// HasTail reports whether the route ends with a trailing wildcard.
func (r *Route) HasTail() bool {
	n := len(r.Segments)
	return n > 0 && r.Segments[n-1].Kind == KindTail
}

// HasWildcard reports whether any segment is a '*'.
func (r *Route) HasWildcard() bool {
	for _, s := range r.Segments {
		if s.Pattern != nil && s.Pattern.IsWildcard() {
			return true
		}
	}
	return false
}

// HasLabel reports whether any segment binds a named parameter.
func (r *Route) HasLabel() bool {
	return len(r.Names) > 0
}

// ParseRoute tokenizes a concrete route path. Optional segments must have
// been expanded before (see ExpandPath). A route naming the same parameter
// twice is rejected.
func ParseRoute(path string) (*Route, error) {
	parts := SplitRoutingPath(path)
	r := &Route{Path: path, Segments: make([]Segment, len(parts))}
	seen := make(map[string]struct{}, len(parts))

	for i, part := range parts {
		if isOptional(part) {
			return nil, errors.Wrapf(ErrOptionalParameter, "path %q", path)
		}
		p, err := GetPattern(part)
		if err != nil {
			return nil, errors.WithMessagef(err, "path %q", path)
		}

		seg := Segment{Text: part, Pattern: p}
		switch {
		case p == nil:
			seg.Kind = KindLiteral
		case p.IsWildcard() && i == len(parts)-1:
			seg.Kind = KindTail
		case p.IsWildcard():
			seg.Kind = KindLabel
		case p.Constrained():
			seg.Kind = KindConstrained
		default:
			seg.Kind = KindLabel
		}
		r.Segments[i] = seg

		if name := seg.Name(); name != "" {
			if _, dup := seen[name]; dup {
				return nil, errors.Wrapf(ErrDuplicateParam, "%q in path %q", name, path)
			}
			seen[name] = struct{}{}
			r.Names = append(r.Names, name)
		}
	}
	return r, nil
}
