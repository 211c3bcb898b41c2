package regexprouter

import (
	"strings"

	"github.com/zatxm/hroute/urlpath"
)

// relation describes how the set of paths matched by one route shape
// relates to the set matched by another.
type relation uint8

const (
	relEqual relation = iota
	relSubset
	relSuperset
	relDisjoint
	// relOverlap means both shapes match some path but neither contains the
	// other. One expression cannot report both, so the router refuses it.
	relOverlap
)

func (r relation) String() string {
	switch r {
	case relEqual:
		return "equal"
	case relSubset:
		return "subset"
	case relSuperset:
		return "superset"
	case relDisjoint:
		return "disjoint"
	default:
		return "overlap"
	}
}

func (r relation) flip() relation {
	switch r {
	case relSubset:
		return relSuperset
	case relSuperset:
		return relSubset
	default:
		return r
	}
}

// covered reports whether a shape in relation r to another is contained by it.
func (r relation) covered() bool {
	return r == relEqual || r == relSubset
}

// combine folds the relation of one more position into an accumulated one.
func combine(acc, next relation) relation {
	switch {
	case acc == relDisjoint || next == relDisjoint:
		return relDisjoint
	case acc == relEqual:
		return next
	case next == relEqual || next == acc:
		return acc
	default:
		return relOverlap
	}
}

// shapeKey identifies the language of a route: two routes with the same key
// match exactly the same paths, whatever their parameter names.
func shapeKey(route *urlpath.Route) string {
	var b strings.Builder
	for _, seg := range route.Segments {
		b.WriteByte('/')
		switch seg.Kind {
		case urlpath.KindLiteral:
			b.WriteString("=" + seg.Text)
		case urlpath.KindLabel:
			b.WriteString(":")
		case urlpath.KindConstrained:
			b.WriteString("{" + seg.Pattern.Scoped + "}")
		case urlpath.KindTail:
			b.WriteString("*")
		}
	}
	return b.String()
}

// relate compares the languages of two routes segment by segment.
func relate(a, b []urlpath.Segment) relation {
	acc := relEqual
	for i := 0; ; i++ {
		aEnd, bEnd := i == len(a), i == len(b)
		switch {
		case aEnd && bEnd:
			return acc
		case aEnd:
			if b[i].Kind == urlpath.KindTail {
				return combine(acc, relSubset)
			}
			return relDisjoint
		case bEnd:
			if a[i].Kind == urlpath.KindTail {
				return combine(acc, relSuperset)
			}
			return relDisjoint
		}

		x, y := a[i], b[i]
		switch {
		case x.Kind == urlpath.KindTail && y.Kind == urlpath.KindTail:
			return acc
		case x.Kind == urlpath.KindTail:
			return combine(acc, relSuperset)
		case y.Kind == urlpath.KindTail:
			return combine(acc, relSubset)
		}

		acc = combine(acc, relateSegment(x, y))
		if acc == relDisjoint {
			return acc
		}
	}
}

// relateSegment compares two single-segment tokens.
func relateSegment(x, y urlpath.Segment) relation {
	if x.Kind > y.Kind {
		return relateSegment(y, x).flip()
	}
	switch x.Kind {
	case urlpath.KindLiteral:
		switch y.Kind {
		case urlpath.KindLiteral:
			if x.Text == y.Text {
				return relEqual
			}
			return relDisjoint
		default:
			if y.Pattern.Test(x.Text) {
				return relSubset
			}
			return relDisjoint
		}
	case urlpath.KindLabel:
		// y is a label as well; constrained sorts after label.
		if y.Kind == urlpath.KindLabel {
			return relEqual
		}
		if y.Pattern.Test("") {
			return relOverlap
		}
		return relSuperset
	default:
		if x.Pattern.Scoped == y.Pattern.Scoped {
			return relEqual
		}
		return relOverlap
	}
}
