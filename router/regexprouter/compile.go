package regexprouter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

// entry is one concrete route: an optional label yields two entries sharing
// the same slot.
type entry struct {
	slot   int
	method string
	route  *urlpath.Route
}

// leaf groups every entry with the same shape. Its handlers are the entries
// whose shape contains it, so a path reaching the leaf runs all of them.
type leaf struct {
	shape   *urlpath.Route
	covered []*entry
	// nodes is the tree path of a dynamic leaf, one node per segment.
	nodes []*treeNode
	group int
}

func (l *leaf) static() bool {
	return l.shape.Static()
}

// staticPath is the only request path a static leaf matches.
func (l *leaf) staticPath() string {
	texts := make([]string, len(l.shape.Segments))
	for i, seg := range l.shape.Segments {
		texts[i] = seg.Text
	}
	return "/" + strings.Join(texts, "/")
}

// treeNode is one segment of the pattern tree the expression is emitted
// from. Children are kept per kind so that emission can order them.
type treeNode struct {
	seg      urlpath.Segment
	leaf     *leaf
	children map[string]*treeNode
	literals []*treeNode
	patterns []*treeNode
	label    *treeNode
	tail     *treeNode
	capture  bool
	group    int
}

func newTreeNode(seg urlpath.Segment) *treeNode {
	return &treeNode{seg: seg, children: make(map[string]*treeNode)}
}

func (n *treeNode) child(seg urlpath.Segment) *treeNode {
	key := seg.Text
	switch seg.Kind {
	case urlpath.KindLabel:
		key = ":"
	case urlpath.KindConstrained:
		key = "{" + seg.Pattern.Scoped + "}"
	case urlpath.KindTail:
		key = "*"
	}
	if c, ok := n.children[key]; ok {
		return c
	}

	c := newTreeNode(seg)
	n.children[key] = c
	switch seg.Kind {
	case urlpath.KindLiteral:
		n.literals = append(n.literals, c)
	case urlpath.KindConstrained:
		n.patterns = append(n.patterns, c)
	case urlpath.KindLabel:
		n.label = c
	case urlpath.KindTail:
		n.tail = c
	}
	return c
}

// compile builds the matcher for the entries of one method, given in
// registration order.
func compile(entries []*entry) (*matcher, error) {
	// pass 1: shapes, containment and the pattern tree
	var leaves []*leaf
	shapes := make(map[string]int, len(entries))
	owner := make([]int, len(entries))
	for i, e := range entries {
		key := shapeKey(e.route)
		idx, ok := shapes[key]
		if !ok {
			idx = len(leaves)
			shapes[key] = idx
			leaves = append(leaves, &leaf{shape: e.route})
		}
		owner[i] = idx
	}

	relations := make([][]relation, len(leaves))
	for i := range leaves {
		relations[i] = make([]relation, len(leaves))
	}
	for i := range leaves {
		for j := i + 1; j < len(leaves); j++ {
			rel := relate(leaves[i].shape.Segments, leaves[j].shape.Segments)
			if rel == relOverlap {
				return nil, router.NewUnsupportedPathError(name, leaves[j].shape.Path,
					fmt.Sprintf("ambiguous with %q", leaves[i].shape.Path))
			}
			relations[i][j] = rel
			relations[j][i] = rel.flip()
		}
	}

	root := newTreeNode(urlpath.Segment{})
	for i, l := range leaves {
		for k, e := range entries {
			if relations[i][owner[k]].covered() {
				l.covered = append(l.covered, e)
			}
		}
		if l.static() {
			continue
		}

		current := root
		l.nodes = make([]*treeNode, len(l.shape.Segments))
		for j, seg := range l.shape.Segments {
			current = current.child(seg)
			l.nodes[j] = current
		}
		current.leaf = l
		for _, e := range l.covered {
			for j, seg := range e.route.Segments {
				if seg.Name() != "" {
					l.nodes[j].capture = true
				}
			}
		}
	}

	// pass 2: emit the expression and resolve group numbers
	m := &matcher{static: make(map[string][]boundHandler)}
	em := &emitter{}
	if len(root.children) > 0 {
		em.b.WriteString("(?s)^(?:")
		em.continuation(root)
		em.b.WriteString(")$")
		re, err := regexp.Compile(em.b.String())
		if err != nil {
			return nil, errors.Wrapf(router.ErrInvalidPattern, "%s: %v", name, err)
		}
		m.re = re
	}

	for _, l := range leaves {
		handlers := make([]boundHandler, len(l.covered))
		for i, e := range l.covered {
			handlers[i] = bind(l, e)
		}
		if l.static() {
			m.static[l.staticPath()] = handlers
			continue
		}
		m.terminals = append(m.terminals, terminal{group: l.group, handlers: handlers})
	}
	sort.Slice(m.terminals, func(i, j int) bool {
		return m.terminals[i].group < m.terminals[j].group
	})
	return m, nil
}

// bind resolves where every parameter of e lives when a path ends in l.
func bind(l *leaf, e *entry) boundHandler {
	bh := boundHandler{slot: e.slot}
	if !e.route.HasLabel() {
		return bh
	}
	if l.static() {
		bh.params = make(router.Params, len(e.route.Names))
		for j, seg := range e.route.Segments {
			if name := seg.Name(); name != "" {
				bh.params[name] = l.shape.Segments[j].Text
			}
		}
		return bh
	}
	bh.indexes = make(router.ParamIndexMap, len(e.route.Names))
	for j, seg := range e.route.Segments {
		if name := seg.Name(); name != "" {
			bh.indexes[name] = l.nodes[j].group
		}
	}
	return bh
}

// emitter writes the expression for a pattern tree, numbering capture
// groups in the order their parentheses open.
type emitter struct {
	b      strings.Builder
	groups int
}

func (em *emitter) group() int {
	em.groups++
	return em.groups
}

// continuation emits what may follow n: the end of a leaf first, then
// literals (longest first), constrained labels, the plain label and the
// trailing wildcard.
func (em *emitter) continuation(n *treeNode) {
	sort.SliceStable(n.literals, func(i, j int) bool {
		a, b := n.literals[i].seg.Text, n.literals[j].seg.Text
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	alternatives := make([]*treeNode, 0, len(n.children))
	alternatives = append(alternatives, n.literals...)
	alternatives = append(alternatives, n.patterns...)
	if n.label != nil {
		alternatives = append(alternatives, n.label)
	}
	if n.tail != nil {
		alternatives = append(alternatives, n.tail)
	}

	count := len(alternatives)
	if n.leaf != nil {
		count++
	}
	if count > 1 {
		em.b.WriteString("(?:")
	}
	first := true
	if n.leaf != nil {
		n.leaf.group = em.group()
		em.b.WriteString("()")
		first = false
	}
	for _, c := range alternatives {
		if !first {
			em.b.WriteByte('|')
		}
		em.node(c)
		first = false
	}
	if count > 1 {
		em.b.WriteByte(')')
	}
}

func (em *emitter) node(n *treeNode) {
	if n.seg.Kind == urlpath.KindTail {
		em.b.WriteString("(?:/.*)?")
		em.continuation(n)
		return
	}

	em.b.WriteByte('/')
	var token string
	switch n.seg.Kind {
	case urlpath.KindLiteral:
		token = regexp.QuoteMeta(n.seg.Text)
	case urlpath.KindLabel:
		token = "[^/]+"
	case urlpath.KindConstrained:
		token = n.seg.Pattern.Scoped
	}
	switch {
	case n.capture:
		n.group = em.group()
		em.b.WriteString("(" + token + ")")
	case n.seg.Kind == urlpath.KindConstrained:
		em.b.WriteString("(?:" + token + ")")
	default:
		em.b.WriteString(token)
	}
	em.continuation(n)
}
