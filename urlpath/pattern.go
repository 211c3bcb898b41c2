package urlpath

import (
	"regexp"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// Pattern is a parsed dynamic segment: a label (:name), a constrained label
// (:name{regex}) or the wildcard (*).
type Pattern struct {
	// Key is the raw label text and identifies the pattern inside a route tree.
	Key string
	// Name of the parameter. Empty for the wildcard.
	Name string
	// Source is the constraint as written, empty when unconstrained.
	Source string
	// Scoped is Source rewritten so it can only match inside one segment.
	Scoped string
	// Matcher tests one segment value against ^(?:Scoped)$. Nil when unconstrained.
	Matcher *regexp.Regexp
}

// Wildcard is the pattern returned for a '*' segment.
var Wildcard = &Pattern{Key: "*"}

// IsWildcard reports whether p is the '*' pattern.
func (p *Pattern) IsWildcard() bool {
	return p == Wildcard
}

// Constrained reports whether p carries an inline regex.
func (p *Pattern) Constrained() bool {
	return p.Matcher != nil
}

// Test reports whether a single segment value satisfies the pattern.
// Unconstrained labels accept any non-empty value.
func (p *Pattern) Test(segment string) bool {
	if p.Matcher != nil {
		return p.Matcher.MatchString(segment)
	}
	return segment != ""
}

// patterns caches parsed labels by their raw text, so that the same label
// always yields the same *Pattern and *regexp.Regexp.
var patterns = cache.New(cache.NoExpiration, 0)

var labelPattern = regexp.MustCompile(`^:([^{}]+)(?:\{(.+)\})?$`)

// GetPattern parses a single route segment. It returns nil for a literal
// segment, Wildcard for "*", and a cached *Pattern for labels.
func GetPattern(label string) (*Pattern, error) {
	if label == "*" {
		return Wildcard, nil
	}
	if len(label) < 2 || label[0] != ':' {
		return nil, nil
	}
	if cached, ok := patterns.Get(label); ok {
		return cached.(*Pattern), nil
	}

	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return nil, nil
	}
	p := &Pattern{Key: label, Name: m[1], Source: m[2]}
	if p.Source != "" {
		scoped, err := SegmentScoped(p.Source)
		if err != nil {
			return nil, errors.WithMessagef(err, "label %q", label)
		}
		matcher, err := regexp.Compile("^(?:" + scoped + ")$")
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPattern, "label %q: %v", label, err)
		}
		p.Scoped = scoped
		p.Matcher = matcher
	}

	// Another goroutine may have won the race; keep its value.
	if err := patterns.Add(label, p, cache.NoExpiration); err != nil {
		if cached, ok := patterns.Get(label); ok {
			return cached.(*Pattern), nil
		}
	}
	return p, nil
}

// IsDynamic reports whether a route path contains a label or a wildcard.
func IsDynamic(path string) bool {
	return strings.ContainsAny(path, ":*")
}
