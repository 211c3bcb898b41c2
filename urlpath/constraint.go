package urlpath

import (
	"regexp/syntax"
	"unicode"

	"github.com/pkg/errors"
)

// SegmentScoped rewrites the constraint src so that it can only match text
// inside one path segment: every construct that could consume '/' is
// narrowed, capture groups become non-capturing and anchors are dropped
// (the caller anchors the result to the segment).
func SegmentScoped(src string) (string, error) {
	re, err := syntax.Parse(src, syntax.Perl)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidPattern, "constraint %q: %v", src, err)
	}
	return scope(re).String(), nil
}

func scope(re *syntax.Regexp) *syntax.Regexp {
	switch re.Op {
	case syntax.OpCapture:
		return scope(re.Sub[0])
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText:
		return &syntax.Regexp{Op: syntax.OpEmptyMatch}
	case syntax.OpAnyChar:
		return &syntax.Regexp{Op: syntax.OpCharClass, Rune: []rune{0, separator - 1, separator + 1, unicode.MaxRune}}
	case syntax.OpAnyCharNotNL:
		return &syntax.Regexp{Op: syntax.OpCharClass, Rune: []rune{0, '\n' - 1, '\n' + 1, separator - 1, separator + 1, unicode.MaxRune}}
	case syntax.OpCharClass:
		runes := withoutSeparator(re.Rune)
		if len(runes) == 0 {
			return &syntax.Regexp{Op: syntax.OpNoMatch}
		}
		re.Rune = runes
		return re
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			if r == separator {
				return &syntax.Regexp{Op: syntax.OpNoMatch}
			}
		}
		return re
	}
	for i, sub := range re.Sub {
		re.Sub[i] = scope(sub)
	}
	return re
}

// withoutSeparator removes '/' from a rune range list.
func withoutSeparator(ranges []rune) []rune {
	out := make([]rune, 0, len(ranges)+2)
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if hi < separator || lo > separator {
			out = append(out, lo, hi)
			continue
		}
		if lo < separator {
			out = append(out, lo, separator-1)
		}
		if hi > separator {
			out = append(out, separator+1, hi)
		}
	}
	return out
}
