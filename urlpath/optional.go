package urlpath

import (
	"strings"

	"github.com/pkg/errors"
)

// CheckOptionalParameter expands a route ending in an optional label.
//
//	"/api/animals/:type?" -> ["/api/animals", "/api/animals/:type"]
//	"/:id?"               -> ["/", "/:id"]
//
// It returns nil when path has no optional segment. Optional segments that
// are not last, or more than one of them, are rejected.
func CheckOptionalParameter(path string) ([]string, error) {
	if !strings.Contains(path, "?") || !strings.Contains(path, ":") {
		return nil, nil
	}

	segments := SplitRoutingPath(path)
	optional := -1
	for i, segment := range segments {
		if isOptional(segment) {
			if optional != -1 {
				return nil, errors.Wrapf(ErrOptionalParameter, "path %q", path)
			}
			optional = i
		}
	}
	if optional == -1 {
		return nil, nil
	}
	if optional != len(segments)-1 {
		return nil, errors.Wrapf(ErrOptionalParameter, "path %q", path)
	}

	base := ""
	for _, segment := range segments[:optional] {
		base += "/" + segment
	}
	with := base + "/" + strings.TrimSuffix(segments[optional], "?")
	if base == "" {
		base = "/"
	}
	return []string{base, with}, nil
}

func isOptional(segment string) bool {
	return len(segment) > 2 && segment[0] == ':' && segment[len(segment)-1] == '?'
}

// ExpandPath returns the concrete paths a route registers: the expansion of
// an optional trailing label, or path itself.
func ExpandPath(path string) ([]string, error) {
	paths, err := CheckOptionalParameter(path)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		return []string{path}, nil
	}
	return paths, nil
}
