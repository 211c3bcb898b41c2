// Package urlpath holds the path-pattern helpers shared by every router:
// segment splitting, label parsing, optional-segment expansion and path
// merging.
package urlpath

import "strings"

// separator is the path segment delimiter.
const separator = '/'

// SplitPath splits path on '/' and drops a leading empty segment.
//
//	"/"          -> [""]
//	"/entry/12"  -> ["entry", "12"]
//	"/entry/"    -> ["entry", ""]
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	if parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}

// SplitRoutingPath splits a route pattern like SplitPath but keeps a
// constraint such as :path{[a-z/]+} in one piece.
func SplitRoutingPath(path string) []string {
	parts := make([]string, 0, strings.Count(path, "/")+1)
	depth, start := 0, 0
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case separator:
			if depth == 0 {
				parts = append(parts, path[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, path[start:])
	if parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}
