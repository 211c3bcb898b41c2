package urlpath

import "strings"

// MergePath joins route group prefixes and a route path, normalizing the
// slashes between them.
//
//	MergePath("/book", "/")       -> "/book"
//	MergePath("/book/", "/")      -> "/book/"
//	MergePath("/book", "chapter") -> "/book/chapter"
//	MergePath("/", "/")           -> "/"
func MergePath(paths ...string) string {
	p := ""
	endsWithSlash := false
	for _, path := range paths {
		if strings.HasSuffix(p, "/") {
			p = p[:len(p)-1]
			endsWithSlash = true
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		switch {
		case path == "/" && endsWithSlash:
			p += "/"
		case path != "/":
			p += path
		}
		if path == "/" && p == "" {
			p = "/"
		}
	}
	return p
}

// HostPath turns an absolute URL into a routing path whose first segment is
// the host, so that routes such as /example.com/hello can scope a handler to
// one hostname. Inputs without a scheme are returned unchanged.
//
//	"https://example.com/hello" -> "/example.com/hello"
func HostPath(url string) string {
	for _, scheme := range [...]string{"http:/", "https:/"} {
		if strings.HasPrefix(url, scheme) && len(url) > len(scheme)+1 && url[len(scheme)] == '/' {
			return url[len(scheme):]
		}
	}
	return url
}
