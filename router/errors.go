package router

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/zatxm/hroute/urlpath"
)

var (
	// ErrMatcherAlreadyBuilt is returned by Add once a router compiled its
	// matcher or a smart router picked its strategy.
	ErrMatcherAlreadyBuilt = errors.New("cannot add route after matcher is built")
	// ErrPathNotPrepared is returned by a prepared router for a route that was
	// not part of its snapshot.
	ErrPathNotPrepared = errors.New("path is not registered in the prepared matcher")
	// ErrNoRouter is returned when no candidate of a smart router can serve
	// the registered routes.
	ErrNoRouter = errors.New("no router could handle the registered routes")

	ErrDuplicateParam    = urlpath.ErrDuplicateParam
	ErrInvalidPattern    = urlpath.ErrInvalidPattern
	ErrOptionalParameter = urlpath.ErrOptionalParameter
)

// UnsupportedPathError reports that a router strategy cannot represent a
// route shape. It is not a problem with the route itself; a smart router
// falls back to the next candidate when it sees one.
type UnsupportedPathError struct {
	Router string
	Path   string
	Reason string
}

func (e *UnsupportedPathError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: unsupported path %q", e.Router, e.Path)
	}
	return fmt.Sprintf("%s: unsupported path %q: %s", e.Router, e.Path, e.Reason)
}

// NewUnsupportedPathError builds an UnsupportedPathError.
func NewUnsupportedPathError(router, path, reason string) error {
	return &UnsupportedPathError{Router: router, Path: path, Reason: reason}
}

// IsUnsupportedPath reports whether err (or anything it wraps) is an
// UnsupportedPathError.
func IsUnsupportedPath(err error) bool {
	var e *UnsupportedPathError
	return errors.As(err, &e)
}
