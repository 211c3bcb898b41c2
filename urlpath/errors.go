package urlpath

import "github.com/pkg/errors"

var (
	// ErrInvalidPattern is returned for a label whose constraint does not compile.
	ErrInvalidPattern = errors.New("invalid path pattern")
	// ErrDuplicateParam is returned for a route binding the same name twice, e.g. /:id/:id.
	ErrDuplicateParam = errors.New("duplicate parameter name")
	// ErrOptionalParameter is returned for an optional segment that is not the
	// single trailing segment of a route.
	ErrOptionalParameter = errors.New("only one trailing optional parameter is supported")
)
