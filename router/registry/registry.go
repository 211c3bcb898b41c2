// Package registry builds routers by name, for configuration files and
// command line flags.
package registry

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/router/linearrouter"
	"github.com/zatxm/hroute/router/optimizerouter"
	"github.com/zatxm/hroute/router/patternrouter"
	"github.com/zatxm/hroute/router/regexprouter"
	"github.com/zatxm/hroute/router/smartrouter"
	"github.com/zatxm/hroute/router/trierouter"
)

// Router names accepted by New.
const (
	Smart   = "smart"
	RegExp  = "regexp"
	Trie    = "trie"
	Linear  = "linear"
	Pattern = "pattern"
)

// ErrUnknownRouter is returned by New for a name it does not know.
var ErrUnknownRouter = errors.New("unknown router")

type options struct {
	optimize bool
}

// Option configures New.
type Option func(*options)

// WithOptimize wraps the router in an optimizerouter.
func WithOptimize() Option {
	return func(o *options) {
		o.optimize = true
	}
}

// Names lists the accepted router names.
func Names() []string {
	names := []string{Smart, RegExp, Trie, Linear, Pattern}
	sort.Strings(names)
	return names
}

// New builds an empty router. An empty name selects the smart router over
// the regexp and trie routers.
func New[T any](name string, opts ...Option) (router.Router[T], error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if !o.optimize {
		return build[T](name)
	}
	inner, err := build[int](name)
	if err != nil {
		return nil, err
	}
	return optimizerouter.New[T](inner), nil
}

func build[T any](name string) (router.Router[T], error) {
	switch strings.ToLower(name) {
	case "", Smart:
		return smartrouter.New[T](regexprouter.New[T](), trierouter.New[T]()), nil
	case RegExp:
		return regexprouter.New[T](), nil
	case Trie:
		return trierouter.New[T](), nil
	case Linear:
		return linearrouter.New[T](), nil
	case Pattern:
		return patternrouter.New[T](), nil
	default:
		return nil, errors.Wrapf(ErrUnknownRouter, "%q, want one of %s", name, strings.Join(Names(), ", "))
	}
}
