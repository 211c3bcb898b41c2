// Package manifest loads route tables from files so that a router can be
// built and inspected without writing Go.
package manifest

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/router/registry"
	"github.com/zatxm/hroute/tools"
	"github.com/zatxm/hroute/urlpath"
)

var ErrInvalidManifest = errors.New("invalid manifest")

// Route is one registration. Name identifies the handler in match output
// and defaults to "METHOD path".
type Route struct {
	Method string `json:"method" yaml:"method" toml:"method" codec:"method" xml:"method,attr" validate:"required,uppercase"`
	Path   string `json:"path" yaml:"path" toml:"path" codec:"path" xml:"path,attr" validate:"required,startswith=/|eq=*"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" codec:"name,omitempty" xml:"name,attr,omitempty"`
}

// Handler returns the route name, or "METHOD path" when it has none.
func (r Route) Handler() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Method + " " + r.Path
}

// Manifest is a route table plus the router to load it into.
type Manifest struct {
	Router   string  `json:"router,omitempty" yaml:"router,omitempty" toml:"router,omitempty" codec:"router,omitempty" xml:"router,attr,omitempty" validate:"omitempty,oneof=smart regexp trie linear pattern"`
	Optimize bool    `json:"optimize,omitempty" yaml:"optimize,omitempty" toml:"optimize,omitempty" codec:"optimize,omitempty" xml:"optimize,attr,omitempty"`
	Routes   []Route `json:"routes" yaml:"routes" toml:"routes" codec:"routes" xml:"route" validate:"required,min=1,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate normalizes absolute URLs into host paths and checks the struct
// tags.
func (m *Manifest) Validate() error {
	for i := range m.Routes {
		m.Routes[i].Method = strings.ToUpper(strings.TrimSpace(m.Routes[i].Method))
		m.Routes[i].Path = urlpath.HostPath(strings.TrimSpace(m.Routes[i].Path))
	}
	if err := validate.Struct(m); err != nil {
		return errors.Wrapf(ErrInvalidManifest, "%v", err)
	}
	return nil
}

// Load reads a manifest in the given format, see Default.
func Load(r io.Reader, format string) (*Manifest, error) {
	d, err := Default(format)
	if err != nil {
		return nil, err
	}
	body, err := tools.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}
	m := &Manifest{}
	if err := d.Decode(body, m); err != nil {
		return nil, errors.Wrapf(ErrInvalidManifest, "%s: %v", d.Name(), err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads a manifest, picking the format from the file extension.
func LoadFile(name string) (*Manifest, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open manifest")
	}
	defer f.Close()
	return Load(f, strings.TrimPrefix(filepath.Ext(name), "."))
}

// Register adds every route of m to r, in manifest order.
func Register[T any](r router.Router[T], m *Manifest, handler func(Route) T) error {
	for _, rt := range m.Routes {
		if err := r.Add(rt.Method, rt.Path, handler(rt)); err != nil {
			return errors.WithMessagef(err, "route %s %s", rt.Method, rt.Path)
		}
	}
	return nil
}

// Build creates the router m names and registers its routes with their
// names as handlers.
func Build(m *Manifest) (router.Router[string], error) {
	var opts []registry.Option
	if m.Optimize {
		opts = append(opts, registry.WithOptimize())
	}
	r, err := registry.New[string](m.Router, opts...)
	if err != nil {
		return nil, err
	}
	if err := Register(r, m, Route.Handler); err != nil {
		return nil, err
	}
	return r, nil
}
