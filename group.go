package hroute

import (
	"net/http"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/urlpath"
)

// Group registers routes below a common prefix.
type Group struct {
	prefix     string
	app        *App
	middleware []Middleware
}

// Prefix returns the path every route of the group starts with.
func (g *Group) Prefix() string {
	return g.prefix
}

// Add registers a new handler for the given method and path.
func (g *Group) Add(method, path string, handler Handler, m ...Middleware) error {
	mw := make([]Middleware, 0, len(g.middleware)+len(m))
	mw = append(mw, g.middleware...)
	mw = append(mw, m...)
	return g.app.Add(method, urlpath.MergePath(g.prefix, path), handler, mw...)
}

// Get registers your function to be called when the given GET path has been requested.
func (g *Group) Get(path string, handler Handler, m ...Middleware) error {
	return g.Add(http.MethodGet, path, handler, m...)
}

// Post registers your function to be called when the given POST path has been requested.
func (g *Group) Post(path string, handler Handler, m ...Middleware) error {
	return g.Add(http.MethodPost, path, handler, m...)
}

// Put registers your function to be called when the given PUT path has been requested.
func (g *Group) Put(path string, handler Handler, m ...Middleware) error {
	return g.Add(http.MethodPut, path, handler, m...)
}

// Patch registers your function to be called when the given PATCH path has been requested.
func (g *Group) Patch(path string, handler Handler, m ...Middleware) error {
	return g.Add(http.MethodPatch, path, handler, m...)
}

// Delete registers your function to be called when the given DELETE path has been requested.
func (g *Group) Delete(path string, handler Handler, m ...Middleware) error {
	return g.Add(http.MethodDelete, path, handler, m...)
}

// Any registers a handler for every method.
func (g *Group) Any(path string, handler Handler, m ...Middleware) error {
	return g.Add(router.MethodAll, path, handler, m...)
}

// Static serves the files below dir under the group prefix joined with path.
func (g *Group) Static(path, dir string, m ...Middleware) error {
	prefix := urlpath.MergePath(g.prefix, path)
	return g.Get(urlpath.MergePath(path, "*"), staticHandler(prefix, dir), m...)
}

// Use adds middleware running for every request below the prefix,
// matched or not.
func (g *Group) Use(m ...Middleware) error {
	return g.app.UsePath(urlpath.MergePath(g.prefix, "*"), m...)
}

// Group returns a child group.
func (g *Group) Group(prefix string, m ...Middleware) *Group {
	mw := make([]Middleware, 0, len(g.middleware)+len(m))
	mw = append(mw, g.middleware...)
	mw = append(mw, m...)
	return &Group{app: g.app, prefix: urlpath.MergePath(g.prefix, prefix), middleware: mw}
}
