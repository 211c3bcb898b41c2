package main

import (
	"flag"
	"io"
	"net/http"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/zatxm/hroute"
	"github.com/zatxm/hroute/manifest"
	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/router/regexprouter"
)

const manifestEnv = "HROUTE_MANIFEST"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type config struct {
	manifest string
	router   string
	optimize bool
	method   string
	snapshot string
	prepared string
	serve    string
	logLevel string
	paths    []string
}

func parseFlags(args []string, out io.Writer) (*config, error) {
	fs := flag.NewFlagSet("hroute", flag.ContinueOnError)
	fs.SetOutput(out)
	c := &config{}
	fs.StringVar(&c.manifest, "manifest", getEnvOrDefault(manifestEnv, ""),
		"Route manifest (.json, .yaml, .toml, .msgpack, .pb, .xml or .txt), env "+manifestEnv)
	fs.StringVar(&c.router, "router", "", "Override the manifest router: smart, regexp, trie, linear or pattern")
	fs.BoolVar(&c.optimize, "optimize", false, "Serve static routes from a map in front of the router")
	fs.StringVar(&c.method, "method", http.MethodGet, "Request method of the paths to match")
	fs.StringVar(&c.snapshot, "snapshot", "", "Write a prepared regexp matcher for the manifest to this file")
	fs.StringVar(&c.prepared, "prepared", "", "Match with the prepared regexp matcher read from this file")
	fs.StringVar(&c.serve, "serve", "", "Serve the manifest on this address, answering with the matched route as JSON")
	fs.StringVar(&c.logLevel, "log-level", getEnvOrDefault("HROUTE_LOG_LEVEL", ""),
		"Log level (debug, info, warn, error); debug also shows router selection")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.paths = fs.Args()
	if c.manifest == "" {
		return nil, errors.Errorf("no manifest, use -manifest or %s", manifestEnv)
	}
	return c, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func run(args []string, out io.Writer) error {
	c, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		logger, err := hroute.NewLogger(c.logLevel)
		if err != nil {
			return err
		}
		hroute.Log = logger
		router.SetLogger(logger)
	}

	m, err := manifest.LoadFile(c.manifest)
	if err != nil {
		return err
	}
	if c.router != "" {
		m.Router = c.router
	}
	m.Optimize = m.Optimize || c.optimize

	switch {
	case c.snapshot != "":
		return writeSnapshot(m, c.snapshot)
	case c.serve != "":
		return serve(m, c.serve)
	}

	var r router.Router[string]
	if c.prepared != "" {
		r, err = loadPrepared(m, c.prepared)
	} else {
		r, err = manifest.Build(m)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for _, path := range c.paths {
		report, err := match(r, c.method, path)
		if err != nil {
			return err
		}
		if err := enc.Encode(report); err != nil {
			return err
		}
	}
	return nil
}

type matchReport struct {
	Router  string       `json:"router"`
	Method  string       `json:"method"`
	Path    string       `json:"path"`
	Matches []matchEntry `json:"matches"`
}

type matchEntry struct {
	Handler string        `json:"handler"`
	Params  router.Params `json:"params"`
}

func match(r router.Router[string], method, path string) (*matchReport, error) {
	res, err := r.Match(method, path)
	if err != nil {
		return nil, errors.WithMessagef(err, "match %s %s", method, path)
	}
	report := &matchReport{
		Router:  r.Name(),
		Method:  method,
		Path:    path,
		Matches: make([]matchEntry, res.Len()),
	}
	for i := range res.Matches {
		report.Matches[i] = matchEntry{Handler: res.Matches[i].Handler, Params: res.Params(i)}
	}
	return report, nil
}

func preparedRoutes(m *manifest.Manifest) []regexprouter.Route {
	routes := make([]regexprouter.Route, len(m.Routes))
	for i, rt := range m.Routes {
		routes[i] = regexprouter.Route{Method: rt.Method, Path: rt.Path}
	}
	return routes
}

func writeSnapshot(m *manifest.Manifest, name string) error {
	s, err := regexprouter.Prepare(preparedRoutes(m)...)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create snapshot")
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadPrepared(m *manifest.Manifest, name string) (router.Router[string], error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer f.Close()
	s, err := regexprouter.DecodeSnapshot(f)
	if err != nil {
		return nil, err
	}
	r, err := regexprouter.NewPrepared[string](s)
	if err != nil {
		return nil, err
	}
	if err := manifest.Register[string](r, m, manifest.Route.Handler); err != nil {
		return nil, err
	}
	return r, nil
}

// newApp answers every manifest route with the route name and its
// parameters.
func newApp(m *manifest.Manifest) (*hroute.App, error) {
	opts := []hroute.Option{hroute.WithRouter(m.Router)}
	if m.Optimize {
		opts = append(opts, hroute.WithOptimize())
	}
	app, err := hroute.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := app.Use(hroute.Recovery(), hroute.RequestID()); err != nil {
		return nil, err
	}
	if err := app.EnableLogRequest(); err != nil {
		return nil, err
	}
	for _, rt := range m.Routes {
		name := rt.Handler()
		if err := app.Add(rt.Method, rt.Path, func(c *hroute.Context) error {
			return c.JSON(matchEntry{Handler: name, Params: c.Params()})
		}); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func serve(m *manifest.Manifest, addr string) error {
	app, err := newApp(m)
	if err != nil {
		return err
	}
	return app.Run(addr)
}
