package smartrouter

import (
	"net/http"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/router/linearrouter"
	"github.com/zatxm/hroute/router/regexprouter"
	"github.com/zatxm/hroute/router/routertest"
	"github.com/zatxm/hroute/router/trierouter"
)

func newDefault() *Router[string] {
	return New[string](regexprouter.New[string](), trierouter.New[string]())
}

func TestConformance(t *testing.T) {
	routertest.Run(t, func() router.Router[string] { return newDefault() })
}

func TestSelectsFirstCandidate(t *testing.T) {
	r := newDefault()
	assert.Equal(t, "SmartRouter", r.Name())
	assert.Nil(t, r.Active())

	require.NoError(t, r.Add(http.MethodGet, "/entry/:id", "entry"))
	assert.Equal(t, []string{"entry"}, routertest.Handlers(t, r, http.MethodGet, "/entry/1"))
	assert.Equal(t, "SmartRouter + RegExpRouter", r.Name())
	assert.Equal(t, "RegExpRouter", r.Active().Name())
}

func TestFallsBackOnMatch(t *testing.T) {
	r := newDefault()
	require.NoError(t, r.Add(http.MethodGet, "/:user/entries", "entries"))
	require.NoError(t, r.Add(http.MethodGet, "/entry/:name", "entry"))

	params := routertest.ParamsOf(t, r, http.MethodGet, "/entry/entries")
	require.Len(t, params, 2)
	assert.Equal(t, router.Params{"user": "entry"}, params[0])
	assert.Equal(t, router.Params{"name": "entries"}, params[1])
	assert.Equal(t, "SmartRouter + TrieRouter", r.Name())

	// later matches go straight to the selected router
	assert.Equal(t, []string{"entries"}, routertest.Handlers(t, r, http.MethodGet, "/hono/entries"))
}

func TestFallsBackOnAdd(t *testing.T) {
	r := New[string](linearrouter.New[string](), trierouter.New[string]())
	require.NoError(t, r.Add(http.MethodGet, "/:id/*", "middleware"))
	require.NoError(t, r.Add(http.MethodGet, "/:id/comments", "comments"))

	assert.Equal(t, []string{"middleware", "comments"}, routertest.Handlers(t, r, http.MethodGet, "/1/comments"))
	assert.Equal(t, "SmartRouter + TrieRouter", r.Name())
}

func TestAddAfterResolve(t *testing.T) {
	r := newDefault()
	require.NoError(t, r.Add(http.MethodGet, "/", "root"))
	_, err := r.Match(http.MethodGet, "/")
	require.NoError(t, err)

	err = r.Add(http.MethodGet, "/late", "late")
	assert.True(t, errors.Is(err, router.ErrMatcherAlreadyBuilt), "got %v", err)
}

func TestInvalidRouteFailsOnAdd(t *testing.T) {
	r := newDefault()
	err := r.Add(http.MethodGet, "/:id/:id", "dup")
	assert.True(t, errors.Is(err, router.ErrDuplicateParam), "got %v", err)
}

func TestNoRouter(t *testing.T) {
	r := New[string](linearrouter.New[string]())
	require.NoError(t, r.Add(http.MethodGet, "/:id/*", "middleware"))

	_, err := r.Match(http.MethodGet, "/1/2")
	assert.True(t, errors.Is(err, router.ErrNoRouter), "got %v", err)
	_, err = r.Match(http.MethodGet, "/1/2")
	assert.True(t, errors.Is(err, router.ErrNoRouter), "got %v", err)
	assert.Equal(t, "SmartRouter", r.Name())
}

func TestLogsSelection(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router.SetLogger(zap.New(core))
	defer router.SetLogger(nil)

	r := New[string](linearrouter.New[string](), trierouter.New[string]())
	require.NoError(t, r.Add(http.MethodGet, "/:id/*", "middleware"))
	_, err := r.Match(http.MethodGet, "/1/2")
	require.NoError(t, err)

	skipped := logs.FilterMessage("smart router skipped candidate").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "LinearRouter", skipped[0].ContextMap()["router"])

	selected := logs.FilterMessage("smart router selected candidate").All()
	require.Len(t, selected, 1)
	assert.Equal(t, "TrieRouter", selected[0].ContextMap()["router"])
}

func TestConcurrentFirstMatch(t *testing.T) {
	build := func() router.Router[string] {
		r := newDefault()
		require.NoError(t, r.Add(router.MethodAll, "*", "mw"))
		require.NoError(t, r.Add(http.MethodGet, "/entry/:id", "entry"))
		require.NoError(t, r.Add(http.MethodGet, "/entry/:id/*", "entry tail"))
		require.NoError(t, r.Add(http.MethodGet, "/static/css", "css"))
		return r
	}
	want := routertest.ParamsOf(t, build(), http.MethodGet, "/entry/7")
	require.Len(t, want, 3)

	const workers = 8
	for round := 0; round < 20; round++ {
		r := build()
		start := make(chan struct{})
		results := make([]router.Result[string], workers)
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				results[i], errs[i] = r.Match(http.MethodGet, "/entry/7")
			}(i)
		}
		close(start)
		wg.Wait()

		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
			assert.Equal(t, []string{"mw", "entry", "entry tail"}, results[i].Handlers())
			for j := range want {
				assert.Equal(t, want[j], results[i].Params(j))
			}
		}
	}
}
