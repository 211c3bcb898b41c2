package patternrouter

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/router/routertest"
)

func TestConformance(t *testing.T) {
	routertest.Run(t,
		func() router.Router[string] { return New[string]() },
		routertest.LenientTrailingSlash(),
	)
}

func TestName(t *testing.T) {
	r := New[int]()
	assert.Equal(t, "PatternRouter", r.Name())
	assert.True(t, r.LenientTrailingSlash())
}

func TestCompile(t *testing.T) {
	testCases := []struct {
		route string
		want  string
	}{
		{"/entry/:id", `(?s)^/entry/(?P<id>[^/]+)/?$`},
		{"/entry/*", `(?s)^/entry(?:/.*)?$`},
		{"*", `(?s)^(?:/.*)?$`},
		{"/wild/*/card", `(?s)^/wild/[^/]+/card/?$`},
		{"/post/:date{[0-9]+}", `(?s)^/post/(?P<date>[0-9]+)/?$`},
		{"/a.b", `(?s)^/a\.b/?$`},
	}
	for _, tc := range testCases {
		t.Run(tc.route, func(t *testing.T) {
			re, err := Compile(tc.route)
			require.NoError(t, err)
			assert.Equal(t, tc.want, re.String())
		})
	}
}

func TestUnsupportedParamName(t *testing.T) {
	r := New[string]()
	err := r.Add(http.MethodGet, "/users/:user-id", "user")
	assert.True(t, router.IsUnsupportedPath(err), "got %v", err)
}

func TestNamedAndWildcard(t *testing.T) {
	r := New[string]()
	require.NoError(t, r.Add(http.MethodGet, "/entry/:id/*", "middleware"))
	require.NoError(t, r.Add(http.MethodGet, "/entry/:id/:action", "action"))

	params := routertest.ParamsOf(t, r, http.MethodGet, "/entry/1/edit")
	require.Len(t, params, 2)
	assert.Equal(t, router.Params{"id": "1"}, params[0])
	assert.Equal(t, router.Params{"id": "1", "action": "edit"}, params[1])
}
