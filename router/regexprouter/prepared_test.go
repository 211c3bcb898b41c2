package regexprouter

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatxm/hroute/router"
	"github.com/zatxm/hroute/router/routertest"
)

var preparedRoutes = []Route{
	{Method: router.MethodAll, Path: "*"},
	{Method: http.MethodGet, Path: "/entry/:id"},
	{Method: http.MethodGet, Path: "/entry/:id/comments"},
	{Method: http.MethodGet, Path: "/entry"},
	{Method: http.MethodGet, Path: "/entry"},
	{Method: http.MethodPost, Path: "/entry"},
}

func newPrepared(t *testing.T) *PreparedRouter[string] {
	t.Helper()
	s, err := Prepare(preparedRoutes...)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))
	decoded, err := DecodeSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Routes, decoded.Routes)

	r, err := NewPrepared[string](decoded)
	require.NoError(t, err)
	return r
}

func TestPreparedMatch(t *testing.T) {
	r := newPrepared(t)
	assert.Equal(t, "PreparedRegExpRouter", r.Name())

	require.NoError(t, r.Add(router.MethodAll, "*", "middleware"))
	require.NoError(t, r.Add(http.MethodGet, "/entry/:id", "get entry"))
	require.NoError(t, r.Add(http.MethodGet, "/entry/:id/comments", "comments"))
	require.NoError(t, r.Add(http.MethodGet, "/entry", "list 1"))
	require.NoError(t, r.Add(http.MethodGet, "/entry", "list 2"))
	require.NoError(t, r.Add(http.MethodPost, "/entry", "create"))

	assert.Equal(t, []string{"middleware", "get entry"}, routertest.Handlers(t, r, http.MethodGet, "/entry/1"))
	assert.Equal(t, []string{"middleware", "list 1", "list 2"}, routertest.Handlers(t, r, http.MethodGet, "/entry"))
	assert.Equal(t, []string{"middleware", "create"}, routertest.Handlers(t, r, http.MethodPost, "/entry"))
	assert.Equal(t, []string{"middleware"}, routertest.Handlers(t, r, "PURGE", "/entry"))

	params := routertest.ParamsOf(t, r, http.MethodGet, "/entry/7/comments")
	require.Len(t, params, 2)
	assert.Empty(t, params[0])
	assert.Equal(t, router.Params{"id": "7"}, params[1])
}

func TestPreparedUnboundSlotsAreSkipped(t *testing.T) {
	r := newPrepared(t)
	require.NoError(t, r.Add(http.MethodGet, "/entry/:id", "get entry"))

	assert.Equal(t, []string{"get entry"}, routertest.Handlers(t, r, http.MethodGet, "/entry/1"))
	assert.Empty(t, routertest.Handlers(t, r, http.MethodGet, "/entry"))
}

func TestPreparedRejectsUnknownPath(t *testing.T) {
	r := newPrepared(t)

	err := r.Add(http.MethodGet, "/unknown", "unknown")
	assert.True(t, errors.Is(err, router.ErrPathNotPrepared), "got %v", err)

	require.NoError(t, r.Add(http.MethodPost, "/entry", "create"))
	err = r.Add(http.MethodPost, "/entry", "create again")
	assert.True(t, errors.Is(err, router.ErrPathNotPrepared), "got %v", err)
}

func TestPrepareUnsupported(t *testing.T) {
	_, err := Prepare(
		Route{Method: http.MethodGet, Path: "/:user/entries"},
		Route{Method: http.MethodGet, Path: "/entry/:name"},
	)
	assert.True(t, router.IsUnsupportedPath(err), "got %v", err)
}

func TestNewPreparedValidates(t *testing.T) {
	s, err := Prepare(preparedRoutes...)
	require.NoError(t, err)

	s.Matchers[0].Terminals[0].Group = 999
	_, err = NewPrepared[string](s)
	assert.True(t, errors.Is(err, ErrInvalidSnapshot), "got %v", err)
}

func TestDecodeSnapshotEmpty(t *testing.T) {
	_, err := DecodeSnapshot(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, ErrInvalidSnapshot), "got %v", err)
}
