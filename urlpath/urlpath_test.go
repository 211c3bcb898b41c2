package urlpath

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	testCases := []struct {
		path string
		want []string
	}{
		{"/", []string{""}},
		{"/hello", []string{"hello"}},
		{"/hello/", []string{"hello", ""}},
		{"/hello/world", []string{"hello", "world"}},
		{"hello/world", []string{"hello", "world"}},
		{"", []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitPath(tc.path))
		})
	}
}

func TestSplitRoutingPath(t *testing.T) {
	assert.Equal(t, []string{"users", ":name{[0-9a-zA-Z_-]{3,10}}"}, SplitRoutingPath("/users/:name{[0-9a-zA-Z_-]{3,10}}"))
	assert.Equal(t, []string{"files", ":path{[a-z/]+}", "raw"}, SplitRoutingPath("/files/:path{[a-z/]+}/raw"))
	assert.Equal(t, []string{"*"}, SplitRoutingPath("/*"))
	assert.Equal(t, []string{"*"}, SplitRoutingPath("*"))
}

func TestGetPattern(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		p, err := GetPattern("entry")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("wildcard", func(t *testing.T) {
		p, err := GetPattern("*")
		require.NoError(t, err)
		assert.True(t, p.IsWildcard())
	})

	t.Run("label", func(t *testing.T) {
		p, err := GetPattern(":id")
		require.NoError(t, err)
		assert.Equal(t, "id", p.Name)
		assert.False(t, p.Constrained())
		assert.True(t, p.Test("123"))
		assert.False(t, p.Test(""))
	})

	t.Run("constrained", func(t *testing.T) {
		p, err := GetPattern(":date{[0-9]+}")
		require.NoError(t, err)
		assert.Equal(t, "date", p.Name)
		assert.Equal(t, "[0-9]+", p.Source)
		assert.True(t, p.Test("20210101"))
		assert.False(t, p.Test("2021x"))
		assert.False(t, p.Test("x2021"))
	})

	t.Run("nested braces", func(t *testing.T) {
		p, err := GetPattern(":id{[0-9]{3}}")
		require.NoError(t, err)
		assert.Equal(t, "id", p.Name)
		assert.True(t, p.Test("123"))
		assert.False(t, p.Test("1234"))
	})

	t.Run("cached by label text", func(t *testing.T) {
		a, err := GetPattern(":title{[a-z]+}")
		require.NoError(t, err)
		b, err := GetPattern(":title{[a-z]+}")
		require.NoError(t, err)
		assert.Same(t, a, b)
		assert.Same(t, a.Matcher, b.Matcher)
	})

	t.Run("invalid constraint", func(t *testing.T) {
		_, err := GetPattern(":id{[0-9}")
		assert.True(t, errors.Is(err, ErrInvalidPattern))
	})
}

func TestSegmentScoped(t *testing.T) {
	testCases := []struct {
		src     string
		match   []string
		noMatch []string
	}{
		{src: ".+", match: []string{"a", "a.png"}, noMatch: []string{"a/b", ""}},
		{src: "[a-z/]+", match: []string{"abc"}, noMatch: []string{"a/b"}},
		{src: "(a|b)c", match: []string{"ac", "bc"}, noMatch: []string{"cc"}},
		{src: "^[0-9]+$", match: []string{"12"}, noMatch: []string{"1a"}},
		{src: "a/b", noMatch: []string{"a/b", "ab"}},
		{src: `[^x]+`, match: []string{"abc"}, noMatch: []string{"a/c"}},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			p, err := GetPattern(":v{" + tc.src + "}")
			require.NoError(t, err)
			assert.Zero(t, p.Matcher.NumSubexp())
			for _, s := range tc.match {
				assert.True(t, p.Test(s), s)
			}
			for _, s := range tc.noMatch {
				assert.False(t, p.Test(s), s)
			}
		})
	}
}

func TestCheckOptionalParameter(t *testing.T) {
	testCases := []struct {
		path string
		want []string
	}{
		{"/api/animals/:type?", []string{"/api/animals", "/api/animals/:type"}},
		{"/:id?", []string{"/", "/:id"}},
		{"/api/:id{[0-9]+}?", []string{"/api", "/api/:id{[0-9]+}"}},
		{"/api/animals", nil},
		{"/api/:type", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := CheckOptionalParameter(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("not trailing", func(t *testing.T) {
		_, err := CheckOptionalParameter("/api/:type?/list")
		assert.True(t, errors.Is(err, ErrOptionalParameter))
	})

	t.Run("more than one", func(t *testing.T) {
		_, err := CheckOptionalParameter("/api/:a?/:b?")
		assert.True(t, errors.Is(err, ErrOptionalParameter))
	})
}

func TestMergePath(t *testing.T) {
	testCases := []struct {
		paths []string
		want  string
	}{
		{[]string{"/book", "/"}, "/book"},
		{[]string{"/book/", "/"}, "/book/"},
		{[]string{"/book", "/chapter"}, "/book/chapter"},
		{[]string{"/book", "chapter"}, "/book/chapter"},
		{[]string{"/", "/"}, "/"},
		{[]string{"/", "/book"}, "/book"},
		{[]string{"/api", "/v1", "/users/:id"}, "/api/v1/users/:id"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, MergePath(tc.paths...))
		})
	}
}

func TestHostPath(t *testing.T) {
	assert.Equal(t, "/example.com/hello", HostPath("https://example.com/hello"))
	assert.Equal(t, "/example.com/hello", HostPath("http://example.com/hello"))
	assert.Equal(t, "/hello", HostPath("/hello"))
}

func TestParseRoute(t *testing.T) {
	t.Run("segment kinds", func(t *testing.T) {
		r, err := ParseRoute("/post/:date{[0-9]+}/:title/*/x/*")
		require.NoError(t, err)
		kinds := make([]Kind, 0, len(r.Segments))
		for _, s := range r.Segments {
			kinds = append(kinds, s.Kind)
		}
		assert.Equal(t, []Kind{KindLiteral, KindConstrained, KindLabel, KindLabel, KindLiteral, KindTail}, kinds)
		assert.Equal(t, []string{"date", "title"}, r.Names)
		assert.True(t, r.HasTail())
		assert.True(t, r.HasWildcard())
		assert.False(t, r.Static())
	})

	t.Run("static", func(t *testing.T) {
		r, err := ParseRoute("/hello/world")
		require.NoError(t, err)
		assert.True(t, r.Static())
		assert.False(t, r.HasLabel())
	})

	t.Run("star path", func(t *testing.T) {
		a, err := ParseRoute("*")
		require.NoError(t, err)
		b, err := ParseRoute("/*")
		require.NoError(t, err)
		assert.Equal(t, a.Segments, b.Segments)
		assert.Equal(t, KindTail, a.Segments[0].Kind)
	})

	t.Run("duplicate param", func(t *testing.T) {
		_, err := ParseRoute("/:id/:id")
		assert.True(t, errors.Is(err, ErrDuplicateParam))
	})

	t.Run("unexpanded optional", func(t *testing.T) {
		_, err := ParseRoute("/:id?")
		assert.True(t, errors.Is(err, ErrOptionalParameter))
	})
}
