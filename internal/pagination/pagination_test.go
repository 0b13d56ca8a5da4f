package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery_Defaults(t *testing.T) {
	// Act
	p := ParseQuery(url.Values{}, 20)

	// Assert
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestParseQuery_ReadsValues(t *testing.T) {
	// Arrange
	values := url.Values{"page": {"3"}, "limit": {"10"}}

	// Act
	p := ParseQuery(values, 20)

	// Assert
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 20, p.Offset())
}

func TestParseQuery_IgnoresMalformedAndNonPositive(t *testing.T) {
	cases := []url.Values{
		{"page": {"abc"}, "limit": {"xyz"}},
		{"page": {"0"}, "limit": {"0"}},
		{"page": {"-5"}, "limit": {"-1"}},
	}

	for _, values := range cases {
		p := ParseQuery(values, 20)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.Limit)
	}
}

func TestParseQuery_ClampsLimit(t *testing.T) {
	// Act
	p := ParseQuery(url.Values{"limit": {"5000"}}, 20)

	// Assert
	assert.Equal(t, maxLimit, p.Limit)
}

func TestBuild_MiddlePageHasBothLinks(t *testing.T) {
	// Arrange: 25 rows, page 2 of 3 at limit 10.
	p := Params{Page: 2, Limit: 10}

	// Act
	env := Build("/api/blogs", p, 25, []string{"a"})

	// Assert
	assert.Equal(t, int64(25), env.Count)
	assert.Equal(t, "/api/blogs?page=3&limit=10", env.Next)
	assert.Equal(t, "/api/blogs?page=1&limit=10", env.Previus)
}

func TestBuild_FirstPageHasNoPrevius(t *testing.T) {
	// Act
	env := Build("/api/blogs", Params{Page: 1, Limit: 10}, 25, nil)

	// Assert
	assert.Equal(t, "/api/blogs?page=2&limit=10", env.Next)
	assert.Equal(t, "", env.Previus)
}

func TestBuild_LastPageHasNoNext(t *testing.T) {
	// Act
	env := Build("/api/blogs", Params{Page: 3, Limit: 10}, 25, nil)

	// Assert
	assert.Equal(t, "", env.Next)
	assert.Equal(t, "/api/blogs?page=2&limit=10", env.Previus)
}

func TestBuild_ExactBoundaryHasNoNext(t *testing.T) {
	// Arrange: exactly two full pages.
	env := Build("/api/blogs", Params{Page: 2, Limit: 10}, 20, nil)

	// Assert
	assert.Equal(t, "", env.Next)
}
