package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

const maxLimit = 100

// Params are the page/limit inputs driving every list endpoint.
type Params struct {
	Page  int
	Limit int
}

// ParseQuery reads page and limit from the query string, clamping both to
// sane ranges. Absent or malformed values fall back to page 1 and the
// configured default limit.
func ParseQuery(values url.Values, defaultLimit int) Params {
	p := Params{Page: 1, Limit: defaultLimit}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		p.Limit = limit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p
}

// Offset converts the 1-based page into a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Envelope is the list response body. Next and Previus are pre-built links to
// the adjacent pages; an empty string, not null, marks an absent link. The
// Previus spelling is load-bearing: existing clients depend on it.
type Envelope struct {
	Count   int64  `json:"count"`
	Data    any    `json:"data"`
	Next    string `json:"next"`
	Previus string `json:"previus"`
}

// Build assembles the envelope for one page of a listing at the given path.
func Build(path string, p Params, count int64, data any) Envelope {
	env := Envelope{Count: count, Data: data}

	if int64(p.Page*p.Limit) < count {
		env.Next = pageLink(path, p.Page+1, p.Limit)
	}
	if p.Page > 1 {
		env.Previus = pageLink(path, p.Page-1, p.Limit)
	}

	return env
}

func pageLink(path string, page, limit int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", path, page, limit)
}
