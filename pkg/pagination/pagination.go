package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads limit/offset, or page/per_page when offset is absent.
// Out-of-range values are clamped rather than rejected.
func FromContext(c echo.Context) Params {
	limit := atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = atoi(c.QueryParam("per_page"))
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := atoi(c.QueryParam("offset"))
	if offset <= 0 {
		if page := atoi(c.QueryParam("page")); page > 1 {
			offset = (page - 1) * limit
		}
	}
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: limit, Offset: offset}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// SQL returns the LIMIT and OFFSET clause for SQL queries.
func (p Params) SQL() string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.Limit, p.Offset)
}

// HasNext reports whether results remain after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset+p.Limit < total
}

// Links holds relative URLs for neighbouring pages.
type Links struct {
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// Response wraps one page of results.
type Response[T any] struct {
	Data    []T   `json:"data"`
	Total   int   `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
	Links   Links `json:"links"`
}

// NewResponse builds a page for basePath. Data is never nil so it encodes
// as an empty JSON array.
func NewResponse[T any](data []T, total int, p Params, basePath string) *Response[T] {
	if data == nil {
		data = []T{}
	}
	r := &Response[T]{
		Data:    data,
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.HasNext(total),
	}
	if r.HasMore {
		r.Links.Next = fmt.Sprintf("%s?limit=%d&offset=%d", basePath, p.Limit, p.Offset+p.Limit)
	}
	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		r.Links.Previous = fmt.Sprintf("%s?limit=%d&offset=%d", basePath, p.Limit, prev)
	}
	return r
}
