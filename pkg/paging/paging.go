// Package paging implements the page-window math and the pagination block
// attached to search responses.
package paging

import "math"

// DefaultLimit is the number of rows per page when the caller does not say
// otherwise.
const DefaultLimit = 10

// Window computes the (limit, offset) pair for a zero-based page. Callers
// working with 1-based page numbers must decrement before calling; passing the
// raw page number shifts every window by one page.
func Window(page, size *int) (limit, offset int) {
	limit = DefaultLimit
	if size != nil {
		limit = *size
	}
	if page != nil {
		offset = *page * limit
	}
	return limit, offset
}

// Page is one window of search results plus its pagination block.
type Page[T any] struct {
	TotalItems  int64 `json:"totalItems"`
	Data        []T   `json:"data"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// NewPage assembles a Page from a result window. The current page echoes the
// requested 1-based page and falls back to 1 when none was requested.
func NewPage[T any](data []T, totalItems int64, page *int, limit int) Page[T] {
	current := 1
	if page != nil {
		current = *page
	}
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		TotalItems:  totalItems,
		Data:        data,
		TotalPages:  totalPages(totalItems, limit),
		CurrentPage: current,
	}
}

// NewOffsetPage is NewPage with the other observed current-page fallback of 0.
// Both fallbacks exist in the legacy API; each call site keeps its own.
func NewOffsetPage[T any](data []T, totalItems int64, page *int, limit int) Page[T] {
	p := NewPage(data, totalItems, page, limit)
	if page == nil {
		p.CurrentPage = 0
	}
	return p
}

func totalPages(totalItems int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(limit)))
}
