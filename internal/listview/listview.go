// Package listview filters, sorts and paginates in-memory lists for the admin tables.
package listview

import (
	"slices"
	"strings"
)

// DefaultPageSize is used when a page size below one is requested.
const DefaultPageSize = 10

// Page is one page of a list plus the data needed to render pagination links.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
}

// Filter returns the items keep accepts, in their original order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}

// Sort sorts items in place by byte-wise comparison of key. Items with equal
// keys keep their relative order in both directions.
func Sort[T any](items []T, key func(T) string, desc bool) {
	slices.SortStableFunc(items, func(a, b T) int {
		c := strings.Compare(key(a), key(b))
		if desc {
			return -c
		}

		return c
	})
}

// Paginate returns page (1 based) of items. A page past the end is empty.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	if page < 1 {
		page = 1
	}

	totalItems := len(items)

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	startIdx := (page - 1) * pageSize
	endIdx := min(startIdx+pageSize, totalItems)

	var paged []T
	if startIdx < totalItems {
		paged = items[startIdx:endIdx]
	} else {
		paged = []T{}
	}

	return Page[T]{
		Items:       paged,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
}

// Pages returns the page numbers 1..TotalPages for rendering pagination links.
func (p Page[T]) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}

	return out
}
