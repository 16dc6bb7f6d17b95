package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultPageSize matches the console's initial rows-per-page.
	DefaultPageSize = 10
	// DefaultSortBy is the default sort column.
	DefaultSortBy = "id"
	// SortAsc sorts ascending.
	SortAsc = "asc"
	// SortDesc sorts descending.
	SortDesc = "desc"
)

var (
	// ErrInvalidPage is returned for a negative page index.
	ErrInvalidPage = errors.New("page must be >= 0")
	// ErrInvalidPageSize is returned for a page size below one.
	ErrInvalidPageSize = errors.New("page size must be > 0")
)

// PageRequest selects one page of a resource listing. Page is zero-based.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalize applies defaults for sort options and validates page bounds.
func (r PageRequest) Normalize() (PageRequest, error) {
	if r.Page < 0 {
		return r, fmt.Errorf("%w, got %d", ErrInvalidPage, r.Page)
	}
	if r.Size <= 0 {
		return r, fmt.Errorf("%w, got %d", ErrInvalidPageSize, r.Size)
	}
	r.SortBy = strings.TrimSpace(r.SortBy)
	if r.SortBy == "" {
		r.SortBy = DefaultSortBy
	}
	r.SortDir = strings.ToLower(strings.TrimSpace(r.SortDir))
	switch r.SortDir {
	case "":
		r.SortDir = SortAsc
	case SortAsc, SortDesc:
	default:
		return r, errors.New("sort direction must be asc or desc")
	}
	return r, nil
}

// Page is one page of backend-owned entities.
// Invariants: len(Items) <= PageSize and TotalCount >= len(Items).
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int64
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool {
	return int64((p.Page+1)*p.PageSize) < p.TotalCount
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool { return p.Page > 0 }

// Range returns the one-based index of the first and last item on the page,
// or (0, 0) for an empty page.
func (p Page[T]) Range() (start, end int64) {
	if len(p.Items) == 0 {
		return 0, 0
	}
	start = int64(p.Page*p.PageSize) + 1
	return start, start + int64(len(p.Items)) - 1
}
