// Package pagination slices fully ordered result sets into 1-based pages.
package pagination

import (
	"errors"
)

// Page sizes are product constants, one per resource.
const (
	ThreadPageSize     = 50
	AdminLogPageSize   = 50
	PostPageSize       = 30
	UserRecordPageSize = 30
	CommentPageSize    = 10
)

var ErrOutOfRange = errors.New("page out of range")

// TotalPages is ceil(total/size); zero for an empty set.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate slices the 1-based page out of the full ordered set.
// An empty set yields an empty first page with zero total pages;
// any page past the end of a set is ErrOutOfRange.
func Paginate[T any](items []T, page, size int) ([]T, int, error) {
	if page < 1 || size < 1 {
		return nil, 0, ErrOutOfRange
	}
	totalPages := TotalPages(len(items), size)
	if totalPages == 0 {
		if page == 1 {
			return []T{}, 0, nil
		}
		return nil, 0, ErrOutOfRange
	}
	if page > totalPages {
		return nil, totalPages, ErrOutOfRange
	}

	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end:end], totalPages, nil
}
