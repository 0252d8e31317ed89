// Package pagination computes offset/limit windows for paginated listings.
package pagination

import "fmt"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Window returns the (offset, limit) pair for a 1-based page number.
func Window(page, pageSize int) (offset, limit int) {
	return (page - 1) * pageSize, pageSize
}

// Pages returns the number of pages needed to hold total rows.
// A total of zero means zero pages.
func Pages(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Validate checks the bounds the API contract promises: page >= 1 and
// pageSize in [1, MaxPageSize].
func Validate(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", MaxPageSize, pageSize)
	}
	return nil
}
