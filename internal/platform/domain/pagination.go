package domain

const (
	DefaultFrom = 0
	DefaultSize = 10
)

// PageRequest is an offset window expressed as from/size.
// The window is aligned to whole pages: page = from / size.
type PageRequest struct {
	From int
	Size int
}

// NewPageRequest validates from >= 0 and size > 0.
func NewPageRequest(from, size int) (PageRequest, error) {
	if from < 0 {
		return PageRequest{}, NewValidationError("from must not be negative")
	}
	if size <= 0 {
		return PageRequest{}, NewValidationError("size must be positive")
	}
	return PageRequest{From: from, Size: size}, nil
}

// Page returns the zero-based page index.
func (p PageRequest) Page() int {
	return p.From / p.Size
}

// Offset returns the row offset of the first element on the page.
func (p PageRequest) Offset() int {
	return p.Page() * p.Size
}

// Limit returns the page size.
func (p PageRequest) Limit() int {
	return p.Size
}

// PaginatedResult is a page of items plus the total match count.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	From  int   `json:"from"`
	Size  int   `json:"size"`
}

// NewPaginatedResult wraps items, never returning a nil slice.
func NewPaginatedResult[T any](items []T, total int64, page PageRequest) PaginatedResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return PaginatedResult[T]{
		Items: items,
		Total: total,
		From:  page.From,
		Size:  page.Size,
	}
}
