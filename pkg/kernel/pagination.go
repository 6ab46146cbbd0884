package kernel

// PaginationOptions controls offset-based pagination for list queries
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps pagination values to sane defaults
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the SQL offset for the current page
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Paginated wraps a page of items with total count metadata
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated builds a Paginated result computing total pages
func NewPaginated[T any](items []T, total int64, opts PaginationOptions) *Paginated[T] {
	pages := int(total) / opts.PageSize
	if int(total)%opts.PageSize > 0 {
		pages++
	}
	return &Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: pages,
	}
}
