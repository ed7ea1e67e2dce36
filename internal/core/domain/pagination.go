package domain

const (
	// DefaultPage is used when the caller does not specify a page.
	DefaultPage = 1
	// DefaultPageSize is used when the caller does not specify a page size.
	DefaultPageSize = 20
	// MaxPageSize caps a single page to keep list queries bounded.
	MaxPageSize = 100
)

// PageRequest describes a 1-based page window over an ordered listing.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest fills in defaults for zero-valued fields. It does not
// validate; out-of-range values are rejected by the service layer.
func NewPageRequest(page, pageSize int) PageRequest {
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows preceding the requested page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of rows for the page.
func (p PageRequest) Limit() int {
	return p.PageSize
}

// Page is one window of a listing together with pagination totals.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPage assembles a Page from a slice of items and the overall total.
// TotalPages is ceil(total / page_size); a request past the last page yields
// an empty Items with the totals intact.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}
