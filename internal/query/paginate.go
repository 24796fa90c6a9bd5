package query

// DefaultPageSize is the listing page size.
const DefaultPageSize = 9

// Page is one slice of a paginated result.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns ceil(total/size).
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Slice returns items[(page-1)*size : page*size], bounded by len(items).
// Pages past the end are empty.
func Slice[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return []T{}
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// Paginate clamps page to [1, TotalPages] and slices that page. An empty
// input yields page 1 with no items.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	totalPages := TotalPages(len(items), size)
	page = max(1, min(page, totalPages))

	return Page[T]{
		Items:      Slice(items, page, size),
		Page:       page,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: totalPages,
	}
}
