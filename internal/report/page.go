package report

const DefaultPageSize = 10

// Page is one slice of a listing. Pages are 1-indexed.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate returns page number page of items. A page below 1 is treated as 1
// and a page past the end comes back with no items. A size <= 0 uses
// DefaultPageSize.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	if page < 1 {
		page = 1
	}

	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: (len(items) + size - 1) / size,
	}

	start := (page - 1) * size
	if start >= len(items) {
		return p
	}

	end := min(start+size, len(items))
	p.Items = append(p.Items, items[start:end]...)

	return p
}
