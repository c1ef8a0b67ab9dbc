// Package pagination provides the zero-based page/size request shape shared
// by list endpoints.
package pagination

// Request carries a zero-based page index and a page size.
type Request struct {
	Page int
	Size int
}

const (
	defaultSize = 20
	maxSize     = 100
)

// Normalize clamps the request into valid bounds.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = defaultSize
	}
	if r.Size > maxSize {
		r.Size = maxSize
	}
	return r
}

// Offset returns the row offset for the normalized request.
func (r Request) Offset() int {
	n := r.Normalize()
	return n.Page * n.Size
}

// Page wraps one page of results with totals for the envelope.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPage assembles a Page computing TotalPages from the size.
func NewPage[T any](items []T, req Request, total int64) Page[T] {
	n := req.Normalize()
	pages := int(total) / n.Size
	if int(total)%n.Size != 0 {
		pages++
	}
	return Page[T]{
		Items:      items,
		Page:       n.Page,
		Size:       n.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}
