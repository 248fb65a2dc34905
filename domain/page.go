package domain

// Page is a page-bounded slice of a server-side collection. It is a
// view-local projection, never persisted.
type Page[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Number     int // 1-based current page
	Size       int
}
