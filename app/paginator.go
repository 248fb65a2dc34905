package app

import "github.com/blogmates/blogmates-tui/domain"

// Paginator is the one pagination controller shared by feed, user posts,
// comments and both halves of search. It owns the page metadata and drops
// responses from superseded requests: every load bumps a sequence number,
// and only the result carrying the current sequence is applied. Callers
// mutate it from a single goroutine (the Bubble Tea update loop).
type Paginator[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Current    int
	PageSize   int
	Loading    bool
	Err        error

	seq int
}

// NewPaginator creates a controller with the given page size. Nothing is
// loaded until the first Load.
func NewPaginator[T any](pageSize int) *Paginator[T] {
	return &Paginator[T]{PageSize: pageSize}
}

// Load marks a fetch of the given page as in flight and returns the sequence
// number the caller must echo back via Apply or Fail. Before the first
// successful load TotalPages is unknown, so only page 1 is accepted.
func (p *Paginator[T]) Load(page int) (int, bool) {
	if page < 1 {
		return 0, false
	}
	if p.TotalPages > 0 && page > p.TotalPages {
		return 0, false
	}
	if p.TotalPages == 0 && page != 1 {
		return 0, false
	}
	p.seq++
	p.Loading = true
	return p.seq, true
}

// CanGo reports whether page is within [1, TotalPages].
func (p *Paginator[T]) CanGo(page int) bool {
	return page >= 1 && page <= p.TotalPages
}

// GoToPage is Load guarded for user navigation: out-of-range pages are a
// no-op.
func (p *Paginator[T]) GoToPage(page int) (int, bool) {
	if !p.CanGo(page) {
		return 0, false
	}
	return p.Load(page)
}

// Reload re-issues the current page, used after a mutation (delete, count
// change) so totals stay consistent with the server.
func (p *Paginator[T]) Reload() (int, bool) {
	page := p.Current
	if page < 1 {
		page = 1
	}
	return p.Load(page)
}

// Apply installs a successful page result. Stale results (wrong sequence)
// are dropped and the method reports false.
func (p *Paginator[T]) Apply(seq int, page domain.Page[T]) bool {
	if seq != p.seq {
		return false
	}
	p.Loading = false
	p.Err = nil
	p.Items = page.Items
	p.TotalCount = page.TotalCount
	p.TotalPages = page.TotalPages
	p.Current = page.Number
	if page.Size > 0 {
		p.PageSize = page.Size
	}
	return true
}

// Fail records a page-load error, keeping the previously rendered items
// untouched. Stale errors are dropped.
func (p *Paginator[T]) Fail(seq int, err error) bool {
	if seq != p.seq {
		return false
	}
	p.Loading = false
	p.Err = err
	return true
}

// Reset clears all state, e.g. when the query behind the pages changes.
func (p *Paginator[T]) Reset() {
	p.seq++
	p.Items = nil
	p.TotalCount = 0
	p.TotalPages = 0
	p.Current = 0
	p.Loading = false
	p.Err = nil
}
