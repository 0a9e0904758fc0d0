// Package paging slices ordered sequences into fixed-size pages and tracks
// the page a list view is showing.
package paging

// Paginate returns page pageNumber (1-based) of seq with pageSize items per
// page. The last page may be short. Out-of-range pages and non-positive
// sizes yield an empty slice. The result shares seq's backing array.
func Paginate[T any](seq []T, pageSize, pageNumber int) []T {
	if pageSize <= 0 || pageNumber <= 0 {
		return seq[:0:0]
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(seq) {
		return seq[:0:0]
	}
	end := min(start+pageSize, len(seq))
	return seq[start:end:end]
}

// PageCount returns ceil(len(seq)/pageSize), 0 for an empty sequence or a
// non-positive size.
func PageCount[T any](seq []T, pageSize int) int {
	return Pages(len(seq), pageSize)
}

// Pages is PageCount for a known item count.
func Pages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Pager holds the current page of a list view. The zero value is not ready;
// use NewPager.
type Pager struct {
	current int
}

// NewPager returns a pager positioned on the first page.
func NewPager() *Pager {
	return &Pager{current: 1}
}

// PagerAt returns a pager that moved from page 1 to target when target is
// within [1, pageCount], or stayed on page 1 otherwise.
func PagerAt(target, pageCount int) *Pager {
	p := NewPager()
	p.ChangePage(target, pageCount)
	return p
}

// Current returns the page being shown.
func (p *Pager) Current() int { return p.current }

// ChangePage moves to target if 1 <= target <= pageCount and reports
// whether it did. Rejected targets leave the current page as it was.
func (p *Pager) ChangePage(target, pageCount int) bool {
	if target < 1 || target > pageCount {
		return false
	}
	p.current = target
	return true
}

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool { return p.current > 1 }

// HasNext reports whether a page after the current one exists.
func (p *Pager) HasNext(pageCount int) bool { return p.current < pageCount }
