package pagination

// Ellipsis marks a gap in the visible page window.
const Ellipsis = -1

// Paginator slices an ordered list into fixed-size pages. The current page is
// always within [1, TotalPages]; whenever the length of the item list changes
// the current page resets to 1 so a shrunken result set cannot leave the view
// on an out-of-range empty page.
type Paginator[T any] struct {
	items       []T
	perPage     int
	currentPage int
}

func New[T any](perPage int) *Paginator[T] {
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator[T]{
		perPage:     perPage,
		currentPage: 1,
	}
}

// SetItems replaces the paginated list. A length change resets the current
// page to 1; replacing with a same-length list keeps the position.
func (p *Paginator[T]) SetItems(items []T) {
	if len(items) != len(p.items) {
		p.currentPage = 1
	}
	p.items = items
}

// SetPerPage changes the page size and resets to the first page.
func (p *Paginator[T]) SetPerPage(perPage int) {
	if perPage < 1 {
		return
	}
	p.perPage = perPage
	p.currentPage = 1
}

func (p *Paginator[T]) CurrentPage() int {
	return p.currentPage
}

func (p *Paginator[T]) PerPage() int {
	return p.perPage
}

func (p *Paginator[T]) TotalItems() int {
	return len(p.items)
}

// TotalPages is at least 1, so an empty list still has a valid current page.
func (p *Paginator[T]) TotalPages() int {
	pages := (len(p.items) + p.perPage - 1) / p.perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// PageItems returns the slice of items on the current page.
func (p *Paginator[T]) PageItems() []T {
	start := p.StartIndex()
	end := p.EndIndex()
	if start >= len(p.items) {
		return nil
	}
	return p.items[start:end]
}

func (p *Paginator[T]) StartIndex() int {
	return (p.currentPage - 1) * p.perPage
}

func (p *Paginator[T]) EndIndex() int {
	end := p.StartIndex() + p.perPage
	if end > len(p.items) {
		end = len(p.items)
	}
	return end
}

// GoToPage moves to page n. Out-of-range requests are silently ignored.
func (p *Paginator[T]) GoToPage(n int) {
	if n >= 1 && n <= p.TotalPages() {
		p.currentPage = n
	}
}

func (p *Paginator[T]) GoToNext() {
	if p.HasNext() {
		p.currentPage++
	}
}

func (p *Paginator[T]) GoToPrevious() {
	if p.HasPrevious() {
		p.currentPage--
	}
}

func (p *Paginator[T]) GoToFirst() {
	p.currentPage = 1
}

func (p *Paginator[T]) GoToLast() {
	p.currentPage = p.TotalPages()
}

func (p *Paginator[T]) HasNext() bool {
	return p.currentPage < p.TotalPages()
}

func (p *Paginator[T]) HasPrevious() bool {
	return p.currentPage > 1
}

// VisiblePages returns the page numbers to display, with Ellipsis marking
// collapsed ranges. When every page fits within maxVisible all pages are
// shown; otherwise the first and last page are always shown along with a
// window of up to three pages around the current page, clamped near the edges.
func (p *Paginator[T]) VisiblePages(maxVisible int) []int {
	totalPages := p.TotalPages()

	if totalPages <= maxVisible {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}

	start := max(2, p.currentPage-1)
	end := min(totalPages-1, p.currentPage+1)

	if p.currentPage <= 2 {
		start = 2
		end = 4
	} else if p.currentPage >= totalPages-1 {
		start = totalPages - 3
		end = totalPages - 1
	}

	if start > 2 {
		pages = append(pages, Ellipsis)
	}

	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	if end < totalPages-1 {
		pages = append(pages, Ellipsis)
	}

	return append(pages, totalPages)
}
