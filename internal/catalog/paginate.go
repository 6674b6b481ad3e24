package catalog

import "campusmarket/internal/domain"

// Page is the slice of a listing actually rendered, plus what the
// pagination controls need. TotalPages of 0 or 1 suppresses the controls.
type Page struct {
	Items      []domain.Product
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// Paginate returns the 1-based page of the given size, clipped to bounds. A
// page past the end yields an empty slice, never an error.
func Paginate(products []domain.Product, size, page int) Page {
	if size <= 0 {
		size = 12
	}
	if page < 1 {
		page = 1
	}
	total := len(products)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return Page{
		Items:      products[start:end],
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// HasPagination reports whether controls should render at all.
func (p Page) HasPagination() bool { return p.TotalPages > 1 }

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }
func (p Page) Prev() int     { return p.Number - 1 }
func (p Page) Next() int     { return p.Number + 1 }

// Pages lists the page numbers for the controls, with 0 standing in for an
// ellipsis gap around the current page.
func (p Page) Pages() []int {
	const delta = 2
	var pages []int
	if 1 < p.Number-delta {
		pages = append(pages, 1)
		if 2 < p.Number-delta {
			pages = append(pages, 0)
		}
	}
	for i := max(1, p.Number-delta); i <= min(p.TotalPages, p.Number+delta); i++ {
		pages = append(pages, i)
	}
	if p.TotalPages > p.Number+delta {
		if p.TotalPages-1 > p.Number+delta {
			pages = append(pages, 0)
		}
		pages = append(pages, p.TotalPages)
	}
	return pages
}
