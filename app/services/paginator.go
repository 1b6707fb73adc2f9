package services

import "strconv"

// Page is one page of a listing.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Total    int
}

func (p *Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p *Page[T]) HasOtherPages() bool {
	return p.NumPages > 1
}
func (p *Page[T]) NextNumber() int     { return p.Number + 1 }
func (p *Page[T]) PreviousNumber() int { return p.Number - 1 }

// PageRange lists every page number, for the paginator template.
func (p *Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}

// Paginator splits a listing of total items into pages of size perPage.
type Paginator struct {
	perPage int
}

func NewPaginator(perPage int) Paginator {
	if perPage < 1 {
		perPage = 10
	}
	return Paginator{perPage: perPage}
}

// ParsePage turns the ?page= value into a page number. Anything that is
// not a positive number gives page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Window clamps number into range for total items and returns it with the
// matching limit and offset. There is always at least one page.
func (p Paginator) Window(number, total int) (page, limit, offset int, numPages int) {
	numPages = (total + p.perPage - 1) / p.perPage
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	return number, p.perPage, (number - 1) * p.perPage, numPages
}
