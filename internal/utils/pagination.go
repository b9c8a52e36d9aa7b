package utils

import (
	"strconv"
	"strings"

	"github.com/yukikurage/blog-api/internal/constants"
)

// Paginator splits an ordered collection of count items into pages of
// perPage items. A trailing page holding orphans items or fewer is merged
// into the page before it.
type Paginator struct {
	Count   int64
	PerPage int
	Orphans int
}

// Page describes one page of a Paginator. HasOtherPages is set when the
// collection spans more than one page.
type Page struct {
	Number        int   `json:"number"`
	NumPages      int   `json:"num_pages"`
	Count         int64 `json:"count"`
	Offset        int   `json:"-"`
	Limit         int   `json:"-"`
	HasNext       bool  `json:"has_next"`
	HasPrevious   bool  `json:"has_previous"`
	HasOtherPages bool  `json:"has_other_pages"`
}

// NewPaginator creates a Paginator. perPage is raised to 1 and orphans to 0
// when smaller.
func NewPaginator(count int64, perPage, orphans int) Paginator {
	if count < 0 {
		count = 0
	}
	if perPage < 1 {
		perPage = 1
	}
	if orphans < 0 {
		orphans = 0
	}
	return Paginator{Count: count, PerPage: perPage, Orphans: orphans}
}

// NumPages returns the number of pages. An empty collection has one empty page.
func (p Paginator) NumPages() int {
	hits := p.Count - int64(p.Orphans)
	if hits < 1 {
		hits = 1
	}
	perPage := int64(p.PerPage)
	return int((hits + perPage - 1) / perPage)
}

// Page returns the requested page, clamped to [1, NumPages].
func (p Paginator) Page(number int) Page {
	numPages := p.NumPages()
	if number < constants.MinPage {
		number = constants.MinPage
	}
	if number > numPages {
		number = numPages
	}

	bottom := int64(number-1) * int64(p.PerPage)
	top := bottom + int64(p.PerPage)
	if top+int64(p.Orphans) >= p.Count {
		top = p.Count
	}
	if top < bottom {
		top = bottom
	}

	return Page{
		Number:        number,
		NumPages:      numPages,
		Count:         p.Count,
		Offset:        int(bottom),
		Limit:         int(top - bottom),
		HasNext:       number < numPages,
		HasPrevious:   number > constants.MinPage,
		HasOtherPages: numPages > 1,
	}
}

// GetPage parses a raw page parameter. Missing or non-numeric values select
// the first page; out-of-range values are clamped.
func (p Paginator) GetPage(raw string) Page {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		number = constants.MinPage
	}
	return p.Page(number)
}
