package model

import "strconv"

// Pagination is the page arithmetic for one container view.
type Pagination struct {
	TotalItems int
	PageSize   int
}

// PageCount is 0 for an empty container, otherwise ceil(total/size).
func (p Pagination) PageCount() int {
	if p.TotalItems <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.TotalItems-1)/p.PageSize + 1
}

func (p Pagination) HasNext(pageNr int) bool { return pageNr < p.PageCount()-1 }

func (p Pagination) HasPrev(pageNr int) bool { return pageNr > 0 }

// FirstPosition is the 0-based offset of the first item on pageNr. The
// sequence manager is 1-based, so callers add one.
func (p Pagination) FirstPosition(pageNr int) int { return pageNr * p.PageSize }

// ViewIRI identifies the preference-scoped view of a container.
func ViewIRI(container string, irisOnly bool) string {
	if irisOnly {
		return container + "?iris=1"
	}
	return container + "?iris=0"
}

// PageIRI identifies one page of a container view.
func PageIRI(container string, irisOnly bool, pageNr int) string {
	return ViewIRI(container, irisOnly) + "&page=" + strconv.Itoa(pageNr)
}
