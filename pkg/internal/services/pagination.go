package services

import (
	"strconv"
	"strings"
)

const DefaultPageSize = 10

type Paginator struct {
	PageSize int
}

// NewPaginator falls back to DefaultPageSize when size is not positive.
func NewPaginator(size int) Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Paginator{PageSize: size}
}

// PageWindow is the position of one page inside a sequence of Total items.
type PageWindow struct {
	Number      int
	TotalPages  int
	Total       int64
	Offset      int
	Limit       int
	HasNext     bool
	HasPrevious bool
}

// InRange reports whether the window points at an existing page.
func (w PageWindow) InRange() bool {
	return w.Number <= w.TotalPages
}

func (p Paginator) Window(total int64, number int) PageWindow {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if number <= 0 {
		number = 1
	}
	if total < 0 {
		total = 0
	}

	pages := int((total + int64(size) - 1) / int64(size))
	return PageWindow{
		Number:      number,
		TotalPages:  pages,
		Total:       total,
		Offset:      (number - 1) * size,
		Limit:       size,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
}

type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func NewPage[T any](window PageWindow, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      window.Number,
		TotalPages:  window.TotalPages,
		Count:       window.Total,
		HasNext:     window.HasNext,
		HasPrevious: window.HasPrevious,
	}
}

// Paginate slices an in-memory sequence. It keeps no state between calls.
func Paginate[T any](p Paginator, items []T, number int) Page[T] {
	window := p.Window(int64(len(items)), number)
	if !window.InRange() {
		return NewPage[T](window, nil)
	}
	end := min(window.Offset+window.Limit, len(items))
	out := make([]T, end-window.Offset)
	copy(out, items[window.Offset:end])
	return NewPage(window, out)
}

// ParsePageNumber reads a client supplied page number, anything malformed is page 1.
func ParsePageNumber(raw string) int {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number <= 0 {
		return 1
	}
	return number
}
