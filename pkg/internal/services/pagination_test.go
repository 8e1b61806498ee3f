package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatorWindow(t *testing.T) {
	p := NewPaginator(10)

	first := p.Window(11, 1)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, 0, first.Offset)
	assert.Equal(t, 10, first.Limit)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)
	assert.True(t, first.InRange())

	second := p.Window(11, 2)
	assert.Equal(t, 10, second.Offset)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.True(t, second.InRange())
}

func TestPaginatorClampsLowPageNumbers(t *testing.T) {
	p := NewPaginator(10)

	for _, number := range []int{0, -1, -100} {
		window := p.Window(25, number)
		assert.Equal(t, 1, window.Number)
		assert.Equal(t, 0, window.Offset)
		assert.False(t, window.HasPrevious)
	}
}

func TestPaginatorBeyondLastPage(t *testing.T) {
	p := NewPaginator(10)

	window := p.Window(11, 5)
	assert.False(t, window.InRange())
	assert.Equal(t, 5, window.Number)
	assert.Equal(t, 2, window.TotalPages)
	assert.False(t, window.HasNext)
	assert.True(t, window.HasPrevious)

	empty := p.Window(0, 1)
	assert.False(t, empty.InRange())
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}

func TestPaginatorPageCount(t *testing.T) {
	for _, size := range []int{1, 3, 10} {
		p := NewPaginator(size)
		for length := 0; length <= 31; length++ {
			items := make([]int, length)
			for i := range items {
				items[i] = i
			}

			first := Paginate(p, items, 1)
			pages := (length + size - 1) / size
			assert.Equal(t, pages, first.TotalPages, "size %d length %d", size, length)
			if pages == 0 {
				assert.Empty(t, first.Items)
				continue
			}

			last := Paginate(p, items, pages)
			expected := length % size
			if expected == 0 {
				expected = size
			}
			assert.Len(t, last.Items, expected, "size %d length %d", size, length)
			assert.False(t, last.HasNext)
			assert.Equal(t, length-1, last.Items[len(last.Items)-1])
		}
	}
}

func TestPaginateDoesNotShareState(t *testing.T) {
	p := NewPaginator(2)
	items := []string{"a", "b", "c"}

	page := Paginate(p, items, 1)
	assert.Equal(t, []string{"a", "b"}, page.Items)

	items = items[1:]
	page = Paginate(p, items, 1)
	assert.Equal(t, []string{"b", "c"}, page.Items)
	assert.Equal(t, 1, page.TotalPages)

	outside := Paginate(p, items, 3)
	assert.NotNil(t, outside.Items)
	assert.Empty(t, outside.Items)
}

func TestNewPaginatorDefaultsSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewPaginator(0).PageSize)
	assert.Equal(t, DefaultPageSize, NewPaginator(-5).PageSize)
	assert.Equal(t, 4, NewPaginator(4).PageSize)
}

func TestParsePageNumber(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-2":   1,
		"3":    3,
		" 7 ":  7,
		"1.5":  1,
		"9999": 9999,
	}
	for raw, expected := range cases {
		assert.Equal(t, expected, ParsePageNumber(raw), "raw %q", raw)
	}
}
