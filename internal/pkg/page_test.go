package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageNumber(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"abc": 1,
		"2.0": 1,
		"3":   3,
		"0":   0,
		"-4":  -4,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePageNumber(raw), "raw=%q", raw)
	}
}

func TestNewWindow(t *testing.T) {
	w := NewWindow(15, 1, 10)
	assert.Equal(t, Window{Number: 1, TotalPages: 2, Offset: 0, Limit: 10}, w)

	w = NewWindow(15, 2, 10)
	assert.Equal(t, Window{Number: 2, TotalPages: 2, Offset: 10, Limit: 10}, w)

	// beyond the last page clamps to it
	w = NewWindow(15, 3, 10)
	assert.Equal(t, 2, w.Number)
	assert.Equal(t, 10, w.Offset)

	w = NewWindow(15, 0, 10)
	assert.Equal(t, 2, w.Number)

	w = NewWindow(0, 5, 10)
	assert.Equal(t, Window{Number: 1, TotalPages: 1, Offset: 0, Limit: 10}, w)

	w = NewWindow(20, 1, 0)
	assert.Equal(t, DefaultPageSize, w.Limit)
	assert.Equal(t, 2, w.TotalPages)
}

func TestNewPage(t *testing.T) {
	w := NewWindow(15, 2, 10)
	p := NewPage([]int{11, 12, 13, 14, 15}, 15, w)
	assert.Len(t, p.Items, 5)
	assert.Equal(t, 2, p.Number)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrevious)

	empty := NewPage[int](nil, 0, NewWindow(0, 1, 10))
	assert.NotNil(t, empty.Items)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}
