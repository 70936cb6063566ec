package pkg

import "strconv"

const DefaultPageSize = 10

// Page is one window of an ordered result set. Numbers are 1-indexed.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

type Window struct {
	Number     int
	TotalPages int
	Offset     int
	Limit      int
}

// ParsePageNumber turns the raw "page" query value into a requested number.
// Missing or non-integer values mean the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// NewWindow: out of range numbers, below 1 included, land on the last page.
// An empty result still has one empty page.
func NewWindow(count int64, number, size int) Window {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := int((count + int64(size) - 1) / int64(size))
	if total < 1 {
		total = 1
	}
	if number < 1 || number > total {
		number = total
	}
	return Window{
		Number:     number,
		TotalPages: total,
		Offset:     (number - 1) * size,
		Limit:      size,
	}
}

func NewPage[T any](items []T, count int64, w Window) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      w.Number,
		TotalPages:  w.TotalPages,
		Count:       count,
		HasNext:     w.Number < w.TotalPages,
		HasPrevious: w.Number > 1,
	}
}
