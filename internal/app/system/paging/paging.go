// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the number of rows shown in paged lists. Browse and forum
// lists filter in memory, so paging here is a plain slice window.
const PageSize = 20

// ParseStart extracts the 1-based "start" query parameter.
// Returns 1 if missing or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Page describes one window into a list for the pager controls.
type Page struct {
	Start     int // 1-based index of the first shown row (0 if empty)
	End       int // 1-based index of the last shown row (0 if empty)
	Total     int
	HasPrev   bool
	HasNext   bool
	PrevStart int
	NextStart int
}

// Window slices rows to the page beginning at start (1-based) and returns
// the trimmed slice with its pager values. A start beyond the end of the
// list falls back to the last page rather than showing nothing.
func Window[T any](rows []T, start int) ([]T, Page) {
	total := len(rows)
	if total == 0 {
		return rows, Page{PrevStart: 1, NextStart: 1}
	}

	if start < 1 {
		start = 1
	}
	if start > total {
		start = ((total - 1) / PageSize * PageSize) + 1
	}

	end := start + PageSize - 1
	if end > total {
		end = total
	}

	prevStart := start - PageSize
	if prevStart < 1 {
		prevStart = 1
	}

	return rows[start-1 : end], Page{
		Start:     start,
		End:       end,
		Total:     total,
		HasPrev:   start > 1,
		HasNext:   end < total,
		PrevStart: prevStart,
		NextStart: end + 1,
	}
}
