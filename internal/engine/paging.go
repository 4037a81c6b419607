package engine

// CanGoTo reports whether a zero-based page index is addressable given
// the page count. Out-of-range navigation is rejected and the caller
// keeps its current page.
func CanGoTo(index, totalPages int) bool {
	return index >= 0 && index < totalPages
}

// PageWindow returns up to five page indices centered on the current
// page, clamped to the valid range. This is the pagination strip on the
// patient list.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}

	start := current - 2
	end := current + 2
	if current < 2 {
		start = 0
		end = 4
	}
	if current > totalPages-3 {
		start = totalPages - 5
		end = totalPages - 1
	}
	if start < 0 {
		start = 0
	}
	if end > totalPages-1 {
		end = totalPages - 1
	}

	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}
