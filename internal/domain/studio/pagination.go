package studio

// TotalPages returns ceil(n / size); zero for an empty list.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageSlice returns the 1-indexed page of items, clamped to the list bounds.
// The result aliases items.
func PageSlice[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return items[:0:0]
	}
	start := (page - 1) * size
	if start >= len(items) {
		return items[:0:0]
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}
