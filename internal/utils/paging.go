package utils

// NormalizePage clamps a requested page and page size. A missing size takes
// def, and sizes above max are capped.
func NormalizePage(page, size, def, max int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	if max > 0 && size > max {
		size = max
	}
	return page, size
}

// TotalPages returns how many pages of size hold total items.
func TotalPages(total, size int32) int32 {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
