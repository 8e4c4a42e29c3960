package models

// Pagination summarizes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count for a total. Pages is zero when the
// result set is empty, matching the wire contract of the list endpoints.
func NewPagination(page, size, total int) Pagination {
	pages := 0
	if total > 0 && size > 0 {
		pages = (total + size - 1) / size
	}
	return Pagination{Page: page, Size: size, Total: total, Pages: pages}
}
