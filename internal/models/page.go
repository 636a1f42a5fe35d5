package models

// Page is one page of a listing along with enough metadata for clients to
// render pagination controls.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	PageCount  int   `json:"page_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

// NewPage computes PageCount as ceil(totalCount/limit).
func NewPage[T any](items []T, totalCount int64, page, limit int) Page[T] {
	pageCount := int((totalCount + int64(limit) - 1) / int64(limit))
	return Page[T]{
		Items:      items,
		TotalCount: totalCount,
		PageCount:  pageCount,
		Page:       page,
		Limit:      limit,
	}
}
