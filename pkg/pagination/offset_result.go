package pagination

// OffsetResult represents traditional offset-based pagination
type OffsetResult[T any] struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"page_size"`
	HasMore bool  `json:"has_more"`
	Items   []T   `json:"items"`
}

// NewOffsetResult creates a new offset-based result
func NewOffsetResult[T any](items []T, total int64, page int, size int) *OffsetResult[T] {
	offset := (page - 1) * size
	hasMore := int64(offset+size) < total

	if items == nil {
		items = []T{}
	}

	return &OffsetResult[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasMore: hasMore,
	}
}
