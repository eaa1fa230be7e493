package pagination

type OffsetResult[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasMore bool `json:"has_more"`
}

func NewOffsetResult[T any](items []T, total int, req OffsetRequest) *OffsetResult[T] {
	_, end := req.Bounds(total)
	return &OffsetResult[T]{
		Items:   items,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
		HasMore: end < total,
	}
}
