package types

// ListResponse is a generic list response wrapper
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse creates a list response from the given items
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{
		Items: items,
		Total: len(items),
	}
}
