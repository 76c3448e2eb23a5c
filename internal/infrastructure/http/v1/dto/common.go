// Package dto provides data transfer objects for HTTP API.
package dto

// IDResponse carries the id of a created resource.
type IDResponse struct {
	ID int64 `json:"id"`
}

// SuccessResponse is a generic operation result.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListResponse wraps collection payloads.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse builds a list payload.
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Total: len(items)}
}
