// Package product provides read-only access to the external product catalog.
// The catalog lives on a separate service; this package only models what the
// procurement flows need from it.
package product

import (
	"context"

	"compras/internal/core/types"
)

// Product is one catalog entry.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	UnitPrice   types.Money `json:"unitPrice"`
	CategoryID  int64       `json:"categoryId"`
}

// Catalog is the boundary to the external product service.
type Catalog interface {
	// List retrieves all products.
	List(ctx context.Context) ([]*Product, error)

	// GetByID retrieves one product. Returns an apperror not-found error
	// when the catalog does not know the id.
	GetByID(ctx context.Context, id int64) (*Product, error)
}
