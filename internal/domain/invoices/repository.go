package invoices

import (
	"context"
)

// Repository is the invoice-header boundary to the remote procurement store.
// Implementations translate to REST calls; non-2xx responses surface as
// apperror storage errors.
type Repository interface {
	// List retrieves all invoice headers.
	List(ctx context.Context) ([]*Invoice, error)

	// GetByID retrieves one invoice header.
	GetByID(ctx context.Context, id int64) (*Invoice, error)

	// Create stores a new header and returns it with the store-assigned id.
	Create(ctx context.Context, inv *Invoice) (*Invoice, error)

	// Update overwrites the header. The store requires the full
	// representation on write.
	Update(ctx context.Context, inv *Invoice) (*Invoice, error)

	// Delete removes the header. Used by invoice deletion and by saga
	// compensation when inline line-item creation fails.
	Delete(ctx context.Context, id int64) error
}

// LineItemRepository is the line-item boundary to the remote procurement store.
type LineItemRepository interface {
	// ListByInvoice retrieves the line items belonging to one invoice.
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*LineItem, error)

	// Create stores a new line item (derived fields included) and returns it
	// with the store-assigned id.
	Create(ctx context.Context, item *LineItem) (*LineItem, error)

	// Update overwrites the line item.
	Update(ctx context.Context, item *LineItem) (*LineItem, error)

	// Delete removes the line item.
	Delete(ctx context.Context, id int64) error
}
