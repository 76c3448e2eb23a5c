package supplier

import "context"

// Repository is the boundary to the remote supplier store. Suppliers are
// addressed by tax id throughout.
type Repository interface {
	List(ctx context.Context) ([]*Supplier, error)
	GetByTaxID(ctx context.Context, taxID string) (*Supplier, error)
	Create(ctx context.Context, s *Supplier) (*Supplier, error)
	Update(ctx context.Context, s *Supplier) (*Supplier, error)
	Delete(ctx context.Context, taxID string) error
}
