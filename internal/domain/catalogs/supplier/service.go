package supplier

import (
	"context"

	"compras/internal/core/apperror"
	"compras/pkg/logger"
)

// Service provides supplier catalog operations. Validation runs locally;
// persistence is delegated to the remote store.
type Service struct {
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all suppliers.
func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

// GetByTaxID retrieves one supplier by fiscal id.
func (s *Service) GetByTaxID(ctx context.Context, taxID string) (*Supplier, error) {
	return s.repo.GetByTaxID(ctx, taxID)
}

// Create validates and stores a new supplier. The tax id must not collide
// with an existing one.
func (s *Service) Create(ctx context.Context, sup *Supplier) (*Supplier, error) {
	if err := sup.Validate(ctx); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByTaxID(ctx, sup.TaxID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicate("supplier", "taxId", sup.TaxID)
	}

	created, err := s.repo.Create(ctx, sup)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "supplier created", "tax_id", created.TaxID)
	return created, nil
}

// Update validates and overwrites an existing supplier. The tax id is the
// key and cannot change.
func (s *Service) Update(ctx context.Context, sup *Supplier) (*Supplier, error) {
	if err := sup.Validate(ctx); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, sup)
}

// Delete removes a supplier from the catalog. Invoices referencing the tax
// id are untouched; the balances report falls back to a placeholder name.
func (s *Service) Delete(ctx context.Context, taxID string) error {
	if err := s.repo.Delete(ctx, taxID); err != nil {
		return err
	}

	logger.Info(ctx, "supplier deleted", "tax_id", taxID)
	return nil
}
