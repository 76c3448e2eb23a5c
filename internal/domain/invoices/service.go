package invoices

import (
	"context"
	"fmt"
	"sync"
	"time"

	"compras/internal/core/apperror"
	"compras/internal/core/types"
	"compras/internal/domain/catalogs/product"
	"compras/pkg/logger"
)

// LineItemInput carries the client-controllable fields of a line item.
// Derived fields are always recomputed server-side; the product name is
// resolved from the catalog, never trusted from the client.
type LineItemInput struct {
	ProductID  int64
	Quantity   int
	TaxApplies bool

	// UnitPrice overrides the catalog price when set. When nil the price is
	// auto-filled from the product catalog, mirroring the price auto-fill in
	// the entry form.
	UnitPrice *types.Money
}

// Service provides business operations for purchase invoices. It owns the
// guards and orchestration around the Synchronizer: status checks, the
// duplicate invoice-number constraint, product resolution and the
// create-with-lines saga.
type Service struct {
	invoices Repository
	lines    LineItemRepository
	catalog  product.Catalog
	sync     *Synchronizer
}

// NewService creates a new invoice service.
func NewService(invoices Repository, lines LineItemRepository, catalog product.Catalog) *Service {
	return &Service{
		invoices: invoices,
		lines:    lines,
		catalog:  catalog,
		sync:     NewSynchronizer(invoices, lines),
	}
}

// List retrieves all invoice headers.
func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.invoices.List(ctx)
}

// GetByID retrieves an invoice header with its line items.
func (s *Service) GetByID(ctx context.Context, invoiceID int64) (*Invoice, []*LineItem, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.lines.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("get line items: %w", err)
	}

	return inv, items, nil
}

// ListLineItems retrieves the line items of one invoice.
func (s *Service) ListLineItems(ctx context.Context, invoiceID int64) ([]*LineItem, error) {
	return s.lines.ListByInvoice(ctx, invoiceID)
}

// Create stores a new invoice header, optionally with an initial set of line
// items. The header is created first, the line items are created with
// concurrent fan-out, and the header totals are refreshed at the end.
//
// Compensation policy: when any line-item create fails, the already-created
// line items and the header are deleted (best effort) and the whole
// operation reports failure. The source application left this case
// inconsistent; here the partial header never survives.
func (s *Service) Create(ctx context.Context, inv *Invoice, items []LineItemInput) (*Invoice, error) {
	if inv.Status == "" {
		inv.Status = StatusRegistered
	}

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, inv.SupplierTaxID, inv.SupplierInvoiceNumber, 0); err != nil {
		return nil, err
	}

	// Internal number assigned at creation, as the store expects one.
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("TEMP-%d", time.Now().UnixMilli())
	}

	inv.Subtotal = types.Zero()
	inv.Tax = types.Zero()
	inv.Total = types.Zero()

	created, err := s.invoices.Create(ctx, inv)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"invoice_id", created.ID,
		"supplier_tax_id", created.SupplierTaxID,
		"supplier_invoice_number", created.SupplierInvoiceNumber)

	if len(items) == 0 {
		return created, nil
	}

	if err := s.createLinesFanOut(ctx, created.ID, items); err != nil {
		return nil, err
	}

	if err := s.sync.RecomputeInvoiceTotals(ctx, created.ID); err != nil {
		return created, apperror.NewTotalsStale(created.ID, err)
	}

	// Re-read so the returned header carries the refreshed totals.
	return s.invoices.GetByID(ctx, created.ID)
}

// createLinesFanOut creates the initial line items concurrently and
// compensates on partial failure.
func (s *Service) createLinesFanOut(ctx context.Context, invoiceID int64, items []LineItemInput) error {
	lineItems := make([]*LineItem, len(items))
	for i, in := range items {
		item, err := s.resolveLineItem(ctx, invoiceID, in)
		if err == nil {
			err = item.Validate(ctx)
		}
		if err != nil {
			// Validation failed before any detail write; only the header
			// needs compensating.
			s.compensateCreate(ctx, invoiceID, nil)
			return err
		}
		item.ApplyDerived()
		lineItems[i] = item
	}

	created := make([]*LineItem, len(lineItems))
	errs := make([]error, len(lineItems))

	var wg sync.WaitGroup
	for i, item := range lineItems {
		wg.Add(1)
		go func(i int, item *LineItem) {
			defer wg.Done()
			created[i], errs[i] = s.lines.Create(ctx, item)
		}(i, item)
	}
	wg.Wait()

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}
	if firstErr == nil {
		return nil
	}

	s.compensateCreate(ctx, invoiceID, created)
	return apperror.NewStorage("invoice creation rolled back: line items could not be stored").
		WithDetail("invoice_id", invoiceID).
		WithCause(firstErr)
}

// compensateCreate removes the partially created invoice: any line items that
// made it to the store, then the header. Best effort; failures are logged.
func (s *Service) compensateCreate(ctx context.Context, invoiceID int64, created []*LineItem) {
	for _, item := range created {
		if item == nil {
			continue
		}
		if err := s.lines.Delete(ctx, item.ID); err != nil {
			logger.Warn(ctx, "compensation: delete line item failed",
				"line_item_id", item.ID, "error", err)
		}
	}

	if err := s.invoices.Delete(ctx, invoiceID); err != nil {
		logger.Warn(ctx, "compensation: delete invoice failed",
			"invoice_id", invoiceID, "error", err)
	}
}

// Update overwrites an invoice header after re-checking the duplicate
// constraint (excluding the invoice itself). The internal number and the
// totals are server-owned: they are carried over from the stored header, so
// an edit shaped like an API request never blanks them. Totals belong to the
// Synchronizer.
func (s *Service) Update(ctx context.Context, inv *Invoice) (*Invoice, error) {
	stored, err := s.invoices.GetByID(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	inv.Number = stored.Number
	inv.Subtotal = stored.Subtotal
	inv.Tax = stored.Tax
	inv.Total = stored.Total
	if inv.Status == "" {
		inv.Status = stored.Status
	}

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, inv.SupplierTaxID, inv.SupplierInvoiceNumber, inv.ID); err != nil {
		return nil, err
	}

	return s.invoices.Update(ctx, inv)
}

// Delete removes an invoice and all of its line items.
func (s *Service) Delete(ctx context.Context, invoiceID int64) error {
	items, err := s.lines.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("list line items: %w", err)
	}

	for _, item := range items {
		if err := s.lines.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("delete line item %d: %w", item.ID, err)
		}
	}

	return s.invoices.Delete(ctx, invoiceID)
}

// Print transitions the invoice to Impresa via a full header update.
func (s *Service) Print(ctx context.Context, invoiceID int64) (*Invoice, error) {
	return s.transition(ctx, invoiceID, (*Invoice).MarkPrinted)
}

// Cancel transitions the invoice to Cancelada via a full header update.
// Cancellation freezes further line-item modification but keeps totals.
func (s *Service) Cancel(ctx context.Context, invoiceID int64) (*Invoice, error) {
	return s.transition(ctx, invoiceID, (*Invoice).MarkCancelled)
}

func (s *Service) transition(ctx context.Context, invoiceID int64, mark func(*Invoice) error) (*Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	// Defensive check: the stored header must still satisfy the schema
	// before it is written back in full.
	if err := inv.Validate(ctx); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("stored invoice %d invalid: %w", invoiceID, err))
	}

	if err := mark(inv); err != nil {
		return nil, err
	}

	updated, err := s.invoices.Update(ctx, inv)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice status changed",
		"invoice_id", invoiceID,
		"status", string(updated.Status))

	return updated, nil
}

// AddLineItem adds one line item to an invoice and refreshes its totals.
// The status guard runs before any mutation call reaches the store.
func (s *Service) AddLineItem(ctx context.Context, invoiceID int64, in LineItemInput) (*LineItem, error) {
	if err := s.guardMutable(ctx, invoiceID); err != nil {
		return nil, err
	}

	item, err := s.resolveLineItem(ctx, invoiceID, in)
	if err != nil {
		return nil, err
	}

	return s.sync.AddLineItem(ctx, item)
}

// UpdateLineItem overwrites one line item and refreshes the invoice totals.
// The product reference is immutable: the input's product id must match the
// stored one.
func (s *Service) UpdateLineItem(ctx context.Context, lineItemID, invoiceID int64, in LineItemInput) (*LineItem, error) {
	if err := s.guardMutable(ctx, invoiceID); err != nil {
		return nil, err
	}

	item, err := s.resolveLineItem(ctx, invoiceID, in)
	if err != nil {
		return nil, err
	}
	item.ID = lineItemID

	return s.sync.UpdateLineItem(ctx, item)
}

// DeleteLineItem removes one line item and refreshes the invoice totals.
func (s *Service) DeleteLineItem(ctx context.Context, lineItemID, invoiceID int64) error {
	if err := s.guardMutable(ctx, invoiceID); err != nil {
		return err
	}

	return s.sync.DeleteLineItem(ctx, lineItemID, invoiceID)
}

// guardMutable rejects line-item mutation for printed and cancelled invoices.
func (s *Service) guardMutable(ctx context.Context, invoiceID int64) error {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	return inv.CanModifyLines()
}

// resolveLineItem builds a LineItem from client input, resolving the product
// name (and the price, when omitted) from the catalog.
func (s *Service) resolveLineItem(ctx context.Context, invoiceID int64, in LineItemInput) (*LineItem, error) {
	item := &LineItem{
		InvoiceID:  invoiceID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		TaxApplies: in.TaxApplies,
	}

	prod, err := s.catalog.GetByID(ctx, in.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("product name could not be resolved").
				WithDetail("field", "productId").
				WithDetail("value", in.ProductID)
		}
		return nil, err
	}

	item.ProductName = prod.Name
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	} else {
		item.UnitPrice = prod.UnitPrice
	}

	return item, nil
}

// checkDuplicate scans all invoices for another one sharing the
// (supplier tax id, supplier invoice number) pair. The store does not
// enforce this constraint, so it lives here. Status is deliberately ignored:
// cancelled invoices still block the pair.
func (s *Service) checkDuplicate(ctx context.Context, supplierTaxID, supplierInvoiceNumber string, excludeID int64) error {
	all, err := s.invoices.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing invoices: %w", err)
	}

	for _, other := range all {
		if other.ID == excludeID {
			continue
		}
		if other.SupplierTaxID == supplierTaxID &&
			other.SupplierInvoiceNumber == supplierInvoiceNumber {
			return apperror.NewDuplicateInvoice(supplierTaxID, supplierInvoiceNumber)
		}
	}

	return nil
}
