package invoices

import (
	"context"
	"fmt"

	"compras/internal/core/apperror"
	"compras/pkg/logger"
)

// Synchronizer keeps invoice header totals consistent with line items across
// add, update and delete. Each entry point is two-phase: commit the line-item
// mutation, then refresh the header totals. A failure in the second phase is
// surfaced as a distinct TOTALS_STALE error because the first phase has
// already committed on the remote store - there is no rollback.
type Synchronizer struct {
	invoices Repository
	lines    LineItemRepository
}

// NewSynchronizer creates a totals synchronizer over the remote store.
func NewSynchronizer(invoices Repository, lines LineItemRepository) *Synchronizer {
	return &Synchronizer{
		invoices: invoices,
		lines:    lines,
	}
}

// AddLineItem validates, derives and stores a new line item, then refreshes
// the owning invoice's totals. No network call is made when validation fails.
func (s *Synchronizer) AddLineItem(ctx context.Context, item *LineItem) (*LineItem, error) {
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	item.ApplyDerived()

	created, err := s.lines.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeInvoiceTotals(ctx, item.InvoiceID); err != nil {
		return created, apperror.NewTotalsStale(item.InvoiceID, err)
	}

	logger.Info(ctx, "line item added",
		"line_item_id", created.ID,
		"invoice_id", created.InvoiceID)

	return created, nil
}

// UpdateLineItem validates, derives and overwrites an existing line item,
// then refreshes the owning invoice's totals.
func (s *Synchronizer) UpdateLineItem(ctx context.Context, item *LineItem) (*LineItem, error) {
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	item.ApplyDerived()

	updated, err := s.lines.Update(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeInvoiceTotals(ctx, item.InvoiceID); err != nil {
		return updated, apperror.NewTotalsStale(item.InvoiceID, err)
	}

	logger.Info(ctx, "line item updated",
		"line_item_id", updated.ID,
		"invoice_id", updated.InvoiceID)

	return updated, nil
}

// DeleteLineItem removes a line item, then refreshes the owning invoice's
// totals.
func (s *Synchronizer) DeleteLineItem(ctx context.Context, lineItemID, invoiceID int64) error {
	if err := s.lines.Delete(ctx, lineItemID); err != nil {
		return err
	}

	if err := s.RecomputeInvoiceTotals(ctx, invoiceID); err != nil {
		return apperror.NewTotalsStale(invoiceID, err)
	}

	logger.Info(ctx, "line item deleted",
		"line_item_id", lineItemID,
		"invoice_id", invoiceID)

	return nil
}

// RecomputeInvoiceTotals re-reads the invoice's line items, aggregates them
// and writes the refreshed totals back to the header via a full PUT. Every
// failure is wrapped with context so the stale-total condition is never
// silently swallowed.
func (s *Synchronizer) RecomputeInvoiceTotals(ctx context.Context, invoiceID int64) error {
	items, err := s.lines.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("recompute invoice totals: list line items: %w", err)
	}

	totals := ComputeInvoiceTotals(items)

	// The store requires the full header representation on write, so fetch
	// the current one and merge the totals in.
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("recompute invoice totals: get invoice: %w", err)
	}

	inv.Subtotal = totals.Subtotal
	inv.Tax = totals.Tax
	inv.Total = totals.Total

	// Defensive re-validation of the merged header. A failure here is a data
	// error on the store side, not a transient fault.
	if err := inv.Validate(ctx); err != nil {
		return fmt.Errorf("recompute invoice totals: stored invoice invalid: %w", err)
	}

	if _, err := s.invoices.Update(ctx, inv); err != nil {
		return fmt.Errorf("recompute invoice totals: update invoice: %w", err)
	}

	logger.Debug(ctx, "invoice totals recomputed",
		"invoice_id", invoiceID,
		"subtotal", totals.Subtotal.String(),
		"tax", totals.Tax.String(),
		"total", totals.Total.String())

	return nil
}
