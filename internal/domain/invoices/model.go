// Package invoices provides the purchase invoice domain: headers, line items,
// derived totals and the synchronization of both against the remote
// procurement store.
package invoices

import (
	"context"
	"time"

	"compras/internal/core/apperror"
	"compras/internal/core/types"
)

// PaymentType defines how the invoice is paid.
type PaymentType string

const (
	PaymentCash   PaymentType = "Contado"
	PaymentCredit PaymentType = "Crédito"
)

// Status is the invoice lifecycle state.
// Registrada -> Impresa via Print; any non-cancelled state -> Cancelada via
// Cancel. Impresa and Cancelada are terminal with respect to line-item
// modification.
type Status string

const (
	StatusRegistered Status = "Registrada"
	StatusPrinted    Status = "Impresa"
	StatusCancelled  Status = "Cancelada"
)

// UnknownProductName is the sentinel the product catalog lookup yields when a
// product cannot be resolved. Line items carrying it are rejected.
const UnknownProductName = "Desconocido"

// Invoice is the purchase invoice header. Totals are derived from the
// invoice's line items and must match ComputeInvoiceTotals over them, except
// inside the narrow window after a line-item mutation whose totals refresh
// failed (surfaced as a TOTALS_STALE error).
type Invoice struct {
	ID int64 `json:"id"`

	// Number is the internal document number, assigned at creation.
	Number string `json:"number"`

	// SupplierTaxID and SupplierInvoiceNumber form the business identity of
	// the invoice; the pair must be unique across invoices.
	SupplierTaxID         string `json:"supplierTaxId"`
	SupplierInvoiceNumber string `json:"supplierInvoiceNumber"`

	IssueDate time.Time  `json:"issueDate"`
	DueDate   *time.Time `json:"dueDate,omitempty"`

	PaymentType PaymentType `json:"paymentType"`
	Status      Status      `json:"status"`

	// Totals derived from line items.
	Subtotal types.Money `json:"subtotal"`
	Tax      types.Money `json:"tax"`
	Total    types.Money `json:"total"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks invoice header invariants.
func (inv *Invoice) Validate(ctx context.Context) error {
	if inv.SupplierTaxID == "" {
		return apperror.NewValidation("supplier tax id is required").
			WithDetail("field", "supplierTaxId")
	}

	if inv.SupplierInvoiceNumber == "" {
		return apperror.NewValidation("supplier invoice number is required").
			WithDetail("field", "supplierInvoiceNumber")
	}

	if inv.IssueDate.IsZero() {
		return apperror.NewValidation("issue date is required").
			WithDetail("field", "issueDate")
	}

	if !isValidPaymentType(inv.PaymentType) {
		return apperror.NewValidation("invalid payment type").
			WithDetail("field", "paymentType").
			WithDetail("value", string(inv.PaymentType))
	}

	if !isValidStatus(inv.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(inv.Status))
	}

	return nil
}

// CanModifyLines checks whether line items may still be mutated.
// Printed and cancelled invoices are frozen.
func (inv *Invoice) CanModifyLines() error {
	if inv.Status == StatusPrinted || inv.Status == StatusCancelled {
		return apperror.NewInvoiceLocked(inv.ID, string(inv.Status))
	}
	return nil
}

// MarkPrinted transitions Registrada -> Impresa.
func (inv *Invoice) MarkPrinted() error {
	if inv.Status != StatusRegistered {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"only registered invoices can be printed",
		).WithDetail("status", string(inv.Status))
	}
	inv.Status = StatusPrinted
	return nil
}

// MarkCancelled transitions any non-cancelled state -> Cancelada.
func (inv *Invoice) MarkCancelled() error {
	if inv.Status == StatusCancelled {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"invoice is already cancelled",
		)
	}
	inv.Status = StatusCancelled
	return nil
}

// LineItem is one product entry on an invoice. Subtotal, Tax and Total are
// derived via ComputeLineItem and never taken from client input.
type LineItem struct {
	ID        int64 `json:"id"`
	InvoiceID int64 `json:"invoiceId"`
	ProductID int64 `json:"productId"`

	// ProductName is denormalized from the product catalog at creation time.
	ProductName string `json:"productName"`

	Quantity   int         `json:"quantity"`
	UnitPrice  types.Money `json:"unitPrice"`
	TaxApplies bool        `json:"taxApplies"`

	Subtotal types.Money `json:"subtotal"`
	Tax      types.Money `json:"tax"`
	Total    types.Money `json:"total"`
}

// Validate checks line item invariants. Runs before any network call.
func (li *LineItem) Validate(ctx context.Context) error {
	if li.InvoiceID == 0 {
		return apperror.NewValidation("invoice is required").
			WithDetail("field", "invoiceId")
	}

	if li.ProductID == 0 {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if li.ProductName == "" || li.ProductName == UnknownProductName {
		return apperror.NewValidation("product name could not be resolved").
			WithDetail("field", "productName")
	}

	if li.Quantity < 1 {
		return apperror.NewValidation("quantity must be at least 1").
			WithDetail("field", "quantity").
			WithDetail("value", li.Quantity)
	}

	if li.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	return nil
}

func isValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentCash, PaymentCredit:
		return true
	}
	return false
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusRegistered, StatusPrinted, StatusCancelled:
		return true
	}
	return false
}
