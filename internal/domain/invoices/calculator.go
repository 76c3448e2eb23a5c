package invoices

import (
	"compras/internal/core/types"
)

// TaxRate is the fixed value-added-tax rate applied to taxable line items.
// Not configurable per invoice.
var TaxRate = types.MustMoney("0.15")

// Totals carries the three derived monetary fields shared by line items and
// invoice headers.
type Totals struct {
	Subtotal types.Money
	Tax      types.Money
	Total    types.Money
}

// ZeroTotals returns all-zero totals (the state of an invoice with no items).
func ZeroTotals() Totals {
	return Totals{
		Subtotal: types.Zero(),
		Tax:      types.Zero(),
		Total:    types.Zero(),
	}
}

// ComputeLineItem derives subtotal, tax and total for a single line item.
// Pure: no side effects, no I/O. Input validation is the caller's job
// (LineItem.Validate).
func ComputeLineItem(quantity int, unitPrice types.Money, taxApplies bool) Totals {
	subtotal := unitPrice.Mul(types.NewMoneyFromInt(int64(quantity)))

	tax := types.Zero()
	if taxApplies {
		tax = subtotal.Mul(TaxRate)
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ComputeInvoiceTotals derives header totals from the full set of an
// invoice's line items. Empty input yields zeros; the sums are
// order-independent.
func ComputeInvoiceTotals(items []*LineItem) Totals {
	totals := ZeroTotals()
	for _, item := range items {
		totals.Subtotal = totals.Subtotal.Add(item.Subtotal)
		totals.Tax = totals.Tax.Add(item.Tax)
	}
	totals.Total = totals.Subtotal.Add(totals.Tax)
	return totals
}

// ApplyDerived recomputes the stored derived fields from quantity, unit price
// and the tax flag. Must be called on every path that creates or updates a
// line item.
func (li *LineItem) ApplyDerived() {
	t := ComputeLineItem(li.Quantity, li.UnitPrice, li.TaxApplies)
	li.Subtotal = t.Subtotal
	li.Tax = t.Tax
	li.Total = t.Total
}
