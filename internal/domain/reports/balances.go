// Package reports builds read-only reports over the procurement data:
// currently the outstanding supplier balances report and its PDF rendering.
package reports

import (
	"context"
	"sort"
	"time"

	"compras/internal/core/types"
	"compras/internal/domain/catalogs/supplier"
	"compras/internal/domain/invoices"
	"compras/pkg/logger"
)

// UnknownSupplierName is shown when an invoice references a tax id no longer
// present in the supplier catalog.
const UnknownSupplierName = "Proveedor Desconocido"

// SupplierBalance is one row of the balances report: the sum of outstanding
// credit invoices for one supplier within the report period.
type SupplierBalance struct {
	SupplierTaxID string      `json:"supplierTaxId"`
	SupplierName  string      `json:"supplierName"`
	InvoiceCount  int         `json:"invoiceCount"`
	Balance       types.Money `json:"balance"`
}

// BalancesReport is the full report with its period and grand total.
type BalancesReport struct {
	From  time.Time          `json:"from"`
	To    time.Time          `json:"to"`
	Rows  []*SupplierBalance `json:"rows"`
	Total types.Money        `json:"total"`
}

// Service aggregates invoices into reports.
type Service struct {
	invoices  invoices.Repository
	suppliers supplier.Repository
}

// NewService creates a new reports service.
func NewService(inv invoices.Repository, sup supplier.Repository) *Service {
	return &Service{invoices: inv, suppliers: sup}
}

// SupplierBalances computes the outstanding balance per supplier over the
// given period. An invoice counts when it is paid on credit, not cancelled
// and issued within [from, to] inclusive. Suppliers whose sum is zero or
// negative are dropped from the report.
func (s *Service) SupplierBalances(ctx context.Context, from, to time.Time) (*BalancesReport, error) {
	all, err := s.invoices.List(ctx)
	if err != nil {
		return nil, err
	}

	byTaxID := make(map[string]*SupplierBalance)
	for _, inv := range all {
		if !countsTowardBalance(inv, from, to) {
			continue
		}

		row, ok := byTaxID[inv.SupplierTaxID]
		if !ok {
			row = &SupplierBalance{
				SupplierTaxID: inv.SupplierTaxID,
				Balance:       types.Zero(),
			}
			byTaxID[inv.SupplierTaxID] = row
		}
		row.InvoiceCount++
		row.Balance = row.Balance.Add(inv.Total)
	}

	names, err := s.supplierNames(ctx)
	if err != nil {
		return nil, err
	}

	report := &BalancesReport{From: from, To: to, Total: types.Zero()}
	for _, row := range byTaxID {
		if !row.Balance.IsPositive() {
			continue
		}

		row.SupplierName = names[row.SupplierTaxID]
		if row.SupplierName == "" {
			row.SupplierName = UnknownSupplierName
		}

		report.Rows = append(report.Rows, row)
		report.Total = report.Total.Add(row.Balance)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].SupplierName < report.Rows[j].SupplierName
	})

	logger.Debug(ctx, "supplier balances computed",
		"rows", len(report.Rows),
		"total", report.Total.String())

	return report, nil
}

func countsTowardBalance(inv *invoices.Invoice, from, to time.Time) bool {
	if inv.PaymentType != invoices.PaymentCredit {
		return false
	}
	if inv.Status == invoices.StatusCancelled {
		return false
	}
	if inv.IssueDate.Before(from) || inv.IssueDate.After(to) {
		return false
	}
	return true
}

func (s *Service) supplierNames(ctx context.Context) (map[string]string, error) {
	all, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(all))
	for _, sup := range all {
		names[sup.TaxID] = sup.Name
	}
	return names, nil
}
