package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compras/internal/core/apperror"
	"compras/internal/core/types"
	"compras/internal/domain/catalogs/supplier"
	"compras/internal/domain/invoices"
)

type fakeInvoices struct {
	items []*invoices.Invoice
}

func (f *fakeInvoices) List(ctx context.Context) ([]*invoices.Invoice, error) {
	return f.items, nil
}

func (f *fakeInvoices) GetByID(ctx context.Context, id int64) (*invoices.Invoice, error) {
	return nil, apperror.NewNotFound("invoice", id)
}

func (f *fakeInvoices) Create(ctx context.Context, inv *invoices.Invoice) (*invoices.Invoice, error) {
	return inv, nil
}

func (f *fakeInvoices) Update(ctx context.Context, inv *invoices.Invoice) (*invoices.Invoice, error) {
	return inv, nil
}

func (f *fakeInvoices) Delete(ctx context.Context, id int64) error { return nil }

type fakeSuppliers struct {
	items []*supplier.Supplier
}

func (f *fakeSuppliers) List(ctx context.Context) ([]*supplier.Supplier, error) {
	return f.items, nil
}

func (f *fakeSuppliers) GetByTaxID(ctx context.Context, taxID string) (*supplier.Supplier, error) {
	return nil, apperror.NewNotFound("supplier", taxID)
}

func (f *fakeSuppliers) Create(ctx context.Context, s *supplier.Supplier) (*supplier.Supplier, error) {
	return s, nil
}

func (f *fakeSuppliers) Update(ctx context.Context, s *supplier.Supplier) (*supplier.Supplier, error) {
	return s, nil
}

func (f *fakeSuppliers) Delete(ctx context.Context, taxID string) error { return nil }

func day(d int) time.Time {
	return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
}

func credit(taxID string, issued time.Time, total string, status invoices.Status) *invoices.Invoice {
	return &invoices.Invoice{
		SupplierTaxID: taxID,
		IssueDate:     issued,
		PaymentType:   invoices.PaymentCredit,
		Status:        status,
		Total:         types.MustMoney(total),
	}
}

func TestSupplierBalances_Rules(t *testing.T) {
	cash := credit("111", day(5), "50.00", invoices.StatusRegistered)
	cash.PaymentType = invoices.PaymentCash

	inv := &fakeInvoices{items: []*invoices.Invoice{
		credit("111", day(5), "100.00", invoices.StatusRegistered),
		credit("111", day(10), "20.00", invoices.StatusPrinted),
		credit("111", day(12), "999.00", invoices.StatusCancelled), // cancelled: out
		cash, // cash: out
		credit("111", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "999.00", invoices.StatusRegistered), // out of period
		credit("222", day(20), "75.50", invoices.StatusRegistered),
	}}
	sup := &fakeSuppliers{items: []*supplier.Supplier{
		{TaxID: "111", Name: "Ferretería El Constructor"},
		{TaxID: "222", Name: "Distribuidora Andina"},
	}}

	svc := NewService(inv, sup)
	report, err := svc.SupplierBalances(context.Background(), day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assert.Len(t, report.Rows, 2) {
		t.FailNow()
	}

	// Rows sorted by supplier name.
	assert.Equal(t, "Distribuidora Andina", report.Rows[0].SupplierName)
	assert.True(t, report.Rows[0].Balance.Equal(types.MustMoney("75.50")))

	assert.Equal(t, "Ferretería El Constructor", report.Rows[1].SupplierName)
	assert.Equal(t, 2, report.Rows[1].InvoiceCount)
	assert.True(t, report.Rows[1].Balance.Equal(types.MustMoney("120.00")), "got %s", report.Rows[1].Balance)

	assert.True(t, report.Total.Equal(types.MustMoney("195.50")), "got %s", report.Total)
}

func TestSupplierBalances_PeriodBoundsInclusive(t *testing.T) {
	inv := &fakeInvoices{items: []*invoices.Invoice{
		credit("111", day(1), "10.00", invoices.StatusRegistered),
		credit("111", day(30), "20.00", invoices.StatusRegistered),
	}}
	svc := NewService(inv, &fakeSuppliers{})

	report, err := svc.SupplierBalances(context.Background(), day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assert.Len(t, report.Rows, 1) {
		t.FailNow()
	}
	assert.True(t, report.Rows[0].Balance.Equal(types.MustMoney("30.00")))
}

func TestSupplierBalances_DropsNonPositive(t *testing.T) {
	inv := &fakeInvoices{items: []*invoices.Invoice{
		credit("111", day(5), "0.00", invoices.StatusRegistered),
		{
			SupplierTaxID: "222",
			IssueDate:     day(6),
			PaymentType:   invoices.PaymentCredit,
			Status:        invoices.StatusRegistered,
			Total:         types.MustMoney("-15.00"), // credit note
		},
	}}
	svc := NewService(inv, &fakeSuppliers{})

	report, err := svc.SupplierBalances(context.Background(), day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Empty(t, report.Rows)
	assert.True(t, report.Total.IsZero())
}

func TestSupplierBalances_UnknownSupplierName(t *testing.T) {
	inv := &fakeInvoices{items: []*invoices.Invoice{
		credit("999", day(5), "40.00", invoices.StatusRegistered),
	}}
	svc := NewService(inv, &fakeSuppliers{})

	report, err := svc.SupplierBalances(context.Background(), day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assert.Len(t, report.Rows, 1) {
		t.FailNow()
	}
	assert.Equal(t, UnknownSupplierName, report.Rows[0].SupplierName)
}

func TestRenderBalancesPDF(t *testing.T) {
	report := &BalancesReport{
		From:  day(1),
		To:    day(30),
		Total: types.MustMoney("120.00"),
		Rows: []*SupplierBalance{
			{SupplierTaxID: "111", SupplierName: "Ferretería El Constructor", InvoiceCount: 2, Balance: types.MustMoney("120.00")},
		},
	}

	pdf, err := RenderBalancesPDF(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
