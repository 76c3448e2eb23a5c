package invoices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compras/internal/core/apperror"
	"compras/internal/core/types"
	"compras/internal/domain/catalogs/product"
)

type fakeCatalog struct {
	products map[int64]*product.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]*product.Product{
		7: {ID: 7, Name: "Cemento", UnitPrice: types.MustMoney("10.00")},
		8: {ID: 8, Name: "Varilla", UnitPrice: types.MustMoney("2.50")},
	}}
}

func (c *fakeCatalog) List(ctx context.Context) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out, nil
}

func (c *fakeCatalog) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, apperror.NewNotFound("product", id)
	}
	return p, nil
}

func testService() (*Service, *fakeInvoiceRepo, *fakeLineRepo) {
	invRepo := newFakeInvoiceRepo()
	lineRepo := newFakeLineRepo()
	return NewService(invRepo, lineRepo, newFakeCatalog()), invRepo, lineRepo
}

func draftInvoice() *Invoice {
	return &Invoice{
		SupplierTaxID:         "1790012345001",
		SupplierInvoiceNumber: "001-001-000123",
		IssueDate:             time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentType:           PaymentCredit,
	}
}

func TestService_Create_AssignsNumberAndStatus(t *testing.T) {
	svc, _, _ := testService()

	created, err := svc.Create(context.Background(), draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, StatusRegistered, created.Status)
	assert.Contains(t, created.Number, "TEMP-")
	assert.True(t, created.Total.IsZero())
}

func TestService_Create_RejectsDuplicateSupplierNumber(t *testing.T) {
	svc, _, _ := testService()

	if _, err := svc.Create(context.Background(), draftInvoice(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Create(context.Background(), draftInvoice(), nil)
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeDuplicateInvoice, appErr.Code)
}

func TestService_Create_DuplicateIgnoresStatus(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cancelled invoices still hold the (supplier, number) pair.
	_, err = svc.Create(ctx, draftInvoice(), nil)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeDuplicateInvoice, appErr.Code)
}

func TestService_Update_AllowsSameInvoice(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created.PaymentType = PaymentCash
	updated, err := svc.Update(ctx, created)
	if err != nil {
		t.Fatalf("update against own number must not be a duplicate: %v", err)
	}
	assert.Equal(t, PaymentCash, updated.PaymentType)
}

func TestService_Update_PreservesTotalsAndNumber(t *testing.T) {
	svc, invRepo, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), []LineItemInput{
		{ProductID: 7, Quantity: 2, TaxApplies: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A header edit as it arrives over the API: no internal number, no
	// totals, no status.
	edit := &Invoice{
		ID:                    created.ID,
		SupplierTaxID:         created.SupplierTaxID,
		SupplierInvoiceNumber: created.SupplierInvoiceNumber,
		IssueDate:             created.IssueDate,
		PaymentType:           PaymentCash,
	}

	updated, err := svc.Update(ctx, edit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, PaymentCash, updated.PaymentType)

	stored, _ := invRepo.GetByID(ctx, created.ID)
	assert.Equal(t, created.Number, stored.Number, "internal number survives header edits")
	assert.Equal(t, StatusRegistered, stored.Status)
	assert.True(t, stored.Subtotal.Equal(types.MustMoney("20.00")), "subtotal: %s", stored.Subtotal)
	assert.True(t, stored.Total.Equal(types.MustMoney("23.00")), "total: %s", stored.Total)
}

func TestService_Create_WithLines_RefreshesTotals(t *testing.T) {
	svc, invRepo, _ := testService()

	created, err := svc.Create(context.Background(), draftInvoice(), []LineItemInput{
		{ProductID: 7, Quantity: 2, TaxApplies: true},
		{ProductID: 8, Quantity: 4, TaxApplies: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := invRepo.GetByID(context.Background(), created.ID)
	// 2*10 + 4*2.50 = 30; tax 15% of 20 = 3
	assert.True(t, stored.Subtotal.Equal(types.MustMoney("30.00")), "subtotal: %s", stored.Subtotal)
	assert.True(t, stored.Tax.Equal(types.MustMoney("3.00")), "tax: %s", stored.Tax)
	assert.True(t, stored.Total.Equal(types.MustMoney("33.00")), "total: %s", stored.Total)
}

func TestService_Create_WithLines_StoresDerivedFields(t *testing.T) {
	svc, _, lineRepo := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), []LineItemInput{
		{ProductID: 7, Quantity: 2, TaxApplies: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines, _ := lineRepo.ListByInvoice(ctx, created.ID)
	if !assert.Len(t, lines, 1) {
		t.FailNow()
	}
	li := lines[0]
	assert.Equal(t, "Cemento", li.ProductName)
	assert.True(t, li.Subtotal.Equal(types.MustMoney("20.00")), "subtotal: %s", li.Subtotal)
	assert.True(t, li.Tax.Equal(types.MustMoney("3.00")), "tax: %s", li.Tax)
	assert.True(t, li.Total.Equal(types.MustMoney("23.00")), "total: %s", li.Total)
}

func TestService_Create_WithLines_InvalidQuantity(t *testing.T) {
	svc, invRepo, lineRepo := testService()
	ctx := context.Background()

	_, err := svc.Create(ctx, draftInvoice(), []LineItemInput{
		{ProductID: 7, Quantity: 0, TaxApplies: true},
	})
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	// Nothing reached the line store and the header was compensated away.
	assert.Equal(t, 0, lineRepo.creates)
	all, _ := invRepo.List(ctx)
	assert.Empty(t, all)
}

func TestService_Create_LineFailureRollsBack(t *testing.T) {
	svc, invRepo, lineRepo := testService()

	lineRepo.failCreate = func(n int) error {
		if n == 2 {
			return errors.New("store rejected the line")
		}
		return nil
	}

	_, err := svc.Create(context.Background(), draftInvoice(), []LineItemInput{
		{ProductID: 7, Quantity: 1, TaxApplies: true},
		{ProductID: 8, Quantity: 1, TaxApplies: true},
	})
	if err == nil {
		t.Fatal("expected error")
	}

	// Header and surviving lines were compensated away.
	all, _ := invRepo.List(context.Background())
	assert.Empty(t, all, "header must not survive a partial create")
	assert.Empty(t, lineRepo.byID, "created lines must be compensated")
}

func TestService_AddLineItem_ResolvesProduct(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	li, err := svc.AddLineItem(ctx, created.ID, LineItemInput{
		ProductID:  7,
		Quantity:   3,
		TaxApplies: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, "Cemento", li.ProductName, "name comes from the catalog")
	assert.True(t, li.UnitPrice.Equal(types.MustMoney("10.00")), "price auto-filled from the catalog")
}

func TestService_AddLineItem_UnknownProduct(t *testing.T) {
	svc, _, lineRepo := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.AddLineItem(ctx, created.ID, LineItemInput{ProductID: 999, Quantity: 1})
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, 0, lineRepo.creates)
}

func TestService_AddLineItem_PriceOverride(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	override := types.MustMoney("9.25")
	li, err := svc.AddLineItem(ctx, created.ID, LineItemInput{
		ProductID: 7,
		Quantity:  1,
		UnitPrice: &override,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.True(t, li.UnitPrice.Equal(override))
}

func TestService_LineMutations_BlockedWhenPrinted(t *testing.T) {
	svc, _, lineRepo := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	li, err := svc.AddLineItem(ctx, created.ID, LineItemInput{ProductID: 7, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Print(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.AddLineItem(ctx, created.ID, LineItemInput{ProductID: 8, Quantity: 1})
	assertLocked(t, err)

	_, err = svc.UpdateLineItem(ctx, li.ID, created.ID, LineItemInput{ProductID: 7, Quantity: 2})
	assertLocked(t, err)

	err = svc.DeleteLineItem(ctx, li.ID, created.ID)
	assertLocked(t, err)

	lines, _ := lineRepo.ListByInvoice(ctx, created.ID)
	assert.Len(t, lines, 1, "frozen invoice lines must be untouched")
}

func TestService_LineMutations_BlockedWhenCancelled(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.AddLineItem(ctx, created.ID, LineItemInput{ProductID: 7, Quantity: 1})
	assertLocked(t, err)
}

func TestService_Print_OnlyFromRegistered(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Print(ctx, created.ID)
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestService_Cancel_Twice(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Cancel(ctx, created.ID)
	assert.Error(t, err, "double cancel must be rejected")
}

func TestService_Cancel_KeepsTotals(t *testing.T) {
	svc, invRepo, _ := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), []LineItemInput{
		{ProductID: 7, Quantity: 2, TaxApplies: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := invRepo.GetByID(ctx, created.ID)
	assert.Equal(t, StatusCancelled, stored.Status)
	assert.True(t, stored.Total.Equal(types.MustMoney("23.00")), "cancellation keeps totals: %s", stored.Total)
}

func TestService_Delete_RemovesLinesFirst(t *testing.T) {
	svc, invRepo, lineRepo := testService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftInvoice(), []LineItemInput{
		{ProductID: 7, Quantity: 1},
		{ProductID: 8, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Empty(t, lineRepo.byID)
	assert.Empty(t, invRepo.byID)
}

func assertLocked(t *testing.T, err error) {
	t.Helper()
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeInvoiceLocked, appErr.Code)
}
