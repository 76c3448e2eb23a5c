package invoices

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compras/internal/core/apperror"
	"compras/internal/core/types"
)

// Mock objects

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	byID     map[int64]*Invoice
	nextID   int64
	updates  int
	failNext error // returned by the next Update call, then cleared
	listErr  error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: make(map[int64]*Invoice), nextID: 1}
}

func (r *fakeInvoiceRepo) List(ctx context.Context) ([]*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		copied := *inv
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("invoice", id)
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *Invoice) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *inv
	copied.ID = r.nextID
	r.nextID++
	r.byID[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, inv *Invoice) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	if _, ok := r.byID[inv.ID]; !ok {
		return nil, apperror.NewNotFound("invoice", inv.ID)
	}
	copied := *inv
	r.byID[inv.ID] = &copied
	r.updates++
	result := copied
	return &result, nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return apperror.NewNotFound("invoice", id)
	}
	delete(r.byID, id)
	return nil
}

type fakeLineRepo struct {
	mu         sync.Mutex
	byID       map[int64]*LineItem
	nextID     int64
	creates    int
	failCreate func(n int) error // called with 1-based create ordinal
	listErr    error
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{byID: make(map[int64]*LineItem), nextID: 1}
}

func (r *fakeLineRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*LineItem, 0)
	for _, li := range r.byID {
		if li.InvoiceID == invoiceID {
			copied := *li
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) Create(ctx context.Context, li *LineItem) (*LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.failCreate != nil {
		if err := r.failCreate(r.creates); err != nil {
			return nil, err
		}
	}
	copied := *li
	copied.ID = r.nextID
	r.nextID++
	r.byID[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeLineRepo) Update(ctx context.Context, li *LineItem) (*LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[li.ID]; !ok {
		return nil, apperror.NewNotFound("line item", li.ID)
	}
	copied := *li
	r.byID[li.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeLineRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return apperror.NewNotFound("line item", id)
	}
	delete(r.byID, id)
	return nil
}

func storedInvoice(repo *fakeInvoiceRepo) *Invoice {
	inv := &Invoice{
		Number:                "TEMP-1",
		SupplierTaxID:         "1790012345001",
		SupplierInvoiceNumber: "001-001-000123",
		IssueDate:             time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentType:           PaymentCredit,
		Status:                StatusRegistered,
		Subtotal:              types.Zero(),
		Tax:                   types.Zero(),
		Total:                 types.Zero(),
	}
	created, _ := repo.Create(context.Background(), inv)
	return created
}

func TestSynchronizer_AddLineItem_RefreshesTotals(t *testing.T) {
	invRepo := newFakeInvoiceRepo()
	lineRepo := newFakeLineRepo()
	inv := storedInvoice(invRepo)

	s := NewSynchronizer(invRepo, lineRepo)

	li := &LineItem{
		InvoiceID:   inv.ID,
		ProductID:   7,
		ProductName: "Cemento",
		Quantity:    2,
		UnitPrice:   types.MustMoney("10.00"),
		TaxApplies:  true,
	}

	created, err := s.AddLineItem(context.Background(), li)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.NotZero(t, created.ID)
	assert.True(t, created.Subtotal.Equal(types.MustMoney("20.00")))

	stored, _ := invRepo.GetByID(context.Background(), inv.ID)
	assert.True(t, stored.Subtotal.Equal(types.MustMoney("20.00")), "header subtotal: %s", stored.Subtotal)
	assert.True(t, stored.Tax.Equal(types.MustMoney("3.00")), "header tax: %s", stored.Tax)
	assert.True(t, stored.Total.Equal(types.MustMoney("23.00")), "header total: %s", stored.Total)
}

func TestSynchronizer_AddLineItem_ValidationSkipsStore(t *testing.T) {
	invRepo := newFakeInvoiceRepo()
	lineRepo := newFakeLineRepo()
	inv := storedInvoice(invRepo)

	s := NewSynchronizer(invRepo, lineRepo)

	_, err := s.AddLineItem(context.Background(), &LineItem{
		InvoiceID:   inv.ID,
		ProductID:   7,
		ProductName: "Cemento",
		Quantity:    0, // invalid
		UnitPrice:   types.MustMoney("10.00"),
	})

	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, 0, lineRepo.creates, "no store call on invalid input")
}

func TestSynchronizer_AddLineItem_StaleTotalsSurface(t *testing.T) {
	invRepo := newFakeInvoiceRepo()
	lineRepo := newFakeLineRepo()
	inv := storedInvoice(invRepo)

	invRepo.failNext = errors.New("store down")

	s := NewSynchronizer(invRepo, lineRepo)

	created, err := s.AddLineItem(context.Background(), &LineItem{
		InvoiceID:   inv.ID,
		ProductID:   7,
		ProductName: "Cemento",
		Quantity:    1,
		UnitPrice:   types.MustMoney("10.00"),
		TaxApplies:  true,
	})

	if !apperror.IsTotalsStale(err) {
		t.Fatalf("expected TOTALS_STALE, got %v", err)
	}
	assert.NotNil(t, created, "committed line item must be returned despite the stale header")

	// The line survived on the store even though the header refresh failed.
	lines, _ := lineRepo.ListByInvoice(context.Background(), inv.ID)
	assert.Len(t, lines, 1)
}

func TestSynchronizer_DeleteLastLineItem_ZeroesTotals(t *testing.T) {
	invRepo := newFakeInvoiceRepo()
	lineRepo := newFakeLineRepo()
	inv := storedInvoice(invRepo)

	s := NewSynchronizer(invRepo, lineRepo)

	created, err := s.AddLineItem(context.Background(), &LineItem{
		InvoiceID:   inv.ID,
		ProductID:   7,
		ProductName: "Cemento",
		Quantity:    2,
		UnitPrice:   types.MustMoney("15.00"),
		TaxApplies:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteLineItem(context.Background(), created.ID, inv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := invRepo.GetByID(context.Background(), inv.ID)
	assert.True(t, stored.Subtotal.IsZero())
	assert.True(t, stored.Tax.IsZero())
	assert.True(t, stored.Total.IsZero())
}

func TestSynchronizer_UpdateLineItem_RederivesTotals(t *testing.T) {
	invRepo := newFakeInvoiceRepo()
	lineRepo := newFakeLineRepo()
	inv := storedInvoice(invRepo)

	s := NewSynchronizer(invRepo, lineRepo)

	created, err := s.AddLineItem(context.Background(), &LineItem{
		InvoiceID:   inv.ID,
		ProductID:   7,
		ProductName: "Cemento",
		Quantity:    1,
		UnitPrice:   types.MustMoney("10.00"),
		TaxApplies:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created.Quantity = 5
	// Stored derived fields are stale on purpose; the synchronizer must
	// recompute them, not trust them.
	updated, err := s.UpdateLineItem(context.Background(), created)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.True(t, updated.Subtotal.Equal(types.MustMoney("50.00")))

	stored, _ := invRepo.GetByID(context.Background(), inv.ID)
	assert.True(t, stored.Total.Equal(types.MustMoney("57.50")), "header total: %s", stored.Total)
}
