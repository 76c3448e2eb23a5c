package supplier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"compras/internal/core/apperror"
)

func validSupplier() *Supplier {
	return &Supplier{
		TaxID:        "1790012345001",
		Name:         "Ferretería El Constructor",
		City:         "Quito",
		Address:      "Av. Amazonas N34-451",
		Phone:        "022345678",
		Email:        "ventas@elconstructor.ec",
		PaymentTerms: TermsCredit,
		Active:       true,
	}
}

func TestSupplierValidate_OK(t *testing.T) {
	assert.NoError(t, validSupplier().Validate(context.Background()))
}

func TestSupplierValidate_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Supplier)
		field  string
	}{
		{"tax id too short", func(s *Supplier) { s.TaxID = "12345" }, "taxId"},
		{"tax id too long", func(s *Supplier) { s.TaxID = "123456789012345678901" }, "taxId"},
		{"name too short", func(s *Supplier) { s.Name = "AB" }, "name"},
		{"city too short", func(s *Supplier) { s.City = "Qu" }, "city"},
		{"address too short", func(s *Supplier) { s.Address = "N34" }, "address"},
		{"phone too short", func(s *Supplier) { s.Phone = "02234" }, "phone"},
		{"bad email", func(s *Supplier) { s.Email = "not-an-email" }, "email"},
		{"email without domain", func(s *Supplier) { s.Email = "ventas@" }, "email"},
		{"bad payment terms", func(s *Supplier) { s.PaymentTerms = "Cheque" }, "paymentTerms"},
		{"whitespace only name", func(s *Supplier) { s.Name = "    " }, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSupplier()
			tc.mutate(s)

			err := s.Validate(context.Background())
			appErr, ok := apperror.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tc.field, appErr.Details["field"])
		})
	}
}

func TestSupplierValidate_CashTerms(t *testing.T) {
	s := validSupplier()
	s.PaymentTerms = TermsCash
	assert.NoError(t, s.Validate(context.Background()))
}
