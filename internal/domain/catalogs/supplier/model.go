// Package supplier provides the supplier catalog: validation rules and CRUD
// operations proxied to the remote procurement store.
package supplier

import (
	"context"
	"regexp"
	"strings"
	"time"

	"compras/internal/core/apperror"
)

// PaymentTerms is the default payment arrangement agreed with a supplier.
type PaymentTerms string

const (
	TermsCash   PaymentTerms = "Contado"
	TermsCredit PaymentTerms = "Crédito"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Supplier is one entry of the supplier catalog. The fiscal id is the primary
// key: the remote store has no surrogate id for suppliers, and invoices link
// to suppliers by tax id.
type Supplier struct {
	// TaxID is the supplier's fiscal identifier (cedula or RUC).
	TaxID string `json:"taxId"`

	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`

	PaymentTerms PaymentTerms `json:"paymentTerms"`
	Active       bool         `json:"active"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the supplier's field constraints.
func (s *Supplier) Validate(ctx context.Context) error {
	taxID := strings.TrimSpace(s.TaxID)
	if len(taxID) < 10 || len(taxID) > 20 {
		return apperror.NewValidation("tax id must be between 10 and 20 characters").
			WithDetail("field", "taxId")
	}

	if len(strings.TrimSpace(s.Name)) < 3 {
		return apperror.NewValidation("name must be at least 3 characters").
			WithDetail("field", "name")
	}

	if len(strings.TrimSpace(s.City)) < 3 {
		return apperror.NewValidation("city must be at least 3 characters").
			WithDetail("field", "city")
	}

	if len(strings.TrimSpace(s.Address)) < 5 {
		return apperror.NewValidation("address must be at least 5 characters").
			WithDetail("field", "address")
	}

	if len(strings.TrimSpace(s.Phone)) < 7 {
		return apperror.NewValidation("phone must be at least 7 characters").
			WithDetail("field", "phone")
	}

	if !emailPattern.MatchString(s.Email) {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email").
			WithDetail("value", s.Email)
	}

	if s.PaymentTerms != TermsCash && s.PaymentTerms != TermsCredit {
		return apperror.NewValidation("invalid payment terms").
			WithDetail("field", "paymentTerms").
			WithDetail("value", string(s.PaymentTerms))
	}

	return nil
}
