package dto

import (
	"time"

	"compras/internal/domain/catalogs/supplier"
)

// SupplierRequest for creating or updating a supplier. Field-level rules
// (lengths, email format) are enforced in the domain layer.
type SupplierRequest struct {
	TaxID        string `json:"taxId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	City         string `json:"city" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"required"`
	PaymentTerms string `json:"paymentTerms" binding:"required"`
	Active       *bool  `json:"active"`
}

// ToDomain converts to a domain supplier. Active defaults to true.
func (r *SupplierRequest) ToDomain() *supplier.Supplier {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &supplier.Supplier{
		TaxID:        r.TaxID,
		Name:         r.Name,
		City:         r.City,
		Address:      r.Address,
		Phone:        r.Phone,
		Email:        r.Email,
		PaymentTerms: supplier.PaymentTerms(r.PaymentTerms),
		Active:       active,
	}
}

// SupplierResponse represents a supplier in API responses.
type SupplierResponse struct {
	TaxID        string     `json:"taxId"`
	Name         string     `json:"name"`
	City         string     `json:"city"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	PaymentTerms string     `json:"paymentTerms"`
	Active       bool       `json:"active"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// FromSupplier creates response from domain supplier.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		TaxID:        s.TaxID,
		Name:         s.Name,
		City:         s.City,
		Address:      s.Address,
		Phone:        s.Phone,
		Email:        s.Email,
		PaymentTerms: string(s.PaymentTerms),
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// FromSuppliers maps a slice of domain suppliers.
func FromSuppliers(items []*supplier.Supplier) []*SupplierResponse {
	result := make([]*SupplierResponse, len(items))
	for i, s := range items {
		result[i] = FromSupplier(s)
	}
	return result
}
