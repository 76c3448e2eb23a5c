package dto

import (
	"time"

	"compras/internal/core/apperror"
	"compras/internal/core/types"
	"compras/internal/domain/invoices"
)

const dateLayout = "2006-01-02"

// InvoiceRequest for creating or updating an invoice header. Dates travel as
// yyyy-MM-dd strings. Totals are never accepted from clients.
type InvoiceRequest struct {
	SupplierTaxID         string `json:"supplierTaxId" binding:"required"`
	SupplierInvoiceNumber string `json:"supplierInvoiceNumber" binding:"required"`
	IssueDate             string `json:"issueDate" binding:"required"`
	DueDate               string `json:"dueDate"`
	PaymentType           string `json:"paymentType" binding:"required"`
	Status                string `json:"status"`

	// LineItems is honored on create only.
	LineItems []LineItemRequest `json:"lineItems"`
}

// ToDomain converts to a domain invoice header.
func (r *InvoiceRequest) ToDomain() (*invoices.Invoice, error) {
	issueDate, err := time.Parse(dateLayout, r.IssueDate)
	if err != nil {
		return nil, apperror.NewValidation("issue date must be yyyy-MM-dd").
			WithDetail("field", "issueDate").
			WithDetail("value", r.IssueDate)
	}

	inv := &invoices.Invoice{
		SupplierTaxID:         r.SupplierTaxID,
		SupplierInvoiceNumber: r.SupplierInvoiceNumber,
		IssueDate:             issueDate,
		PaymentType:           invoices.PaymentType(r.PaymentType),
		Status:                invoices.Status(r.Status),
	}

	if r.DueDate != "" {
		dueDate, err := time.Parse(dateLayout, r.DueDate)
		if err != nil {
			return nil, apperror.NewValidation("due date must be yyyy-MM-dd").
				WithDetail("field", "dueDate").
				WithDetail("value", r.DueDate)
		}
		inv.DueDate = &dueDate
	}

	return inv, nil
}

// ToLineInputs converts the inline line items of a create request.
func (r *InvoiceRequest) ToLineInputs() ([]invoices.LineItemInput, error) {
	inputs := make([]invoices.LineItemInput, len(r.LineItems))
	for i := range r.LineItems {
		in, err := r.LineItems[i].ToInput()
		if err != nil {
			return nil, err
		}
		inputs[i] = in
	}
	return inputs, nil
}

// LineItemRequest for creating or updating one invoice line.
type LineItemRequest struct {
	ProductID  int64  `json:"productId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	TaxApplies bool   `json:"taxApplies"`
	UnitPrice  string `json:"unitPrice"`
}

// ToInput converts to domain input. An empty unit price means the catalog
// price applies.
func (r *LineItemRequest) ToInput() (invoices.LineItemInput, error) {
	in := invoices.LineItemInput{
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		TaxApplies: r.TaxApplies,
	}

	if r.UnitPrice != "" {
		price, err := types.NewMoneyFromString(r.UnitPrice)
		if err != nil {
			return invoices.LineItemInput{}, apperror.NewValidation("invalid unit price").
				WithDetail("field", "unitPrice").
				WithDetail("value", r.UnitPrice)
		}
		in.UnitPrice = &price
	}

	return in, nil
}

// InvoiceResponse represents an invoice header in API responses.
type InvoiceResponse struct {
	ID                    int64      `json:"id"`
	Number                string     `json:"number"`
	SupplierTaxID         string     `json:"supplierTaxId"`
	SupplierInvoiceNumber string     `json:"supplierInvoiceNumber"`
	IssueDate             string     `json:"issueDate"`
	DueDate               string     `json:"dueDate,omitempty"`
	PaymentType           string     `json:"paymentType"`
	Status                string     `json:"status"`
	Subtotal              string     `json:"subtotal"`
	Tax                   string     `json:"tax"`
	Total                 string     `json:"total"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// FromInvoice creates response from domain invoice.
func FromInvoice(inv *invoices.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:                    inv.ID,
		Number:                inv.Number,
		SupplierTaxID:         inv.SupplierTaxID,
		SupplierInvoiceNumber: inv.SupplierInvoiceNumber,
		IssueDate:             inv.IssueDate.Format(dateLayout),
		PaymentType:           string(inv.PaymentType),
		Status:                string(inv.Status),
		Subtotal:              inv.Subtotal.StringFixed(2),
		Tax:                   inv.Tax.StringFixed(2),
		Total:                 inv.Total.StringFixed(2),
		CreatedAt:             inv.CreatedAt,
		UpdatedAt:             inv.UpdatedAt,
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format(dateLayout)
	}
	return resp
}

// FromInvoices maps a slice of domain invoices.
func FromInvoices(items []*invoices.Invoice) []*InvoiceResponse {
	result := make([]*InvoiceResponse, len(items))
	for i, inv := range items {
		result[i] = FromInvoice(inv)
	}
	return result
}

// LineItemResponse represents one invoice line in API responses.
type LineItemResponse struct {
	ID          int64  `json:"id"`
	InvoiceID   int64  `json:"invoiceId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	TaxApplies  bool   `json:"taxApplies"`
	Subtotal    string `json:"subtotal"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

// FromLineItem creates response from domain line item.
func FromLineItem(li *invoices.LineItem) *LineItemResponse {
	return &LineItemResponse{
		ID:          li.ID,
		InvoiceID:   li.InvoiceID,
		ProductID:   li.ProductID,
		ProductName: li.ProductName,
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice.StringFixed(2),
		TaxApplies:  li.TaxApplies,
		Subtotal:    li.Subtotal.StringFixed(2),
		Tax:         li.Tax.StringFixed(2),
		Total:       li.Total.StringFixed(2),
	}
}

// FromLineItems maps a slice of domain line items.
func FromLineItems(items []*invoices.LineItem) []*LineItemResponse {
	result := make([]*LineItemResponse, len(items))
	for i, li := range items {
		result[i] = FromLineItem(li)
	}
	return result
}

// InvoiceDetailResponse is an invoice header with its lines.
type InvoiceDetailResponse struct {
	*InvoiceResponse
	LineItems []*LineItemResponse `json:"lineItems"`
}
