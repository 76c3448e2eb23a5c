// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes following domain-driven design
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeTimeout  = "TIMEOUT_ERROR"

	// Remote store errors (502)
	CodeStorage = "STORAGE_ERROR"

	// Consistency errors (502) - a mutation committed but a dependent
	// write failed, leaving derived data stale on the remote store
	CodeTotalsStale = "TOTALS_STALE"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Business rule violations (422)
	CodeBusinessRule  = "BUSINESS_RULE_VIOLATION"
	CodeInvoiceLocked = "INVOICE_LOCKED"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict         = "CONFLICT"
	CodeDuplicate        = "DUPLICATE_ENTRY"
	CodeDuplicateInvoice = "DUPLICATE_INVOICE"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, identifiers, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewBusinessRule creates a business rule violation error (422)
func NewBusinessRule(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewInvoiceLocked creates an error for mutations against a printed or
// cancelled invoice.
func NewInvoiceLocked(invoiceID int64, status string) *AppError {
	return &AppError{
		Code:       CodeInvoiceLocked,
		Message:    fmt.Sprintf("invoice in status %q cannot be modified", status),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"invoice_id": invoiceID, "status": status},
	}
}

// NewStorage creates a remote store error (502).
// Message is the text extracted from the store's error response.
func NewStorage(message string) *AppError {
	return &AppError{
		Code:       CodeStorage,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewTotalsStale creates a consistency error (502): the line-item mutation
// committed on the remote store, but refreshing the invoice header totals
// failed. The caller must be told the totals are stale, not just that the
// operation failed.
func NewTotalsStale(invoiceID int64, cause error) *AppError {
	return &AppError{
		Code:       CodeTotalsStale,
		Message:    "line item saved but invoice totals were not refreshed",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"invoice_id": invoiceID},
		Err:        cause,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// NewDuplicateInvoice creates the duplicate invoice-number error (409).
// Uniqueness of (supplier tax id, supplier invoice number) is an
// application-level constraint, not enforced by the remote store.
func NewDuplicateInvoice(supplierTaxID, supplierInvoiceNumber string) *AppError {
	return &AppError{
		Code:       CodeDuplicateInvoice,
		Message:    fmt.Sprintf("an invoice with number %q already exists for this supplier", supplierInvoiceNumber),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"supplier_tax_id":         supplierTaxID,
			"supplier_invoice_number": supplierInvoiceNumber,
		},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsTotalsStale checks if error is CodeTotalsStale
func IsTotalsStale(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeTotalsStale
	}
	return false
}
