package remote

import (
	"context"
	"fmt"

	"compras/internal/core/apperror"
	"compras/internal/domain/invoices"
)

// invoiceWire is the store representation of an invoice header.
type invoiceWire struct {
	ID                     flexInt     `json:"id,omitempty"`
	NumeroFactura          string      `json:"numero_factura"`
	ProveedorCedulaRuc     string      `json:"proveedor_cedula_ruc"`
	NumeroFacturaProveedor string      `json:"numero_factura_proveedor"`
	FechaEmision           wireDate    `json:"fecha_emision"`
	FechaVencimiento       *wireDate   `json:"fecha_vencimiento"`
	TipoPago               string      `json:"tipo_pago"`
	Estado                 string      `json:"estado"`
	Subtotal               flexNumber  `json:"subtotal"`
	Iva                    flexNumber  `json:"iva"`
	Total                  flexNumber  `json:"total"`
	FechaCreacion          *wireDate   `json:"fecha_creacion,omitempty"`
	FechaModificacion      *wireDate   `json:"fecha_modificacion,omitempty"`
	UsuarioCreacion        int64       `json:"usuario_creacion,omitempty"`
	UsuarioModificacion    int64       `json:"usuario_modificacion,omitempty"`
}

func (w *invoiceWire) toDomain() *invoices.Invoice {
	return &invoices.Invoice{
		ID:                    int64(w.ID),
		Number:                w.NumeroFactura,
		SupplierTaxID:         w.ProveedorCedulaRuc,
		SupplierInvoiceNumber: w.NumeroFacturaProveedor,
		IssueDate:             w.FechaEmision.Time,
		DueDate:               optionalTime(w.FechaVencimiento),
		PaymentType:           invoices.PaymentType(w.TipoPago),
		Status:                invoices.Status(w.Estado),
		Subtotal:              w.Subtotal.money(),
		Tax:                   w.Iva.money(),
		Total:                 w.Total.money(),
		CreatedAt:             optionalTime(w.FechaCreacion),
		UpdatedAt:             optionalTime(w.FechaModificacion),
	}
}

func invoiceToWire(inv *invoices.Invoice) invoiceWire {
	return invoiceWire{
		NumeroFactura:          inv.Number,
		ProveedorCedulaRuc:     inv.SupplierTaxID,
		NumeroFacturaProveedor: inv.SupplierInvoiceNumber,
		FechaEmision:           wireDate{Time: inv.IssueDate},
		FechaVencimiento:       optionalDate(inv.DueDate),
		TipoPago:               string(inv.PaymentType),
		Estado:                 string(inv.Status),
		Subtotal:               toFlex(inv.Subtotal),
		Iva:                    toFlex(inv.Tax),
		Total:                  toFlex(inv.Total),
	}
}

// InvoiceRepo proxies invoice headers to the procurement store.
type InvoiceRepo struct {
	client *Client
}

// NewInvoiceRepo creates an invoice repository over the procurement store.
func NewInvoiceRepo(client *Client) *InvoiceRepo {
	return &InvoiceRepo{client: client}
}

// List retrieves all invoice headers.
func (r *InvoiceRepo) List(ctx context.Context) ([]*invoices.Invoice, error) {
	var wires []invoiceWire
	if err := r.client.do(ctx, "GET", "/facturas", nil, &wires); err != nil {
		return nil, err
	}

	result := make([]*invoices.Invoice, len(wires))
	for i := range wires {
		result[i] = wires[i].toDomain()
	}
	return result, nil
}

// GetByID retrieves one invoice header.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*invoices.Invoice, error) {
	var wire invoiceWire
	if err := r.client.do(ctx, "GET", fmt.Sprintf("/facturas/%d", id), nil, &wire); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", id)
		}
		return nil, err
	}
	return wire.toDomain(), nil
}

// Create stores a new invoice header, stamping the acting user.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoices.Invoice) (*invoices.Invoice, error) {
	wire := invoiceToWire(inv)
	wire.UsuarioCreacion = actorID(ctx)

	var created invoiceWire
	if err := r.client.do(ctx, "POST", "/facturas", wire, &created); err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

// Update overwrites an invoice header via a full PUT, stamping the acting
// user as modifier.
func (r *InvoiceRepo) Update(ctx context.Context, inv *invoices.Invoice) (*invoices.Invoice, error) {
	wire := invoiceToWire(inv)
	wire.UsuarioModificacion = actorID(ctx)

	var updated invoiceWire
	if err := r.client.do(ctx, "PUT", fmt.Sprintf("/facturas/%d", inv.ID), wire, &updated); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", inv.ID)
		}
		return nil, err
	}

	// Some store versions reply with an empty body on PUT.
	if updated.ID == 0 {
		merged := *inv
		return &merged, nil
	}
	return updated.toDomain(), nil
}

// Delete removes an invoice header.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	if err := r.client.do(ctx, "DELETE", fmt.Sprintf("/facturas/%d", id), nil, nil); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("invoice", id)
		}
		return err
	}
	return nil
}

// lineItemWire is the store representation of one invoice line.
type lineItemWire struct {
	ID                  flexInt    `json:"id,omitempty"`
	FacturaID           flexInt    `json:"factura_id"`
	ProductoID          flexInt    `json:"producto_id"`
	NombreProducto      string     `json:"nombre_producto"`
	Cantidad            flexInt    `json:"cantidad"`
	PrecioUnitario      flexNumber `json:"precio_unitario"`
	AplicaIva           bool       `json:"aplica_iva"`
	Subtotal            flexNumber `json:"subtotal"`
	Iva                 flexNumber `json:"iva"`
	Total               flexNumber `json:"total"`
	UsuarioCreacion     int64      `json:"usuario_creacion,omitempty"`
	UsuarioModificacion int64      `json:"usuario_modificacion,omitempty"`
}

func (w *lineItemWire) toDomain() *invoices.LineItem {
	return &invoices.LineItem{
		ID:          int64(w.ID),
		InvoiceID:   int64(w.FacturaID),
		ProductID:   int64(w.ProductoID),
		ProductName: w.NombreProducto,
		Quantity:    int(w.Cantidad),
		UnitPrice:   w.PrecioUnitario.money(),
		TaxApplies:  w.AplicaIva,
		Subtotal:    w.Subtotal.money(),
		Tax:         w.Iva.money(),
		Total:       w.Total.money(),
	}
}

func lineItemToWire(li *invoices.LineItem) lineItemWire {
	return lineItemWire{
		FacturaID:      flexInt(li.InvoiceID),
		ProductoID:     flexInt(li.ProductID),
		NombreProducto: li.ProductName,
		Cantidad:       flexInt(li.Quantity),
		PrecioUnitario: toFlex(li.UnitPrice),
		AplicaIva:      li.TaxApplies,
		Subtotal:       toFlex(li.Subtotal),
		Iva:            toFlex(li.Tax),
		Total:          toFlex(li.Total),
	}
}

// LineItemRepo proxies invoice lines to the procurement store.
type LineItemRepo struct {
	client *Client
}

// NewLineItemRepo creates a line item repository over the procurement store.
func NewLineItemRepo(client *Client) *LineItemRepo {
	return &LineItemRepo{client: client}
}

// ListByInvoice retrieves the lines of one invoice. The store only exposes
// the full collection, so the filter happens here.
func (r *LineItemRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*invoices.LineItem, error) {
	var wires []lineItemWire
	if err := r.client.do(ctx, "GET", "/detalles-factura", nil, &wires); err != nil {
		return nil, err
	}

	result := make([]*invoices.LineItem, 0, len(wires))
	for i := range wires {
		if int64(wires[i].FacturaID) == invoiceID {
			result = append(result, wires[i].toDomain())
		}
	}
	return result, nil
}

// Create stores a new line, stamping the acting user.
func (r *LineItemRepo) Create(ctx context.Context, li *invoices.LineItem) (*invoices.LineItem, error) {
	wire := lineItemToWire(li)
	wire.UsuarioCreacion = actorID(ctx)

	var created lineItemWire
	if err := r.client.do(ctx, "POST", "/detalles-factura", wire, &created); err != nil {
		return nil, err
	}

	if created.ID == 0 {
		merged := *li
		return &merged, nil
	}
	return created.toDomain(), nil
}

// Update overwrites one line, stamping the acting user as modifier.
func (r *LineItemRepo) Update(ctx context.Context, li *invoices.LineItem) (*invoices.LineItem, error) {
	wire := lineItemToWire(li)
	wire.UsuarioModificacion = actorID(ctx)

	var updated lineItemWire
	if err := r.client.do(ctx, "PUT", fmt.Sprintf("/detalles-factura/%d", li.ID), wire, &updated); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("line item", li.ID)
		}
		return nil, err
	}

	if updated.ID == 0 {
		merged := *li
		return &merged, nil
	}
	return updated.toDomain(), nil
}

// Delete removes one line.
func (r *LineItemRepo) Delete(ctx context.Context, id int64) error {
	if err := r.client.do(ctx, "DELETE", fmt.Sprintf("/detalles-factura/%d", id), nil, nil); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("line item", id)
		}
		return err
	}
	return nil
}
