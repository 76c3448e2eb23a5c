package remote

import (
	"context"
	"net/url"

	"compras/internal/core/apperror"
	"compras/internal/domain/catalogs/supplier"
)

// supplierWire is the store representation of a supplier. The fiscal id is
// the resource key; there is no surrogate id.
type supplierWire struct {
	CedulaRuc           string    `json:"cedula_ruc"`
	Nombre              string    `json:"nombre"`
	Ciudad              string    `json:"ciudad"`
	TipoProveedor       string    `json:"tipo_proveedor"`
	Direccion           string    `json:"direccion"`
	Telefono            string    `json:"telefono"`
	Email               string    `json:"email"`
	Estado              bool      `json:"estado"`
	FechaCreacion       *wireDate `json:"fecha_creacion,omitempty"`
	FechaModificacion   *wireDate `json:"fecha_modificacion,omitempty"`
	UsuarioCreacion     int64     `json:"usuario_creacion,omitempty"`
	UsuarioModificacion int64     `json:"usuario_modificacion,omitempty"`
}

func (w *supplierWire) toDomain() *supplier.Supplier {
	return &supplier.Supplier{
		TaxID:        w.CedulaRuc,
		Name:         w.Nombre,
		City:         w.Ciudad,
		Address:      w.Direccion,
		Phone:        w.Telefono,
		Email:        w.Email,
		PaymentTerms: supplier.PaymentTerms(w.TipoProveedor),
		Active:       w.Estado,
		CreatedAt:    optionalTime(w.FechaCreacion),
		UpdatedAt:    optionalTime(w.FechaModificacion),
	}
}

func supplierToWire(s *supplier.Supplier) supplierWire {
	return supplierWire{
		CedulaRuc:     s.TaxID,
		Nombre:        s.Name,
		Ciudad:        s.City,
		TipoProveedor: string(s.PaymentTerms),
		Direccion:     s.Address,
		Telefono:      s.Phone,
		Email:         s.Email,
		Estado:        s.Active,
	}
}

// SupplierRepo proxies the supplier catalog to the procurement store.
type SupplierRepo struct {
	client *Client
}

// NewSupplierRepo creates a supplier repository over the procurement store.
func NewSupplierRepo(client *Client) *SupplierRepo {
	return &SupplierRepo{client: client}
}

// List retrieves all suppliers.
func (r *SupplierRepo) List(ctx context.Context) ([]*supplier.Supplier, error) {
	var wires []supplierWire
	if err := r.client.do(ctx, "GET", "/proveedores", nil, &wires); err != nil {
		return nil, err
	}

	result := make([]*supplier.Supplier, len(wires))
	for i := range wires {
		result[i] = wires[i].toDomain()
	}
	return result, nil
}

// GetByTaxID retrieves one supplier by fiscal id.
func (r *SupplierRepo) GetByTaxID(ctx context.Context, taxID string) (*supplier.Supplier, error) {
	var wire supplierWire
	if err := r.client.do(ctx, "GET", "/proveedores/"+url.PathEscape(taxID), nil, &wire); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", taxID)
		}
		return nil, err
	}
	return wire.toDomain(), nil
}

// Create stores a new supplier, stamping the acting user.
func (r *SupplierRepo) Create(ctx context.Context, s *supplier.Supplier) (*supplier.Supplier, error) {
	wire := supplierToWire(s)
	wire.UsuarioCreacion = actorID(ctx)

	var created supplierWire
	if err := r.client.do(ctx, "POST", "/proveedores", wire, &created); err != nil {
		return nil, err
	}

	if created.CedulaRuc == "" {
		merged := *s
		return &merged, nil
	}
	return created.toDomain(), nil
}

// Update overwrites a supplier, stamping the acting user as modifier.
func (r *SupplierRepo) Update(ctx context.Context, s *supplier.Supplier) (*supplier.Supplier, error) {
	wire := supplierToWire(s)
	wire.UsuarioModificacion = actorID(ctx)

	var updated supplierWire
	if err := r.client.do(ctx, "PUT", "/proveedores/"+url.PathEscape(s.TaxID), wire, &updated); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", s.TaxID)
		}
		return nil, err
	}

	if updated.CedulaRuc == "" {
		merged := *s
		return &merged, nil
	}
	return updated.toDomain(), nil
}

// Delete removes a supplier.
func (r *SupplierRepo) Delete(ctx context.Context, taxID string) error {
	if err := r.client.do(ctx, "DELETE", "/proveedores/"+url.PathEscape(taxID), nil, nil); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("supplier", taxID)
		}
		return err
	}
	return nil
}
