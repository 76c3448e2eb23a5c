package remote

import (
	"context"
	"encoding/json"

	"compras/internal/core/apperror"
	"compras/internal/domain/catalogs/product"
)

// productWire is the catalog service representation of a product. The price
// travels in the pvp field; older catalog versions used precio_unitario.
type productWire struct {
	IDProducto     flexInt     `json:"id_producto"`
	Nombre         string      `json:"nombre"`
	Descripcion    string      `json:"descripcion"`
	Pvp            *flexNumber `json:"pvp"`
	PrecioUnitario *flexNumber `json:"precio_unitario"`
	IDCategoria    flexInt     `json:"id_categoria"`
}

func (w *productWire) toDomain() *product.Product {
	price := flexNumber{}
	switch {
	case w.Pvp != nil:
		price = *w.Pvp
	case w.PrecioUnitario != nil:
		price = *w.PrecioUnitario
	}

	return &product.Product{
		ID:          int64(w.IDProducto),
		Name:        w.Nombre,
		Description: w.Descripcion,
		UnitPrice:   price.money(),
		CategoryID:  int64(w.IDCategoria),
	}
}

// ProductCatalog proxies the external product catalog service.
type ProductCatalog struct {
	client *Client
}

// NewProductCatalog creates a product catalog over the remote service.
func NewProductCatalog(client *Client) *ProductCatalog {
	return &ProductCatalog{client: client}
}

// List retrieves all products. The catalog service has replied with both a
// bare array and a {"productos": [...]} envelope over time, so both shapes
// are accepted.
func (c *ProductCatalog) List(ctx context.Context) ([]*product.Product, error) {
	var raw json.RawMessage
	if err := c.client.do(ctx, "GET", "/productos", nil, &raw); err != nil {
		return nil, err
	}

	var wires []productWire
	if err := json.Unmarshal(raw, &wires); err != nil {
		var envelope struct {
			Productos []productWire `json:"productos"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, apperror.NewStorage("unexpected product catalog response").
				WithCause(err)
		}
		wires = envelope.Productos
	}

	result := make([]*product.Product, len(wires))
	for i := range wires {
		result[i] = wires[i].toDomain()
	}
	return result, nil
}

// GetByID retrieves one product. The catalog service exposes no single-item
// endpoint, so this scans the full list.
func (c *ProductCatalog) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, apperror.NewNotFound("product", id)
}
