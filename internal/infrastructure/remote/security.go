package remote

import (
	"context"

	"compras/internal/core/apperror"
	"compras/internal/domain/audit"
	"compras/internal/domain/auth"
)

// moduleCode identifies this application to the security service; logins are
// only accepted for users authorized on it.
const moduleCode = "COM"

// SecurityClient proxies the platform security service: credential
// verification and the audit trail.
type SecurityClient struct {
	client *Client
}

// NewSecurityClient creates a client for the security service.
func NewSecurityClient(client *Client) *SecurityClient {
	return &SecurityClient{client: client}
}

type loginWire struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
	IDModulo   string `json:"id_modulo"`
}

type loginResponseWire struct {
	Token     string  `json:"token"`
	Usuario   string  `json:"usuario"`
	RolNombre string  `json:"rol_nombre"`
	RolID     string  `json:"rol_id"`
	IDUsuario flexInt `json:"id_usuario"`
	Nombre    string  `json:"nombre"`
}

// Authenticate verifies credentials with the security service. The service's
// own token is discarded; this API issues its own session tokens.
func (s *SecurityClient) Authenticate(ctx context.Context, username, password string) (*auth.User, error) {
	req := loginWire{
		Usuario:    username,
		Contrasena: password,
		IDModulo:   moduleCode,
	}

	var resp loginResponseWire
	if err := s.client.do(ctx, "POST", "/usuarios/login", req, &resp); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeStorage {
			// Any non-2xx from the login endpoint means the credentials or
			// module authorization were rejected.
			return nil, apperror.NewUnauthorized(appErr.Message)
		}
		return nil, err
	}

	return &auth.User{
		ID:       int64(resp.IDUsuario),
		Username: resp.Usuario,
		FullName: resp.Nombre,
		Role:     resp.RolNombre,
		RoleID:   resp.RolID,
	}, nil
}

type auditWire struct {
	ID          flexInt   `json:"id"`
	Usuario     string    `json:"usuario"`
	Modulo      string    `json:"modulo"`
	Accion      string    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	Fecha       *wireDate `json:"fecha"`
}

// ListEntries retrieves the full platform audit trail.
func (s *SecurityClient) ListEntries(ctx context.Context) ([]*audit.Entry, error) {
	var wires []auditWire
	if err := s.client.do(ctx, "GET", "/auditoria", nil, &wires); err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, len(wires))
	for i, w := range wires {
		entry := &audit.Entry{
			ID:       int64(w.ID),
			Username: w.Usuario,
			Module:   w.Modulo,
			Action:   w.Accion,
			Detail:   w.Descripcion,
		}
		if w.Fecha != nil {
			entry.Timestamp = w.Fecha.Time
		}
		entries[i] = entry
	}
	return entries, nil
}
