package dto

import "fmt"

// Límites de página de los listados.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// PageRequest ventana de un listado (?limit=&offset=). El total va en el header X-Total-Count.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize aplica el límite por defecto y valida rangos.
func (p *PageRequest) Normalize() error {
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit < 0 || p.Limit > MaxPageLimit {
		return fmt.Errorf("limit debe estar entre 1 y %d", MaxPageLimit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset no puede ser negativo")
	}
	return nil
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
