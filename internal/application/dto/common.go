package dto

import (
	"time"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// Actor usuario autenticado que ejecuta un caso de uso (extraído del JWT).
type Actor struct {
	UserID     string
	CustomerID string
	Role       string
}

// IsClient indica si el actor es un cliente final (solo opera sobre sus propios datos).
func (a Actor) IsClient() bool {
	return a.Role == entity.RoleCliente
}
