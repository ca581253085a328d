package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePromotionRequest body para POST /api/promociones. Fechas en formato YYYY-MM-DD, horas HH:MM.
type CreatePromotionRequest struct {
	Denomination        string          `json:"denominacion" validate:"required,max=120"`
	StartDate           string          `json:"fecha_desde" validate:"required,datetime=2006-01-02"`
	EndDate             string          `json:"fecha_hasta" validate:"required,datetime=2006-01-02"`
	StartTime           string          `json:"hora_desde" validate:"omitempty,datetime=15:04"`
	EndTime             string          `json:"hora_hasta" validate:"omitempty,datetime=15:04"`
	DiscountDescription string          `json:"descripcion_descuento"`
	DiscountType        string          `json:"tipo_descuento" validate:"required,oneof=FIXED PERCENTAGE"`
	Value               decimal.Decimal `json:"valor"`
	MinQuantity         int             `json:"cantidad_minima" validate:"min=0"`
	ArticleIDs          []string        `json:"articulos" validate:"required,min=1"`
	BranchIDs           []string        `json:"sucursales" validate:"required,min=1"`
}

// PromotionResponse promoción en respuestas.
type PromotionResponse struct {
	ID                  string          `json:"id"`
	Denomination        string          `json:"denominacion"`
	StartDate           string          `json:"fecha_desde"`
	EndDate             string          `json:"fecha_hasta"`
	StartTime           string          `json:"hora_desde,omitempty"`
	EndTime             string          `json:"hora_hasta,omitempty"`
	DiscountDescription string          `json:"descripcion_descuento,omitempty"`
	DiscountType        string          `json:"tipo_descuento"`
	Value               decimal.Decimal `json:"valor"`
	MinQuantity         int             `json:"cantidad_minima"`
	ArticleIDs          []string        `json:"articulos"`
	BranchIDs           []string        `json:"sucursales"`
	Active              bool            `json:"activa"`
	CreatedAt           time.Time       `json:"created_at"`
}
