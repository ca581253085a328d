package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType forma de aplicar el descuento de una promoción.
type DiscountType string

const (
	DiscountFixed      DiscountType = "FIXED"      // monto fijo por línea, independiente de la cantidad
	DiscountPercentage DiscountType = "PERCENTAGE" // porcentaje sobre el subtotal de la línea
)

// Promotion promoción con vigencia por rango de fechas y franja horaria diaria.
type Promotion struct {
	ID                  string
	Denomination        string
	StartDate           time.Time // fecha (se ignora la hora)
	EndDate             time.Time
	StartTime           string // HH:MM
	EndTime             string // HH:MM
	DiscountDescription string
	DiscountType        DiscountType
	Value               decimal.Decimal
	MinQuantity         int
	ArticleIDs          []string
	BranchIDs           []string
	Active              bool
	CreatedAt           time.Time
}
