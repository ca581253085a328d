package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "EFECTIVO"
	PaymentMercadoPago PaymentMethod = "MERCADO_PAGO"
)

// PaymentStatus estado de un pago.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDIENTE"
	PaymentApproved  PaymentStatus = "APROBADO"
	PaymentRejected  PaymentStatus = "RECHAZADO"
	PaymentCancelled PaymentStatus = "CANCELADO"
	PaymentRefunded  PaymentStatus = "REEMBOLSADO"
)

// DefaultCurrency moneda única del sistema.
const DefaultCurrency = "ARS"

// Payment pago asociado a una factura.
type Payment struct {
	ID                  string
	InvoiceID           string
	Method              PaymentMethod
	Status              PaymentStatus
	Amount              decimal.Decimal
	Currency            string
	GatewayPreferenceID string
	GatewayPaymentID    string
	GatewayStatusDetail string
	InitPoint           string // URL de checkout de la pasarela
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsFinal indica si el pago ya no admite cambios de estado manuales.
func (p *Payment) IsFinal() bool {
	return p.Status != PaymentPending
}
