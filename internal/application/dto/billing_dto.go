package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID                  string          `json:"id"`
	InvoiceID           string          `json:"factura_id"`
	Method              string          `json:"forma_pago"`
	Status              string          `json:"estado"`
	Amount              decimal.Decimal `json:"monto"`
	Currency            string          `json:"moneda"`
	GatewayPreferenceID string          `json:"preference_id,omitempty"`
	GatewayPaymentID    string          `json:"mp_payment_id,omitempty"`
	GatewayStatusDetail string          `json:"status_detail,omitempty"`
	InitPoint           string          `json:"init_point,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// InvoiceResponse factura con pagos y saldos derivados.
type InvoiceResponse struct {
	ID             string            `json:"id"`
	OrderID        string            `json:"pedido_id"`
	Number         string            `json:"numero"`
	IssuedAt       time.Time         `json:"fecha_facturacion"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Discount       decimal.Decimal   `json:"descuento"`
	ShippingCost   decimal.Decimal   `json:"gastos_envio"`
	Total          decimal.Decimal   `json:"total"`
	TotalPaid      decimal.Decimal   `json:"total_pagado"`
	PendingBalance decimal.Decimal   `json:"saldo_pendiente"`
	FullyPaid      bool              `json:"pagada"`
	Payments       []PaymentResponse `json:"pagos"`
}

// CashPaymentRequest body para POST /api/facturas/:id/pagos/efectivo.
// Sin monto se toma el saldo pendiente.
type CashPaymentRequest struct {
	Amount decimal.Decimal `json:"monto"`
}

// GatewayPaymentRequest body para POST /api/facturas/:id/pagos/mercadopago.
type GatewayPaymentRequest struct {
	Amount decimal.Decimal `json:"monto"`
	Title  string          `json:"titulo,omitempty" validate:"max=120"`
}

// WebhookNotification notificación de MercadoPago (topic payment).
type WebhookNotification struct {
	ID     any    `json:"id"`
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}
