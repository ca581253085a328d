package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura de un pedido (1:1). Inmutable una vez creada salvo por los pagos asociados.
type Invoice struct {
	ID           string
	OrderID      string
	Number       string
	IssuedAt     time.Time
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
	Payments     []Payment
}

// TotalPaid suma de los pagos aprobados.
func (i *Invoice) TotalPaid() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range i.Payments {
		if p.Status == PaymentApproved {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// IsFullyPaid indica si los pagos aprobados cubren el total.
func (i *Invoice) IsFullyPaid() bool {
	return i.TotalPaid().GreaterThanOrEqual(i.Total)
}

// PendingBalance saldo pendiente (nunca negativo).
func (i *Invoice) PendingBalance() decimal.Decimal {
	pending := i.Total.Sub(i.TotalPaid())
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// ReservedBalance saldo no comprometido por pagos aprobados ni pendientes;
// limita el monto de un nuevo pago.
func (i *Invoice) ReservedBalance() decimal.Decimal {
	committed := decimal.Zero
	for _, p := range i.Payments {
		if p.Status == PaymentApproved || p.Status == PaymentPending {
			committed = committed.Add(p.Amount)
		}
	}
	left := i.Total.Sub(committed)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
