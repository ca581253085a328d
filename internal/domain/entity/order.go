package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

const (
	OrderPending     OrderStatus = "PENDIENTE"
	OrderPreparation OrderStatus = "EN_PREPARACION"
	OrderReady       OrderStatus = "LISTO"
	OrderDelivered   OrderStatus = "ENTREGADO"
	OrderCancelled   OrderStatus = "CANCELADO"
)

// DeliveryType forma de entrega del pedido.
type DeliveryType string

const (
	DeliveryHome     DeliveryType = "DELIVERY"
	DeliveryTakeAway DeliveryType = "TAKE_AWAY"
)

// Valid indica si el tipo de entrega es conocido.
func (d DeliveryType) Valid() bool {
	return d == DeliveryHome || d == DeliveryTakeAway
}

// Order pedido (cabecera). Subtotal es la suma pre-promoción; Total ya incluye
// descuentos y recargo de envío.
type Order struct {
	ID               string
	CustomerID       string
	AddressID        string // obligatorio si DeliveryType == DELIVERY
	BranchID         string
	Status           OrderStatus
	DeliveryType     DeliveryType
	Notes            string
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal // promociones + descuento por retiro
	DeliveryFee      decimal.Decimal
	Total            decimal.Decimal
	TotalCost        decimal.Decimal
	EstimatedMinutes int
	EstimatedReadyAt time.Time
	InvoiceID        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Lines            []OrderLine
}

// OrderLine línea (detalle) de un pedido.
type OrderLine struct {
	ID            string
	OrderID       string
	ArticleID     string
	PromotionID   string // promoción efectivamente aplicada; vacío si ninguna
	Quantity      int
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal // UnitPrice * Quantity
	Discount      decimal.Decimal
	FinalSubtotal decimal.Decimal // Subtotal - Discount
	UnitCost      decimal.Decimal
}

// IsTerminal indica si el estado ya no admite transiciones.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// StockCommitted indica si en este estado el stock del pedido ya fue descontado.
func (s OrderStatus) StockCommitted() bool {
	return s == OrderPreparation || s == OrderReady
}
