package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea del pedido enviada por el cliente.
type OrderLineRequest struct {
	ArticleID   string `json:"articulo_id" validate:"required"`
	Quantity    int    `json:"cantidad" validate:"required,gt=0"`
	PromotionID string `json:"promocion_id,omitempty"`
}

// CreateOrderRequest body para POST /api/pedidos (y validar / calcular-total / tiempo-estimado).
type CreateOrderRequest struct {
	CustomerID            string             `json:"cliente_id" validate:"required"`
	DeliveryType          string             `json:"tipo_envio" validate:"required,oneof=DELIVERY TAKE_AWAY"`
	AddressID             string             `json:"domicilio_id,omitempty"`
	BranchID              string             `json:"sucursal_id" validate:"required"`
	Lines                 []OrderLineRequest `json:"detalles" validate:"required,min=1,dive"`
	Notes                 string             `json:"observaciones,omitempty" validate:"max=500"`
	ApplyTakeAwayDiscount bool               `json:"descuento_retiro,omitempty"`
}

// LineQuote línea cotizada.
type LineQuote struct {
	ArticleID      string          `json:"articulo_id"`
	Denomination   string          `json:"denominacion"`
	Quantity       int             `json:"cantidad"`
	UnitPrice      decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"descuento"`
	FinalUnitPrice decimal.Decimal `json:"precio_unitario_final"`
	FinalSubtotal  decimal.Decimal `json:"subtotal_final"`
	PromotionID    string          `json:"promocion_id,omitempty"`
}

// QuoteResponse respuesta de POST /api/pedidos/calcular-total.
type QuoteResponse struct {
	Lines            []LineQuote     `json:"detalles"`
	SubtotalOriginal decimal.Decimal `json:"subtotal_original"`
	DiscountTotal    decimal.Decimal `json:"descuento_promociones"`
	SubtotalFinal    decimal.Decimal `json:"subtotal_final"`
	DeliveryFee      decimal.Decimal `json:"costo_envio"`
	TakeAwayDiscount decimal.Decimal `json:"descuento_retiro"`
	GrandTotal       decimal.Decimal `json:"total"`
}

// StockShortage insumo sin stock suficiente.
type StockShortage struct {
	InsumoID     string          `json:"insumo_id"`
	Denomination string          `json:"denominacion"`
	Required     decimal.Decimal `json:"requerido"`
	Available    decimal.Decimal `json:"disponible"`
}

// StockValidationResponse respuesta de POST /api/pedidos/validar.
type StockValidationResponse struct {
	Sufficient bool            `json:"stock_suficiente"`
	Shortages  []StockShortage `json:"faltantes,omitempty"`
}

// EstimateResponse respuesta de POST /api/pedidos/tiempo-estimado.
type EstimateResponse struct {
	Minutes          int       `json:"minutos"`
	EstimatedReadyAt time.Time `json:"hora_estimada"`
}

// OrderLineResponse línea de pedido en respuestas.
type OrderLineResponse struct {
	ID            string          `json:"id"`
	ArticleID     string          `json:"articulo_id"`
	PromotionID   string          `json:"promocion_id,omitempty"`
	Quantity      int             `json:"cantidad"`
	UnitPrice     decimal.Decimal `json:"precio_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"descuento"`
	FinalSubtotal decimal.Decimal `json:"subtotal_final"`
}

// OrderResponse pedido en respuestas.
type OrderResponse struct {
	ID               string              `json:"id"`
	CustomerID       string              `json:"cliente_id"`
	AddressID        string              `json:"domicilio_id,omitempty"`
	BranchID         string              `json:"sucursal_id"`
	Status           string              `json:"estado"`
	DeliveryType     string              `json:"tipo_envio"`
	Notes            string              `json:"observaciones,omitempty"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Discount         decimal.Decimal     `json:"descuento"`
	DeliveryFee      decimal.Decimal     `json:"costo_envio"`
	Total            decimal.Decimal     `json:"total"`
	EstimatedMinutes int                 `json:"tiempo_estimado_minutos"`
	EstimatedReadyAt time.Time           `json:"hora_estimada_finalizacion"`
	StockSufficient  bool                `json:"stock_suficiente"`
	InvoiceID        string              `json:"factura_id,omitempty"`
	CreatedAt        time.Time           `json:"fecha_pedido"`
	Lines            []OrderLineResponse `json:"detalles"`
}

// OrderListRequest query de GET /api/pedidos.
type OrderListRequest struct {
	PageRequest
	Status     string `query:"estado"`
	CustomerID string `query:"cliente_id"`
}
