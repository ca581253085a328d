package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock de insumos.
const (
	MovementTypeOut        = "OUT"        // descuento al iniciar la preparación de un pedido
	MovementTypeIn         = "IN"         // reposición al cancelar un pedido ya descontado
	MovementTypePurchase   = "PURCHASE"   // compra a proveedor
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste manual
)

// StockMovement registro (ledger) de un cambio de stock de un insumo.
// Quantity es siempre positiva; el signo lo da Type.
type StockMovement struct {
	ID        string
	InsumoID  string
	OrderID   string // vacío si no proviene de un pedido
	Type      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Date      time.Time
	CreatedBy string
}
