package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// Se aplica al registrar una compra de insumo.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// UnitCost costo de una unidad del artículo: precio de compra para insumos y
// Σ cantidad de receta × precio de compra del insumo para manufacturados.
func UnitCost(a *entity.Article) decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	if !a.IsManufactured() {
		return a.PurchasePrice
	}
	cost := decimal.Zero
	walkRecipe(a, decimal.NewFromInt(1), 0, func(insumo *entity.Article, qty decimal.Decimal) {
		cost = cost.Add(qty.Mul(insumo.PurchasePrice))
	})
	return cost
}
