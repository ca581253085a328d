package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleKind discriminante del artículo (variante etiquetada).
type ArticleKind string

const (
	ArticleKindManufactured ArticleKind = "MANUFACTURADO" // elaborado en cocina a partir de una receta
	ArticleKindInsumo       ArticleKind = "INSUMO"        // materia prima con stock propio
)

// Article representa un artículo del catálogo. Los campos de InsumoData solo
// aplican cuando Kind es INSUMO y los de ManufacturedData cuando es MANUFACTURADO.
type Article struct {
	ID            string
	Kind          ArticleKind
	Denomination  string
	SalePrice     decimal.Decimal // precio de venta (>= 0)
	PurchasePrice decimal.Decimal // costo de compra; en manufacturados es informativo
	UnitMeasure   string
	CategoryID    string
	Active        bool
	SearchKey     string // denominación normalizada (sin acentos, minúsculas)
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Insumo       *InsumoData
	Manufactured *ManufacturedData
}

// InsumoData datos propios de una materia prima.
type InsumoData struct {
	Stock          decimal.Decimal
	MinStock       decimal.Decimal
	ForPreparation bool // true = solo se usa como ingrediente
}

// ManufacturedData datos propios de un artículo manufacturado.
type ManufacturedData struct {
	Description        string
	PreparationMinutes int
	Recipe             []RecipeLine
}

// RecipeLine línea de la receta (bill of materials) de un manufacturado.
type RecipeLine struct {
	ID       string
	InsumoID string
	Quantity decimal.Decimal // > 0, por unidad de manufacturado
	Insumo   *Article        // resuelto al leer el artículo
}

// IsManufactured indica si el artículo se elabora a partir de una receta.
func (a *Article) IsManufactured() bool {
	return a != nil && a.Kind == ArticleKindManufactured
}

// IsInsumo indica si el artículo es materia prima.
func (a *Article) IsInsumo() bool {
	return a != nil && a.Kind == ArticleKindInsumo
}

// Recipe devuelve la receta; vacía para insumos.
func (a *Article) Recipe() []RecipeLine {
	if !a.IsManufactured() || a.Manufactured == nil {
		return nil
	}
	return a.Manufactured.Recipe
}

// PreparationMinutes tiempo de preparación; 0 para insumos.
func (a *Article) PreparationMinutes() int {
	if !a.IsManufactured() || a.Manufactured == nil {
		return 0
	}
	return a.Manufactured.PreparationMinutes
}
