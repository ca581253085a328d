package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInsumoRequest body para POST /api/articulos/insumos.
type CreateInsumoRequest struct {
	Denomination   string          `json:"denominacion" validate:"required,max=120"`
	SalePrice      decimal.Decimal `json:"precio_venta"`
	PurchasePrice  decimal.Decimal `json:"precio_compra"`
	UnitMeasure    string          `json:"unidad_medida" validate:"required"`
	CategoryID     string          `json:"categoria_id,omitempty"`
	Stock          decimal.Decimal `json:"stock_actual"`
	MinStock       decimal.Decimal `json:"stock_minimo"`
	ForPreparation bool            `json:"es_para_elaborar"`
}

// RecipeLineRequest línea de receta de un manufacturado.
type RecipeLineRequest struct {
	InsumoID string          `json:"insumo_id" validate:"required"`
	Quantity decimal.Decimal `json:"cantidad"`
}

// CreateManufacturedRequest body para POST /api/articulos/manufacturados.
type CreateManufacturedRequest struct {
	Denomination       string              `json:"denominacion" validate:"required,max=120"`
	Description        string              `json:"descripcion"`
	SalePrice          decimal.Decimal     `json:"precio_venta"`
	UnitMeasure        string              `json:"unidad_medida" validate:"required"`
	CategoryID         string              `json:"categoria_id,omitempty"`
	PreparationMinutes int                 `json:"tiempo_estimado_minutos" validate:"min=0"`
	Recipe             []RecipeLineRequest `json:"receta" validate:"required,min=1,dive"`
}

// UpdateArticleRequest body para PUT /api/articulos/:id (precio, baja lógica, stock mínimo).
type UpdateArticleRequest struct {
	Denomination *string          `json:"denominacion,omitempty"`
	SalePrice    *decimal.Decimal `json:"precio_venta,omitempty"`
	Active       *bool            `json:"activo,omitempty"`
	MinStock     *decimal.Decimal `json:"stock_minimo,omitempty"`
}

// RecipeLineResponse línea de receta en respuestas.
type RecipeLineResponse struct {
	InsumoID     string          `json:"insumo_id"`
	Denomination string          `json:"denominacion"`
	Quantity     decimal.Decimal `json:"cantidad"`
}

// ArticleResponse artículo en respuestas (variante según tipo).
type ArticleResponse struct {
	ID                 string               `json:"id"`
	Kind               string               `json:"tipo"`
	Denomination       string               `json:"denominacion"`
	SalePrice          decimal.Decimal      `json:"precio_venta"`
	PurchasePrice      decimal.Decimal      `json:"precio_compra"`
	Cost               decimal.Decimal      `json:"costo"`
	UnitMeasure        string               `json:"unidad_medida"`
	CategoryID         string               `json:"categoria_id,omitempty"`
	Active             bool                 `json:"activo"`
	Stock              *decimal.Decimal     `json:"stock_actual,omitempty"`
	MinStock           *decimal.Decimal     `json:"stock_minimo,omitempty"`
	ForPreparation     *bool                `json:"es_para_elaborar,omitempty"`
	Description        string               `json:"descripcion,omitempty"`
	PreparationMinutes int                  `json:"tiempo_estimado_minutos,omitempty"`
	Recipe             []RecipeLineResponse `json:"receta,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

// ArticleListRequest query de GET /api/articulos.
type ArticleListRequest struct {
	PageRequest
	Kind       string `query:"tipo" validate:"omitempty,oneof=MANUFACTURADO INSUMO"`
	CategoryID string `query:"categoria_id"`
	Query      string `query:"q"`
}

// CreateCategoryRequest body para POST /api/categorias.
type CreateCategoryRequest struct {
	Denomination string `json:"denominacion" validate:"required,max=80"`
	ParentID     string `json:"padre_id,omitempty"`
}

// CategoryResponse rubro en respuestas.
type CategoryResponse struct {
	ID           string `json:"id"`
	Denomination string `json:"denominacion"`
	ParentID     string `json:"padre_id,omitempty"`
}

// RegisterPurchaseRequest body para POST /api/insumos/:id/compras.
type RegisterPurchaseRequest struct {
	Quantity decimal.Decimal `json:"cantidad"`
	UnitCost decimal.Decimal `json:"costo_unitario"`
}

// PurchaseResponse resultado de registrar una compra.
type PurchaseResponse struct {
	InsumoID      string          `json:"insumo_id"`
	Stock         decimal.Decimal `json:"stock_actual"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
}
