package dto

import "github.com/shopspring/decimal"

// RangeRequest query con rango de fechas (YYYY-MM-DD).
type RangeRequest struct {
	From  string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// RankingItem artículo más vendido.
type RankingItem struct {
	ArticleID    string          `json:"articulo_id"`
	Denomination string          `json:"denominacion"`
	Units        int             `json:"unidades"`
	Revenue      decimal.Decimal `json:"recaudado"`
}

// BalanceResponse ingresos, costos y ganancia en el rango.
type BalanceResponse struct {
	From     string          `json:"desde"`
	To       string          `json:"hasta"`
	Orders   int             `json:"pedidos"`
	Revenue  decimal.Decimal `json:"ingresos"`
	Cost     decimal.Decimal `json:"costos"`
	Delivery decimal.Decimal `json:"envios"`
	Profit   decimal.Decimal `json:"ganancia"`
}
