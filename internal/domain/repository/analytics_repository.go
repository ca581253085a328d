package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ArticleRanking unidades vendidas de un artículo en pedidos entregados.
type ArticleRanking struct {
	ArticleID    string
	Denomination string
	Units        int
	Revenue      decimal.Decimal
}

// Balance ingresos vs. costos de pedidos entregados en un rango.
type Balance struct {
	Orders   int
	Revenue  decimal.Decimal
	Cost     decimal.Decimal
	Delivery decimal.Decimal
}

// AnalyticsRepository consultas agregadas para estadísticas.
type AnalyticsRepository interface {
	Ranking(ctx context.Context, from, to time.Time, limit int) ([]ArticleRanking, error)
	Balance(ctx context.Context, from, to time.Time) (Balance, error)
}
