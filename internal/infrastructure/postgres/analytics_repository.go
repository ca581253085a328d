package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre pedidos entregados.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// Ranking artículos más vendidos (unidades) en pedidos ENTREGADO creados en [from, to).
func (r *AnalyticsRepo) Ranking(ctx context.Context, from, to time.Time, limit int) ([]repository.ArticleRanking, error) {
	const query = `
	SELECT
	    l.article_id,
	    a.denomination,
	    SUM(l.quantity)::int                   AS units,
	    COALESCE(SUM(l.final_subtotal), 0)     AS revenue
	FROM order_lines l
	JOIN orders o   ON o.id = l.order_id
	JOIN articles a ON a.id = l.article_id
	WHERE o.status = $1
	  AND o.created_at >= $2 AND o.created_at < $3
	GROUP BY l.article_id, a.denomination
	ORDER BY units DESC, l.article_id
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, string(entity.OrderDelivered), from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.Ranking: %w", err)
	}
	defer rows.Close()

	results := []repository.ArticleRanking{}
	for rows.Next() {
		var item repository.ArticleRanking
		if err := rows.Scan(&item.ArticleID, &item.Denomination, &item.Units, &item.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.Ranking scan: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.Ranking rows: %w", err)
	}
	return results, nil
}

// Balance ingresos, costo de insumos y recargos de envío de pedidos ENTREGADO en [from, to).
func (r *AnalyticsRepo) Balance(ctx context.Context, from, to time.Time) (repository.Balance, error) {
	const query = `
	SELECT
	    COUNT(*)::int,
	    COALESCE(SUM(total), 0),
	    COALESCE(SUM(total_cost), 0),
	    COALESCE(SUM(delivery_fee), 0)
	FROM orders
	WHERE status = $1
	  AND created_at >= $2 AND created_at < $3`

	var b repository.Balance
	err := r.pool.QueryRow(ctx, query, string(entity.OrderDelivered), from, to).
		Scan(&b.Orders, &b.Revenue, &b.Cost, &b.Delivery)
	if err != nil {
		return b, fmt.Errorf("analytics.Balance: %w", err)
	}
	return b, nil
}
