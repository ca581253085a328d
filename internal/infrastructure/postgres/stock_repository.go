package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock y costo de insumos sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate bloquea las filas de los insumos (SELECT FOR UPDATE). Se bloquean en orden de id
// para que dos pedidos con los mismos insumos no se traben entre sí.
func (r *StockRepo) GetForUpdate(ctx context.Context, insumoIDs []string) (map[string]*entity.Article, error) {
	return r.get(ctx, insumoIDs, " FOR UPDATE")
}

// Get lee stock sin bloquear.
func (r *StockRepo) Get(ctx context.Context, insumoIDs []string) (map[string]*entity.Article, error) {
	return r.get(ctx, insumoIDs, "")
}

func (r *StockRepo) get(ctx context.Context, ids []string, lock string) (map[string]*entity.Article, error) {
	out := make(map[string]*entity.Article, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + articleColumns + ` FROM articles
		WHERE id = ANY($1) AND kind = 'INSUMO'
		ORDER BY id` + lock
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Article, error) {
		return scanArticle(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan stock: %w", err)
	}
	for _, a := range list {
		out[a.ID] = a
	}
	return out, nil
}

// SetStock fija el stock actual del insumo.
func (r *StockRepo) SetStock(ctx context.Context, insumoID string, stock decimal.Decimal) error {
	return r.set(ctx, `UPDATE articles SET stock = $2, updated_at = now() WHERE id = $1 AND kind = 'INSUMO'`, insumoID, stock)
}

// SetPurchasePrice fija el costo promedio del insumo.
func (r *StockRepo) SetPurchasePrice(ctx context.Context, insumoID string, price decimal.Decimal) error {
	return r.set(ctx, `UPDATE articles SET purchase_price = $2, updated_at = now() WHERE id = $1 AND kind = 'INSUMO'`, insumoID, price)
}

func (r *StockRepo) set(ctx context.Context, query, id string, v decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, query, id, v)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
