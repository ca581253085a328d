package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos de stock (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, insumo_id, order_id, type, quantity, unit_cost, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.InsumoID, nullIfEmpty(m.OrderID), m.Type, m.Quantity, m.UnitCost, m.Date, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByOrder movimientos de un pedido; movementType vacío = todos.
func (r *MovementRepo) ListByOrder(ctx context.Context, orderID, movementType string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, insumo_id, COALESCE(order_id, ''), type, quantity, unit_cost, date, COALESCE(created_by, '')
		FROM stock_movements
		WHERE COALESCE(order_id, '') = $1 AND ($2 = '' OR type = $2)
		ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, orderID, movementType)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.StockMovement, error) {
		var m entity.StockMovement
		err := row.Scan(&m.ID, &m.InsumoID, &m.OrderID, &m.Type, &m.Quantity, &m.UnitCost, &m.Date, &m.CreatedBy)
		return &m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan stock movements: %w", err)
	}
	return list, nil
}
