package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `
	id, customer_id, COALESCE(address_id, ''), branch_id, status, delivery_type, notes,
	subtotal, discount, delivery_fee, total, total_cost,
	estimated_minutes, estimated_ready_at, COALESCE(invoice_id, ''), created_at, updated_at`

// OrderRepo pedidos y sus líneas (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o             entity.Order
		status, dtype string
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.AddressID, &o.BranchID, &status, &dtype, &o.Notes,
		&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.Total, &o.TotalCost,
		&o.EstimatedMinutes, &o.EstimatedReadyAt, &o.InvoiceID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	o.DeliveryType = entity.DeliveryType(dtype)
	return &o, nil
}

// Create persiste cabecera y líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, customer_id, address_id, branch_id, status, delivery_type, notes,
			subtotal, discount, delivery_fee, total, total_cost,
			estimated_minutes, estimated_ready_at, invoice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, nullIfEmpty(o.AddressID), o.BranchID, string(o.Status), string(o.DeliveryType), o.Notes,
		o.Subtotal, o.Discount, o.DeliveryFee, o.Total, o.TotalCost,
		o.EstimatedMinutes, o.EstimatedReadyAt, nullIfEmpty(o.InvoiceID), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range o.Lines {
		l := &o.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.OrderID = o.ID
		batch.Queue(`
			INSERT INTO order_lines (id, order_id, position, article_id, promotion_id, quantity,
				unit_price, subtotal, discount, final_subtotal, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			l.ID, o.ID, i, l.ArticleID, nullIfEmpty(l.PromotionID), l.Quantity,
			l.UnitPrice, l.Subtotal, l.Discount, l.FinalSubtotal, l.UnitCost,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order lines: %w", err)
	}
	return nil
}

// GetByID devuelve el pedido con sus líneas; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate igual que GetByID pero bloquea la cabecera.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *OrderRepo) get(ctx context.Context, id, lock string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, article_id, COALESCE(promotion_id, ''), quantity,
			unit_price, subtotal, discount, final_subtotal, unit_cost
		FROM order_lines WHERE order_id = ANY($1)
		ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.OrderLine, error) {
		var l entity.OrderLine
		err := row.Scan(&l.ID, &l.OrderID, &l.ArticleID, &l.PromotionID, &l.Quantity,
			&l.UnitPrice, &l.Subtotal, &l.Discount, &l.FinalSubtotal, &l.UnitCost)
		return l, err
	})
	if err != nil {
		return fmt.Errorf("scan order lines: %w", err)
	}
	for _, l := range lines {
		o := byID[l.OrderID]
		o.Lines = append(o.Lines, l)
	}
	return nil
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetInvoice asocia la factura emitida.
func (r *OrderRepo) SetInvoice(ctx context.Context, id, invoiceID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET invoice_id = $2 WHERE id = $1`, id, invoiceID)
	if err != nil {
		return fmt.Errorf("set order invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List pedidos más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// SumEstimatedMinutes carga de cocina: minutos estimados de los pedidos en el estado dado.
func (r *OrderRepo) SumEstimatedMinutes(ctx context.Context, status entity.OrderStatus) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(estimated_minutes), 0) FROM orders WHERE status = $1`, string(status),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum estimated minutes: %w", err)
	}
	return total, nil
}
