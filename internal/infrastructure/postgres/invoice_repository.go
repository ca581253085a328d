package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const (
	constraintInvoiceOrder  = "invoices_order_id_key"
	constraintInvoiceNumber = "invoices_number_key"
)

// InvoiceRepo facturas (usable con pool o tx). Las lecturas traen los pagos.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera. Dentro de una tx el INSERT corre en un savepoint: una colisión
// de número no aborta la transacción y el caller puede reintentar.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	tx, ok := r.q.(pgx.Tx)
	if !ok {
		return insertInvoice(ctx, r.q, inv)
	}
	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := insertInvoice(ctx, sp, inv); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func insertInvoice(ctx context.Context, q Querier, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, order_id, number, issued_at, subtotal, discount, shipping_cost, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.Exec(ctx, query,
		inv.ID, inv.OrderID, inv.Number, inv.IssuedAt, inv.Subtotal, inv.Discount, inv.ShippingCost, inv.Total,
	)
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		switch violatedConstraint(err) {
		case constraintInvoiceNumber:
			return repository.ErrInvoiceNumberTaken
		case constraintInvoiceOrder:
			return fmt.Errorf("pedido %s ya facturado: %w", inv.OrderID, domain.ErrDuplicate)
		}
		return domain.ErrDuplicate
	}
	return fmt.Errorf("insert invoice: %w", err)
}

// GetByID devuelve la factura con sus pagos; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getBy(ctx, "id", id)
}

// GetByOrderID factura del pedido; (nil, nil) si todavía no se emitió.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	return r.getBy(ctx, "order_id", orderID)
}

func (r *InvoiceRepo) getBy(ctx context.Context, column, value string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, `
		SELECT id, order_id, number, issued_at, subtotal, discount, shipping_cost, total
		FROM invoices WHERE `+column+` = $1`, value,
	).Scan(&inv.ID, &inv.OrderID, &inv.Number, &inv.IssuedAt, &inv.Subtotal, &inv.Discount, &inv.ShippingCost, &inv.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	payments, err := NewPaymentRepository(r.q).ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Payments = payments
	return &inv, nil
}

// CountIssuedOn cantidad de facturas emitidas el día calendario de day (en su zona).
func (r *InvoiceRepo) CountIssuedOn(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE issued_at >= $1 AND issued_at < $2`,
		start, start.AddDate(0, 0, 1),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}
