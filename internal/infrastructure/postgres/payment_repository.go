package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `
	id, invoice_id, method, status, amount, currency,
	gateway_preference_id, gateway_payment_id, gateway_status_detail, init_point, created_at, updated_at`

// PaymentRepo pagos de facturas (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row pgx.Row) (entity.Payment, error) {
	var (
		p              entity.Payment
		method, status string
	)
	err := row.Scan(
		&p.ID, &p.InvoiceID, &method, &status, &p.Amount, &p.Currency,
		&p.GatewayPreferenceID, &p.GatewayPaymentID, &p.GatewayStatusDetail, &p.InitPoint, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Method = entity.PaymentMethod(method)
	p.Status = entity.PaymentStatus(status)
	return p, err
}

// Create persiste el pago. Factura inexistente = domain.ErrNotFound.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.InvoiceID, string(p.Method), string(p.Status), p.Amount, p.Currency,
		p.GatewayPreferenceID, p.GatewayPaymentID, p.GatewayStatusDetail, p.InitPoint, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("factura %s: %w", p.InvoiceID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// Update persiste estado y datos de pasarela; updated_at lo pone la base.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	err := r.q.QueryRow(ctx, `
		UPDATE payments
		SET status                = $2,
		    gateway_preference_id = $3,
		    gateway_payment_id    = $4,
		    gateway_status_detail = $5,
		    init_point            = $6,
		    updated_at            = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, string(p.Status), p.GatewayPreferenceID, p.GatewayPaymentID, p.GatewayStatusDetail, p.InitPoint,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("pago %s: %w", p.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago; (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea el pago (webhooks concurrentes con la misma notificación).
func (r *PaymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *PaymentRepo) get(ctx context.Context, id, lock string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByInvoice pagos de la factura en orden de creación.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]entity.Payment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE invoice_id = $1 ORDER BY created_at, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan payments: %w", err)
	}
	return list, nil
}
