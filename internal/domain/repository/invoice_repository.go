package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// ErrInvoiceNumberTaken el número de factura ya existe (reintentar con otro).
var ErrInvoiceNumberTaken = errors.New("número de factura en uso")

// InvoiceRepository define el puerto de persistencia para facturas.
type InvoiceRepository interface {
	// Create devuelve domain.ErrDuplicate si el pedido ya tiene factura y
	// ErrInvoiceNumberTaken si el número colisiona.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve la factura con sus pagos; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error)
	CountIssuedOn(ctx context.Context, day time.Time) (int, error)
}

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	// Update persiste estado, datos de pasarela y refresca UpdatedAt.
	Update(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]entity.Payment, error)
}
