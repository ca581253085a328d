package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// InvoiceGenerator emite la factura de un pedido. Se ejecuta dentro de la transacción
// del caller: la unicidad pedido/número la garantizan las restricciones de la tabla.
type InvoiceGenerator struct {
	deliveryFee decimal.Decimal
	retries     int
	loc         *time.Location
	now         func() time.Time
}

// NewInvoiceGenerator construye el generador. retries es la cantidad de intentos
// ante colisión del número de factura.
func NewInvoiceGenerator(deliveryFee decimal.Decimal, retries int, loc *time.Location) *InvoiceGenerator {
	if retries <= 0 {
		retries = 1
	}
	if loc == nil {
		loc = time.UTC
	}
	return &InvoiceGenerator{deliveryFee: deliveryFee, retries: retries, loc: loc, now: time.Now}
}

// Amounts calcula los importes de la factura a partir del pedido. El total del pedido ya
// es neto: envío = recargo cobrado en el pedido si es DELIVERY (el configurado si el pedido
// no lo registra), subtotal = total − envío + descuento.
func (g *InvoiceGenerator) Amounts(order *entity.Order) (subtotal, discount, shipping, total decimal.Decimal) {
	shipping = decimal.Zero
	if order.DeliveryType == entity.DeliveryHome {
		shipping = order.DeliveryFee
		if shipping.IsZero() {
			shipping = g.deliveryFee
		}
	}
	total = order.Total
	discount = order.Discount
	subtotal = total.Sub(shipping).Add(discount)
	return subtotal, discount, shipping, total
}

// Generate crea la factura del pedido y la asocia. domain.ErrDuplicate si ya tiene una.
func (g *InvoiceGenerator) Generate(ctx context.Context, repos repository.TxRepos, order *entity.Order) (*entity.Invoice, error) {
	existing, err := repos.Invoices.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("pedido %s ya facturado: %w", order.ID, domain.ErrDuplicate)
	}

	now := g.now().In(g.loc)
	issued, err := repos.Invoices.CountIssuedOn(ctx, now)
	if err != nil {
		return nil, err
	}
	subtotal, discount, shipping, total := g.Amounts(order)
	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		OrderID:      order.ID,
		IssuedAt:     now,
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Total:        total,
	}

	for attempt := 0; attempt < g.retries; attempt++ {
		inv.Number = InvoiceNumber(now, issued+1+attempt)
		err = repos.Invoices.Create(ctx, inv)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrInvoiceNumberTaken) {
			return nil, err
		}
		log.Ctx(ctx).Debug().Str("numero", inv.Number).Msg("número de factura en uso, reintentando")
	}
	if err != nil {
		return nil, fmt.Errorf("asignar número de factura: %w", err)
	}
	if err := repos.Orders.SetInvoice(ctx, order.ID, inv.ID); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("pedido_id", order.ID).Str("factura", inv.Number).Msg("factura emitida")
	return inv, nil
}

// InvoiceNumber arma el número legible FAC-YYYYMMDD-NNNN.
func InvoiceNumber(day time.Time, seq int) string {
	return fmt.Sprintf("FAC-%s-%04d", day.Format("20060102"), seq)
}
