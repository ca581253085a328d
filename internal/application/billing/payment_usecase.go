package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// MapGatewayStatus traduce el estado de MercadoPago al estado del pago.
// Estados desconocidos quedan PENDIENTE.
func MapGatewayStatus(status string) entity.PaymentStatus {
	switch strings.ToLower(status) {
	case "approved":
		return entity.PaymentApproved
	case "rejected":
		return entity.PaymentRejected
	case "cancelled":
		return entity.PaymentCancelled
	case "refunded", "charged_back":
		return entity.PaymentRefunded
	default:
		return entity.PaymentPending
	}
}

// PaymentUseCase pagos en efectivo, checkout de MercadoPago y webhook.
type PaymentUseCase struct {
	tx        repository.TxRunner
	invoices  repository.InvoiceRepository
	payments  repository.PaymentRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	gateway   PaymentGateway
	tracer    trace.Tracer
	now       func() time.Time
}

// NewPaymentUseCase construye el caso de uso. gateway nil deshabilita MercadoPago.
func NewPaymentUseCase(
	tx repository.TxRunner,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	gateway PaymentGateway,
) *PaymentUseCase {
	return &PaymentUseCase{
		tx:        tx,
		invoices:  invoices,
		payments:  payments,
		customers: customers,
		orders:    orders,
		gateway:   gateway,
		tracer:    otel.Tracer("github.com/jhoicas/BuenSabor-api/internal/application/billing"),
		now:       time.Now,
	}
}

// reserve crea un pago PENDIENTE si el monto cabe en el saldo no comprometido.
// Monto cero = todo el saldo disponible. Un cliente solo paga facturas de sus pedidos.
func (uc *PaymentUseCase) reserve(ctx context.Context, actor dto.Actor, invoiceID string, method entity.PaymentMethod, amount decimal.Decimal) (*entity.Payment, *entity.Invoice, error) {
	if amount.IsNegative() {
		return nil, nil, domain.InvalidInput("monto negativo")
	}
	var (
		payment *entity.Payment
		invoice *entity.Invoice
	)
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		inv, err := repos.Invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("factura %s: %w", invoiceID, domain.ErrNotFound)
		}
		order, err := repos.Orders.GetByID(ctx, inv.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", inv.OrderID, domain.ErrNotFound)
		}
		if actor.IsClient() && order.CustomerID != actor.CustomerID {
			return domain.ErrForbidden
		}
		if order.Status == entity.OrderCancelled {
			return fmt.Errorf("pedido %s cancelado, no admite pagos: %w", order.ID, domain.ErrInvalidState)
		}
		available := inv.ReservedBalance()
		if amount.IsZero() {
			amount = available
		}
		if !amount.IsPositive() || amount.GreaterThan(available) {
			return domain.InvalidInput("monto %s supera el saldo disponible %s", amount, available)
		}
		now := uc.now()
		payment = &entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Method:    method,
			Status:    entity.PaymentPending,
			Amount:    amount,
			Currency:  entity.DefaultCurrency,
			CreatedAt: now,
			UpdatedAt: now,
		}
		invoice = inv
		return repos.Payments.Create(ctx, payment)
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, invoice, nil
}

// CreateCash registra un pago en efectivo pendiente de confirmación en caja.
func (uc *PaymentUseCase) CreateCash(ctx context.Context, invoiceID string, in dto.CashPaymentRequest) (*dto.PaymentResponse, error) {
	p, _, err := uc.reserve(ctx, dto.Actor{}, invoiceID, entity.PaymentCash, in.Amount)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// CreateGatewayCheckout crea el pago y la preferencia de MercadoPago; devuelve el init point.
func (uc *PaymentUseCase) CreateGatewayCheckout(ctx context.Context, actor dto.Actor, invoiceID string, in dto.GatewayPaymentRequest) (*dto.PaymentResponse, error) {
	if uc.gateway == nil {
		return nil, domain.ErrGatewayUnavailable
	}
	p, inv, err := uc.reserve(ctx, actor, invoiceID, entity.PaymentMercadoPago, in.Amount)
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = "El Buen Sabor - Factura " + inv.Number
	}
	req := PreferenceRequest{ExternalReference: p.ID, Title: title, Amount: p.Amount, Currency: p.Currency}
	if order, oErr := uc.orders.GetByID(ctx, inv.OrderID); oErr == nil && order != nil {
		if c, cErr := uc.customers.GetByID(ctx, order.CustomerID); cErr == nil && c != nil {
			req.PayerEmail = c.Email
		}
	}

	pref, gwErr := uc.gateway.CreatePreference(ctx, req)
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		cur, err := repos.Payments.GetForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		if gwErr != nil {
			cur.Status = entity.PaymentCancelled
			cur.GatewayStatusDetail = "preference_error"
		} else {
			cur.GatewayPreferenceID = pref.ID
			cur.InitPoint = pref.InitPoint
		}
		if err := repos.Payments.Update(ctx, cur); err != nil {
			return err
		}
		p = cur
		return nil
	})
	if gwErr != nil {
		log.Ctx(ctx).Error().Err(gwErr).Str("pago_id", p.ID).Msg("MercadoPago no creó la preferencia")
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, gwErr)
	}
	if err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// ConfirmCash aprueba un pago en efectivo pendiente.
func (uc *PaymentUseCase) ConfirmCash(ctx context.Context, paymentID string) (*dto.PaymentResponse, error) {
	return uc.settleCash(ctx, paymentID, entity.PaymentApproved)
}

// RejectCash rechaza un pago en efectivo pendiente.
func (uc *PaymentUseCase) RejectCash(ctx context.Context, paymentID string) (*dto.PaymentResponse, error) {
	return uc.settleCash(ctx, paymentID, entity.PaymentRejected)
}

func (uc *PaymentUseCase) settleCash(ctx context.Context, paymentID string, target entity.PaymentStatus) (*dto.PaymentResponse, error) {
	var out *entity.Payment
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		p, err := repos.Payments.GetForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("pago %s: %w", paymentID, domain.ErrNotFound)
		}
		if p.Method != entity.PaymentCash {
			return domain.InvalidInput("los pagos de MercadoPago se actualizan por webhook")
		}
		if p.IsFinal() {
			return &domain.TransitionError{Entity: "pago", From: string(p.Status), To: string(target)}
		}
		p.Status = target
		if err := repos.Payments.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToPaymentResponse(out), nil
}

// skipNotification devuelve el motivo por el que una notificación no debe aplicarse al pago,
// o "" si puede aplicarse.
//   - Solo los pagos MERCADO_PAGO se actualizan por webhook.
//   - Un pago aprobado solo pasa a REEMBOLSADO, y solo por el mismo intento de la pasarela.
//   - Un reembolso es definitivo.
//   - Un estado final no vuelve a PENDIENTE.
//   - No se aprueba un monto distinto al solicitado.
func skipNotification(p *entity.Payment, gp *GatewayPayment, target entity.PaymentStatus) string {
	switch {
	case p.Method != entity.PaymentMercadoPago:
		return "notificación para un pago que no es de MercadoPago"
	case p.Status == entity.PaymentApproved && p.GatewayPaymentID != "" && p.GatewayPaymentID != gp.ID:
		return "notificación de otro intento sobre un pago ya aprobado"
	case p.Status == entity.PaymentApproved && target != entity.PaymentRefunded:
		return "un pago aprobado solo admite reembolso"
	case p.Status == entity.PaymentRefunded:
		return "pago reembolsado, estado definitivo"
	case p.IsFinal() && target == entity.PaymentPending:
		return "notificación atrasada, se conserva el estado final"
	case target == entity.PaymentApproved && !gp.Amount.Equal(p.Amount):
		return "monto aprobado distinto al solicitado"
	}
	return ""
}

// WebhookInput notificación recibida junto con los headers de firma.
type WebhookInput struct {
	Notification dto.WebhookNotification
	Topic        string // query "type" o "topic" si el body no lo trae
	DataID       string // query "data.id" si el body no lo trae
	Signature    string // header x-signature
	RequestID    string // header x-request-id
}

// HandleWebhook procesa una notificación de MercadoPago: valida la firma, consulta el pago
// en la pasarela y actualiza el pago local. Reenvíos con el mismo estado no cambian nada.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, in WebhookInput) error {
	ctx, span := uc.tracer.Start(ctx, "billing.webhook")
	defer span.End()

	if uc.gateway == nil {
		return domain.ErrGatewayUnavailable
	}
	topic := in.Notification.Type
	if topic == "" {
		topic = in.Topic
	}
	dataID := in.Notification.Data.ID
	if dataID == "" {
		dataID = in.DataID
	}
	if topic != "payment" || dataID == "" {
		log.Ctx(ctx).Debug().Str("topic", topic).Msg("notificación ignorada")
		return nil
	}
	span.SetAttributes(attribute.String("gateway.payment_id", dataID))

	if err := uc.gateway.VerifyNotification(in.Signature, in.RequestID, dataID); err != nil {
		span.SetStatus(codes.Error, "firma inválida")
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	gp, err := uc.gateway.GetPayment(ctx, dataID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	if gp.ExternalReference == "" {
		log.Ctx(ctx).Warn().Str("mp_payment_id", gp.ID).Msg("pago sin external_reference")
		return nil
	}

	target := MapGatewayStatus(gp.Status)
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		p, err := repos.Payments.GetForUpdate(ctx, gp.ExternalReference)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("pago %s: %w", gp.ExternalReference, domain.ErrNotFound)
		}
		if p.Status == target && p.GatewayPaymentID == gp.ID && p.GatewayStatusDetail == gp.StatusDetail {
			return nil
		}
		if reason := skipNotification(p, gp, target); reason != "" {
			log.Ctx(ctx).Warn().Str("pago_id", p.ID).Str("estado", string(p.Status)).
				Str("mp_payment_id", gp.ID).Str("mp_status", gp.Status).Msg(reason)
			return nil
		}
		p.Status = target
		p.GatewayPaymentID = gp.ID
		p.GatewayStatusDetail = gp.StatusDetail
		return repos.Payments.Update(ctx, p)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Ctx(ctx).Warn().Str("external_reference", gp.ExternalReference).Msg("pago desconocido en webhook")
			return nil
		}
		span.RecordError(err)
		return err
	}
	log.Ctx(ctx).Info().Str("pago_id", gp.ExternalReference).Str("estado", string(target)).Msg("pago actualizado por webhook")
	return nil
}
