package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/inventory"
	domainordering "github.com/jhoicas/BuenSabor-api/internal/domain/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

const instrumentationName = "github.com/jhoicas/BuenSabor-api/internal/application/ordering"

// InvoiceIssuer genera la factura de un pedido dentro de la transacción en curso.
type InvoiceIssuer interface {
	Generate(ctx context.Context, repos repository.TxRepos, order *entity.Order) (*entity.Invoice, error)
}

// OrderUseCase casos de uso del pedido.
type OrderUseCase struct {
	tx        repository.TxRunner
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	pricing   *PricingEngine
	stock     *StockService
	invoices  InvoiceIssuer

	tracer      trace.Tracer
	transitions metric.Int64Counter
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso. invoices puede ser nil (no se factura al confirmar).
func NewOrderUseCase(
	tx repository.TxRunner,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	pricing *PricingEngine,
	stock *StockService,
	invoices InvoiceIssuer,
) *OrderUseCase {
	meter := otel.Meter(instrumentationName)
	counter, err := meter.Int64Counter("buen_sabor.order.transitions",
		metric.WithDescription("Transiciones de estado de pedidos"))
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo crear el contador de transiciones")
	}
	return &OrderUseCase{
		tx:          tx,
		orders:      orders,
		customers:   customers,
		pricing:     pricing,
		stock:       stock,
		invoices:    invoices,
		tracer:      otel.Tracer(instrumentationName),
		transitions: counter,
		now:         time.Now,
	}
}

func priceInput(in dto.CreateOrderRequest) PriceInput {
	lines := make([]LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, LineInput{ArticleID: l.ArticleID, Quantity: l.Quantity, PromotionID: l.PromotionID})
	}
	return PriceInput{
		Lines:                 lines,
		DeliveryType:          entity.DeliveryType(in.DeliveryType),
		BranchID:              in.BranchID,
		ApplyTakeAwayDiscount: in.ApplyTakeAwayDiscount,
	}
}

// Create cotiza, valida stock y persiste el pedido en PENDIENTE. El stock no se descuenta
// hasta que el pedido pasa a preparación.
func (uc *OrderUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := uc.checkCustomer(ctx, actor, in); err != nil {
		return nil, err
	}
	quote, err := uc.pricing.PriceOrder(ctx, priceInput(in))
	if err != nil {
		return nil, err
	}
	lines := quote.StockLines()
	ok, shortages, err := uc.stock.Validate(ctx, lines)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ShortageError{Shortages: shortages}
	}
	minutes, err := uc.pricing.EstimateMinutes(ctx, lines, entity.DeliveryType(in.DeliveryType))
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:               uuid.New().String(),
		CustomerID:       in.CustomerID,
		BranchID:         in.BranchID,
		Status:           entity.OrderPending,
		DeliveryType:     entity.DeliveryType(in.DeliveryType),
		Notes:            in.Notes,
		Subtotal:         quote.SubtotalOriginal,
		Discount:         quote.DiscountTotal.Add(quote.TakeAwayDiscount),
		DeliveryFee:      quote.DeliveryFee,
		Total:            quote.GrandTotal,
		TotalCost:        quote.TotalCost,
		EstimatedMinutes: minutes,
		EstimatedReadyAt: now.Add(time.Duration(minutes) * time.Minute),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if order.DeliveryType == entity.DeliveryHome {
		order.AddressID = in.AddressID
	}
	for _, l := range quote.Lines {
		line := entity.OrderLine{
			ID:            uuid.New().String(),
			OrderID:       order.ID,
			ArticleID:     l.Article.ID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Subtotal:      l.Subtotal,
			Discount:      l.Discount,
			FinalSubtotal: l.FinalSubtotal,
			UnitCost:      l.UnitCost,
		}
		if l.Promotion != nil {
			line.PromotionID = l.Promotion.ID
		}
		order.Lines = append(order.Lines, line)
	}

	if err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		return repos.Orders.Create(ctx, order)
	}); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	log.Ctx(ctx).Info().Str("pedido_id", order.ID).Str("cliente_id", order.CustomerID).
		Str("total", order.Total.String()).Msg("pedido creado")
	return toOrderResponse(order, true), nil
}

// checkCustomer valida el cliente y, para DELIVERY, que el domicilio sea suyo.
func (uc *OrderUseCase) checkCustomer(ctx context.Context, actor dto.Actor, in dto.CreateOrderRequest) error {
	if actor.IsClient() && actor.CustomerID != in.CustomerID {
		return domain.ErrForbidden
	}
	if in.BranchID == "" {
		return domain.InvalidInput("sucursal_id requerido")
	}
	c, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}
	if entity.DeliveryType(in.DeliveryType) != entity.DeliveryHome {
		return nil
	}
	if in.AddressID == "" {
		return domain.InvalidInput("domicilio_id requerido para DELIVERY")
	}
	addr, err := uc.customers.GetAddress(ctx, in.AddressID)
	if err != nil {
		return err
	}
	if addr == nil || addr.CustomerID != in.CustomerID {
		return domain.InvalidInput("domicilio %s no pertenece al cliente", in.AddressID)
	}
	return nil
}

// Validate informa si hay stock suficiente sin persistir nada.
func (uc *OrderUseCase) Validate(ctx context.Context, in dto.CreateOrderRequest) (*dto.StockValidationResponse, error) {
	lines, err := uc.pricing.ResolveLines(ctx, priceInput(in).Lines)
	if err != nil {
		return nil, err
	}
	ok, shortages, err := uc.stock.Validate(ctx, lines)
	if err != nil {
		return nil, err
	}
	return &dto.StockValidationResponse{Sufficient: ok, Shortages: toShortages(shortages)}, nil
}

// Quote calcula los totales sin persistir.
func (uc *OrderUseCase) Quote(ctx context.Context, in dto.CreateOrderRequest) (*dto.QuoteResponse, error) {
	q, err := uc.pricing.PriceOrder(ctx, priceInput(in))
	if err != nil {
		return nil, err
	}
	resp := &dto.QuoteResponse{
		SubtotalOriginal: q.SubtotalOriginal,
		DiscountTotal:    q.DiscountTotal,
		SubtotalFinal:    q.SubtotalFinal,
		DeliveryFee:      q.DeliveryFee,
		TakeAwayDiscount: q.TakeAwayDiscount,
		GrandTotal:       q.GrandTotal,
	}
	for _, l := range q.Lines {
		lq := dto.LineQuote{
			ArticleID:      l.Article.ID,
			Denomination:   l.Article.Denomination,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			Subtotal:       l.Subtotal,
			Discount:       l.Discount,
			FinalUnitPrice: l.FinalUnitPrice,
			FinalSubtotal:  l.FinalSubtotal,
		}
		if l.Promotion != nil {
			lq.PromotionID = l.Promotion.ID
		}
		resp.Lines = append(resp.Lines, lq)
	}
	return resp, nil
}

// Estimate calcula el tiempo estimado sin persistir.
func (uc *OrderUseCase) Estimate(ctx context.Context, in dto.CreateOrderRequest) (*dto.EstimateResponse, error) {
	delivery := entity.DeliveryType(in.DeliveryType)
	if !delivery.Valid() {
		return nil, domain.InvalidInput("tipo_envio inválido %q", in.DeliveryType)
	}
	lines, err := uc.pricing.ResolveLines(ctx, priceInput(in).Lines)
	if err != nil {
		return nil, err
	}
	minutes, err := uc.pricing.EstimateMinutes(ctx, lines, delivery)
	if err != nil {
		return nil, err
	}
	return &dto.EstimateResponse{
		Minutes:          minutes,
		EstimatedReadyAt: uc.now().Add(time.Duration(minutes) * time.Minute),
	}, nil
}

// Confirm PENDIENTE → EN_PREPARACION: descuenta stock y factura.
func (uc *OrderUseCase) Confirm(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, id, entity.OrderPreparation)
}

// StartPreparation alias de Confirm expuesto para la cocina.
func (uc *OrderUseCase) StartPreparation(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, id, entity.OrderPreparation)
}

// MarkReady EN_PREPARACION → LISTO.
func (uc *OrderUseCase) MarkReady(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, id, entity.OrderReady)
}

// Deliver LISTO → ENTREGADO (o EN_PREPARACION → ENTREGADO si es retiro en local).
func (uc *OrderUseCase) Deliver(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, id, entity.OrderDelivered)
}

// Cancel cancela un pedido no terminal; repone stock si ya se había descontado.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, actor, id, entity.OrderCancelled)
}

func (uc *OrderUseCase) transition(ctx context.Context, actor dto.Actor, id string, target entity.OrderStatus) (*dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "ordering.transition", trace.WithAttributes(
		attribute.String("order.id", id),
		attribute.String("order.target", string(target)),
	))
	defer span.End()

	var (
		updated *entity.Order
		from    entity.OrderStatus
	)
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
		}
		if actor.IsClient() && order.CustomerID != actor.CustomerID {
			return domain.ErrForbidden
		}
		from = order.Status

		effect, err := domainordering.Transition(order, target)
		if err != nil {
			return err
		}
		switch effect {
		case domainordering.EffectCommitStock:
			if err := uc.stock.Commit(ctx, repos, order, actor.UserID); err != nil {
				return err
			}
			if uc.invoices != nil && order.InvoiceID == "" {
				inv, err := uc.invoices.Generate(ctx, repos, order)
				if err != nil && !errors.Is(err, domain.ErrDuplicate) {
					return err
				}
				if inv != nil {
					order.InvoiceID = inv.ID
				}
			}
		case domainordering.EffectRollbackStock:
			if err := uc.stock.Rollback(ctx, repos, order, actor.UserID); err != nil {
				return err
			}
		}

		now := uc.now()
		if err := repos.Orders.UpdateStatus(ctx, order.ID, target, now); err != nil {
			return err
		}
		order.Status = target
		order.UpdatedAt = now
		updated = order
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Ctx(ctx).Warn().Err(err).Str("pedido_id", id).Str("destino", string(target)).Msg("transición rechazada")
		return nil, err
	}

	if uc.transitions != nil {
		uc.transitions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from", string(from)),
			attribute.String("to", string(target)),
		))
	}
	log.Ctx(ctx).Info().Str("pedido_id", id).Str("desde", string(from)).Str("hacia", string(target)).
		Msg("transición de pedido")
	return toOrderResponse(updated, true), nil
}

// Get obtiene un pedido. Para pedidos pendientes recalcula si el stock sigue alcanzando.
func (uc *OrderUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	if actor.IsClient() && order.CustomerID != actor.CustomerID {
		return nil, domain.ErrForbidden
	}
	sufficient := true
	if order.Status == entity.OrderPending {
		lines := make([]LineInput, 0, len(order.Lines))
		for _, l := range order.Lines {
			lines = append(lines, LineInput{ArticleID: l.ArticleID, Quantity: l.Quantity})
		}
		resolved, err := uc.pricing.ResolveLines(ctx, lines)
		if err == nil {
			sufficient, _, err = uc.stock.Validate(ctx, resolved)
		}
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("pedido_id", id).Msg("no se pudo revalidar stock")
			sufficient = false
		}
	}
	return toOrderResponse(order, sufficient), nil
}

// List lista pedidos; un cliente solo ve los suyos.
func (uc *OrderUseCase) List(ctx context.Context, actor dto.Actor, in dto.OrderListRequest) ([]*dto.OrderResponse, error) {
	in.DefaultPage()
	f := repository.OrderFilter{
		Status:     entity.OrderStatus(in.Status),
		CustomerID: in.CustomerID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if actor.IsClient() {
		f.CustomerID = actor.CustomerID
	}
	list, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o, true))
	}
	return out, nil
}

func toShortages(in []inventory.Shortage) []dto.StockShortage {
	if len(in) == 0 {
		return nil
	}
	out := make([]dto.StockShortage, 0, len(in))
	for _, s := range in {
		out = append(out, dto.StockShortage{
			InsumoID:     s.InsumoID,
			Denomination: s.Denomination,
			Required:     s.Required,
			Available:    s.Available,
		})
	}
	return out
}

func toOrderResponse(o *entity.Order, sufficient bool) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		AddressID:        o.AddressID,
		BranchID:         o.BranchID,
		Status:           string(o.Status),
		DeliveryType:     string(o.DeliveryType),
		Notes:            o.Notes,
		Subtotal:         o.Subtotal,
		Discount:         o.Discount,
		DeliveryFee:      o.DeliveryFee,
		Total:            o.Total,
		EstimatedMinutes: o.EstimatedMinutes,
		EstimatedReadyAt: o.EstimatedReadyAt,
		StockSufficient:  sufficient,
		InvoiceID:        o.InvoiceID,
		CreatedAt:        o.CreatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:            l.ID,
			ArticleID:     l.ArticleID,
			PromotionID:   l.PromotionID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Subtotal:      l.Subtotal,
			Discount:      l.Discount,
			FinalSubtotal: l.FinalSubtotal,
		})
	}
	return resp
}

// ShortagesOf extrae los faltantes de un error de stock, si lo es.
func ShortagesOf(err error) []dto.StockShortage {
	var se *ShortageError
	if errors.As(err, &se) {
		return toShortages(se.Shortages)
	}
	return nil
}
