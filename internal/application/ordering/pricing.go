// Package ordering orquesta el ciclo de vida del pedido: cotización, control de
// stock, transiciones de estado y sus efectos colaterales.
package ordering

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/inventory"
	domainordering "github.com/jhoicas/BuenSabor-api/internal/domain/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// ArticleResolver resuelve artículos del catálogo (catalog.Lookup).
type ArticleResolver interface {
	ResolveArticle(ctx context.Context, id string) (*entity.Article, error)
}

// DiscountResolver resuelve el descuento de una línea (promotion.Resolver).
type DiscountResolver interface {
	ResolveDiscount(ctx context.Context, article *entity.Article, quantity int, branchID, promotionID string, now time.Time) (decimal.Decimal, *entity.Promotion)
}

// PricingConfig parámetros del motor de precios.
type PricingConfig struct {
	Policy          domainordering.TotalsPolicy
	DeliveryMinutes int
	Cooks           int
}

// LineInput línea pedida.
type LineInput struct {
	ArticleID   string
	Quantity    int
	PromotionID string
}

// PriceInput entrada de PriceOrder.
type PriceInput struct {
	Lines                 []LineInput
	DeliveryType          entity.DeliveryType
	BranchID              string
	ApplyTakeAwayDiscount bool
}

// PricedLine línea cotizada.
type PricedLine struct {
	Article        *entity.Article
	Quantity       int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	FinalUnitPrice decimal.Decimal
	FinalSubtotal  decimal.Decimal
	UnitCost       decimal.Decimal
	Promotion      *entity.Promotion
}

// Quote resultado de PriceOrder. TotalCost es de uso interno (estadísticas).
type Quote struct {
	Lines []PricedLine
	domainordering.Totals
	TotalCost decimal.Decimal
}

// StockLines líneas para el control de stock.
func (q *Quote) StockLines() []inventory.Line {
	out := make([]inventory.Line, 0, len(q.Lines))
	for _, l := range q.Lines {
		out = append(out, inventory.Line{Article: l.Article, Quantity: l.Quantity})
	}
	return out
}

// PricingEngine calcula totales y tiempo estimado de un pedido. No persiste nada.
type PricingEngine struct {
	articles   ArticleResolver
	promotions DiscountResolver
	orders     repository.OrderRepository
	cfg        PricingConfig
	now        func() time.Time
}

// NewPricingEngine construye el motor. orders se usa solo para la carga de la cocina.
func NewPricingEngine(articles ArticleResolver, promotions DiscountResolver, orders repository.OrderRepository, cfg PricingConfig) *PricingEngine {
	if cfg.Cooks <= 0 {
		cfg.Cooks = 1
	}
	return &PricingEngine{articles: articles, promotions: promotions, orders: orders, cfg: cfg, now: time.Now}
}

// ResolveLines resuelve los artículos de las líneas sin aplicar precios.
func (e *PricingEngine) ResolveLines(ctx context.Context, lines []LineInput) ([]inventory.Line, error) {
	if len(lines) == 0 {
		return nil, domain.InvalidInput("el pedido no tiene detalles")
	}
	out := make([]inventory.Line, 0, len(lines))
	for _, l := range lines {
		a, err := e.resolveSellable(ctx, l)
		if err != nil {
			return nil, err
		}
		out = append(out, inventory.Line{Article: a, Quantity: l.Quantity})
	}
	return out, nil
}

func (e *PricingEngine) resolveSellable(ctx context.Context, l LineInput) (*entity.Article, error) {
	if l.Quantity <= 0 {
		return nil, domain.InvalidInput("cantidad debe ser mayor a 0 (%s)", l.ArticleID)
	}
	a, err := e.articles.ResolveArticle(ctx, l.ArticleID)
	if err != nil {
		return nil, err
	}
	if !a.Active {
		return nil, domain.InvalidInput("artículo %s dado de baja", a.ID)
	}
	if a.IsInsumo() && a.Insumo != nil && a.Insumo.ForPreparation {
		return nil, domain.InvalidInput("el insumo %s no se vende por separado", a.ID)
	}
	return a, nil
}

// PriceOrder cotiza el pedido: subtotales, promociones, envío o descuento por retiro y costo.
func (e *PricingEngine) PriceOrder(ctx context.Context, in PriceInput) (*Quote, error) {
	if !in.DeliveryType.Valid() {
		return nil, domain.InvalidInput("tipo_envio inválido %q", in.DeliveryType)
	}
	if len(in.Lines) == 0 {
		return nil, domain.InvalidInput("el pedido no tiene detalles")
	}
	now := e.now()
	q := &Quote{Lines: make([]PricedLine, 0, len(in.Lines)), TotalCost: decimal.Zero}
	subtotal, discount := decimal.Zero, decimal.Zero

	for _, l := range in.Lines {
		a, err := e.resolveSellable(ctx, l)
		if err != nil {
			return nil, err
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		lineSubtotal := a.SalePrice.Mul(qty)
		d, promo := e.promotions.ResolveDiscount(ctx, a, l.Quantity, in.BranchID, l.PromotionID, now)
		unitCost := inventory.UnitCost(a)

		q.Lines = append(q.Lines, PricedLine{
			Article:        a,
			Quantity:       l.Quantity,
			UnitPrice:      a.SalePrice,
			Subtotal:       lineSubtotal,
			Discount:       d,
			FinalUnitPrice: a.SalePrice.Sub(d.Div(qty)),
			FinalSubtotal:  lineSubtotal.Sub(d),
			UnitCost:       unitCost,
			Promotion:      promo,
		})
		subtotal = subtotal.Add(lineSubtotal)
		discount = discount.Add(d)
		q.TotalCost = q.TotalCost.Add(unitCost.Mul(qty))
	}

	q.Totals = domainordering.ComputeTotals(subtotal, discount, in.DeliveryType, in.ApplyTakeAwayDiscount, e.cfg.Policy)
	return q, nil
}

// EstimateMinutes tiempo estimado: preparación de los manufacturados × cantidad, más la
// carga actual de la cocina repartida entre los cocineros, más el envío si es DELIVERY.
func (e *PricingEngine) EstimateMinutes(ctx context.Context, lines []inventory.Line, delivery entity.DeliveryType) (int, error) {
	minutes := 0
	for _, l := range lines {
		minutes += l.Article.PreparationMinutes() * l.Quantity
	}
	if e.orders != nil {
		load, err := e.orders.SumEstimatedMinutes(ctx, entity.OrderPreparation)
		if err != nil {
			return 0, err
		}
		minutes += load / e.cfg.Cooks
	}
	if delivery == entity.DeliveryHome {
		minutes += e.cfg.DeliveryMinutes
	}
	return minutes, nil
}
