package ordering

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// Totals importes de un pedido.
type Totals struct {
	SubtotalOriginal decimal.Decimal
	DiscountTotal    decimal.Decimal // suma de descuentos de promociones
	SubtotalFinal    decimal.Decimal // SubtotalOriginal - DiscountTotal
	DeliveryFee      decimal.Decimal
	TakeAwayDiscount decimal.Decimal
	GrandTotal       decimal.Decimal
}

// TotalsPolicy parámetros de recargo y descuento por forma de entrega.
type TotalsPolicy struct {
	DeliveryFee         decimal.Decimal
	TakeAwayDiscountPct decimal.Decimal
}

// ComputeTotals aplica recargo de envío (DELIVERY) o descuento por retiro
// (TAKE_AWAY, solo si se solicitó). Nunca se aplican ambos.
func ComputeTotals(subtotalOriginal, discountTotal decimal.Decimal, delivery entity.DeliveryType, applyTakeAway bool, policy TotalsPolicy) Totals {
	t := Totals{
		SubtotalOriginal: subtotalOriginal,
		DiscountTotal:    discountTotal,
		SubtotalFinal:    subtotalOriginal.Sub(discountTotal),
		DeliveryFee:      decimal.Zero,
		TakeAwayDiscount: decimal.Zero,
	}
	switch delivery {
	case entity.DeliveryHome:
		t.DeliveryFee = policy.DeliveryFee
	case entity.DeliveryTakeAway:
		if applyTakeAway {
			t.TakeAwayDiscount = t.SubtotalFinal.Mul(policy.TakeAwayDiscountPct).Div(hundred)
		}
	}
	t.GrandTotal = t.SubtotalFinal.Add(t.DeliveryFee).Sub(t.TakeAwayDiscount)
	return t
}
