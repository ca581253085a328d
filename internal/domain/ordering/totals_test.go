package ordering_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/ordering"
)

var policy = ordering.TotalsPolicy{
	DeliveryFee:         decimal.NewFromInt(200),
	TakeAwayDiscountPct: decimal.NewFromInt(10),
}

func TestComputeTotals_DeliverySinPromocion(t *testing.T) {
	// 1 línea, precio $100, cantidad 2, DELIVERY.
	tot := ordering.ComputeTotals(decimal.NewFromInt(200), decimal.Zero, entity.DeliveryHome, false, policy)

	assert.Equal(t, "200", tot.SubtotalFinal.String())
	assert.Equal(t, "200", tot.DeliveryFee.String())
	assert.True(t, tot.TakeAwayDiscount.IsZero())
	assert.Equal(t, "400", tot.GrandTotal.String())
}

func TestComputeTotals_TakeAwayConDescuento(t *testing.T) {
	tot := ordering.ComputeTotals(decimal.NewFromInt(200), decimal.Zero, entity.DeliveryTakeAway, true, policy)

	assert.True(t, tot.DeliveryFee.IsZero())
	assert.Equal(t, "20", tot.TakeAwayDiscount.String())
	assert.Equal(t, "180", tot.GrandTotal.String())
}

func TestComputeTotals_TakeAwaySinSolicitarDescuento(t *testing.T) {
	tot := ordering.ComputeTotals(decimal.NewFromInt(200), decimal.Zero, entity.DeliveryTakeAway, false, policy)
	assert.Equal(t, "200", tot.GrandTotal.String())
}

func TestComputeTotals_DeliveryIgnoraDescuentoPorRetiro(t *testing.T) {
	tot := ordering.ComputeTotals(decimal.NewFromInt(200), decimal.NewFromInt(40), entity.DeliveryHome, true, policy)

	assert.True(t, tot.TakeAwayDiscount.IsZero(), "nunca se aplican ambos ajustes")
	assert.Equal(t, "160", tot.SubtotalFinal.String())
	assert.True(t, tot.GrandTotal.Equal(tot.SubtotalFinal.Add(tot.DeliveryFee)))
}
