package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/inventory"
)

func insumo(id string, stock, cost int64) *entity.Article {
	return &entity.Article{
		ID:            id,
		Kind:          entity.ArticleKindInsumo,
		Denomination:  id,
		PurchasePrice: decimal.NewFromInt(cost),
		Insumo:        &entity.InsumoData{Stock: decimal.NewFromInt(stock)},
	}
}

func pizza(harina, queso *entity.Article) *entity.Article {
	return &entity.Article{
		ID:   "pizza",
		Kind: entity.ArticleKindManufactured,
		Manufactured: &entity.ManufacturedData{
			PreparationMinutes: 20,
			Recipe: []entity.RecipeLine{
				{InsumoID: harina.ID, Quantity: decimal.RequireFromString("0.5"), Insumo: harina},
				{InsumoID: queso.ID, Quantity: decimal.NewFromInt(2), Insumo: queso},
			},
		},
	}
}

func TestRequirements_ManufacturadoEInsumoAcumulan(t *testing.T) {
	harina := insumo("harina", 10, 100)
	queso := insumo("queso", 10, 300)
	gaseosa := insumo("gaseosa", 10, 50)

	reqs := inventory.Requirements([]inventory.Line{
		{Article: pizza(harina, queso), Quantity: 3},
		{Article: queso, Quantity: 1},
		{Article: gaseosa, Quantity: 2},
	})

	require.Len(t, reqs, 3)
	got := map[string]string{}
	for _, r := range reqs {
		got[r.InsumoID] = r.Quantity.String()
	}
	assert.Equal(t, "1.5", got["harina"])
	assert.Equal(t, "7", got["queso"], "2×3 de la receta + 1 directo")
	assert.Equal(t, "2", got["gaseosa"])
}

func TestCheckStock(t *testing.T) {
	harina := insumo("harina", 1, 100)
	queso := insumo("queso", 10, 300)
	insumos := map[string]*entity.Article{"harina": harina, "queso": queso}

	reqs := inventory.Requirements([]inventory.Line{{Article: pizza(harina, queso), Quantity: 2}})
	assert.Empty(t, inventory.CheckStock(reqs, insumos), "1 de harina alcanza para 2 pizzas")

	reqs = inventory.Requirements([]inventory.Line{{Article: pizza(harina, queso), Quantity: 3}})
	short := inventory.CheckStock(reqs, insumos)
	require.Len(t, short, 1)
	assert.Equal(t, "harina", short[0].InsumoID)
	assert.Equal(t, "1.5", short[0].Required.String())
	assert.Equal(t, "1", short[0].Available.String())
}

func TestUnitCost_RecorreReceta(t *testing.T) {
	harina := insumo("harina", 0, 100)
	queso := insumo("queso", 0, 300)

	assert.Equal(t, "650", inventory.UnitCost(pizza(harina, queso)).String(), "0.5×100 + 2×300")
	assert.Equal(t, "300", inventory.UnitCost(queso).String())
	assert.True(t, inventory.UnitCost(nil).IsZero())
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	got := inventory.CostCalculator(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(10), decimal.NewFromInt(200),
	)
	assert.Equal(t, "150", got.String())

	assert.True(t, inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(5)).IsZero())
}
