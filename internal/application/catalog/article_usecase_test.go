package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/catalog"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc     *catalog.ArticleUseCase
	harina *dto.ArticleResponse
	queso  *dto.ArticleResponse
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	uc := catalog.NewArticleUseCase(store.Repos().Articles, store.Categories())
	ctx := context.Background()

	harina, err := uc.CreateInsumo(ctx, dto.CreateInsumoRequest{
		Denomination: "Harina 000", PurchasePrice: dec("2"), UnitMeasure: "kg",
		Stock: dec("10"), MinStock: dec("2"), ForPreparation: true,
	})
	require.NoError(t, err)
	queso, err := uc.CreateInsumo(ctx, dto.CreateInsumoRequest{
		Denomination: "Queso Mozzarélla", PurchasePrice: dec("10"), UnitMeasure: "kg",
		Stock: dec("1"), MinStock: dec("1"), ForPreparation: true,
	})
	require.NoError(t, err)
	return fixture{uc: uc, harina: harina, queso: queso}
}

// ──────────────────────────────────────────────────────────────────────────────
// Manufacturados
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateManufactured_CostoDesdeReceta(t *testing.T) {
	f := setup(t)
	pizza, err := f.uc.CreateManufactured(context.Background(), dto.CreateManufacturedRequest{
		Denomination: "Pizza Muzza", SalePrice: dec("100"), UnitMeasure: "u", PreparationMinutes: 15,
		Recipe: []dto.RecipeLineRequest{
			{InsumoID: f.harina.ID, Quantity: dec("0.5")},
			{InsumoID: f.queso.ID, Quantity: dec("0.2")},
		},
	})
	require.NoError(t, err)
	assert.True(t, pizza.Cost.Equal(dec("3")), "0.5×2 + 0.2×10, obtenido %s", pizza.Cost)
	require.Len(t, pizza.Recipe, 2)
	assert.Equal(t, "Harina 000", pizza.Recipe[0].Denomination)

	got, err := f.uc.GetByID(context.Background(), pizza.ID)
	require.NoError(t, err)
	assert.Len(t, got.Recipe, 2, "la receta se resuelve al leer")
}

func TestCreateManufactured_RecetaInvalida(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base, err := f.uc.CreateManufactured(ctx, dto.CreateManufacturedRequest{
		Denomination: "Masa", UnitMeasure: "u",
		Recipe: []dto.RecipeLineRequest{{InsumoID: f.harina.ID, Quantity: dec("1")}},
	})
	require.NoError(t, err)

	cases := map[string][]dto.RecipeLineRequest{
		"cantidad cero":   {{InsumoID: f.harina.ID, Quantity: decimal.Zero}},
		"insumo repetido": {{InsumoID: f.harina.ID, Quantity: dec("1")}, {InsumoID: f.harina.ID, Quantity: dec("2")}},
		"no es un insumo": {{InsumoID: base.ID, Quantity: dec("1")}},
		"receta vacía":    {},
	}
	for name, recipe := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.CreateManufactured(ctx, dto.CreateManufacturedRequest{
				Denomination: "Pizza", UnitMeasure: "u", Recipe: recipe,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err = f.uc.CreateManufactured(ctx, dto.CreateManufacturedRequest{
		Denomination: "Pizza", UnitMeasure: "u",
		Recipe: []dto.RecipeLineRequest{{InsumoID: "fantasma", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y bajas
// ──────────────────────────────────────────────────────────────────────────────

func TestList_BusquedaSinAcentosYSoloActivos(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	list, err := f.uc.List(ctx, dto.ArticleListRequest{Query: "mozzarella"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.queso.ID, list[0].ID)

	off := false
	_, err = f.uc.Update(ctx, f.queso.ID, dto.UpdateArticleRequest{Active: &off})
	require.NoError(t, err)

	list, err = f.uc.List(ctx, dto.ArticleListRequest{Query: "mozzarella"})
	require.NoError(t, err)
	assert.Empty(t, list, "la baja lógica oculta el artículo")
}

func TestLowStock(t *testing.T) {
	f := setup(t)
	list, err := f.uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.queso.ID, list[0].ID, "stock igual al mínimo cuenta como bajo")
}

func TestUpdate_StockMinimoSoloEnInsumos(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	pizza, err := f.uc.CreateManufactured(ctx, dto.CreateManufacturedRequest{
		Denomination: "Pizza", UnitMeasure: "u",
		Recipe: []dto.RecipeLineRequest{{InsumoID: f.harina.ID, Quantity: dec("1")}},
	})
	require.NoError(t, err)

	minimo := dec("3")
	_, err = f.uc.Update(ctx, pizza.ID, dto.UpdateArticleRequest{MinStock: &minimo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := f.uc.Update(ctx, f.harina.ID, dto.UpdateArticleRequest{MinStock: &minimo})
	require.NoError(t, err)
	assert.True(t, updated.MinStock.Equal(minimo))
}
