package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/application/inventory"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegisterPurchase_PromedioPonderado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()
	require.NoError(t, repos.Articles.Create(ctx, &entity.Article{
		ID: "harina", Kind: entity.ArticleKindInsumo, Denomination: "Harina",
		PurchasePrice: dec("100"), Active: true,
		Insumo: &entity.InsumoData{Stock: dec("10")},
	}))

	uc := inventory.NewPurchaseUseCase(store)
	out, err := uc.RegisterPurchase(ctx, dto.Actor{UserID: "u-admin", Role: entity.RoleAdmin}, "harina",
		dto.RegisterPurchaseRequest{Quantity: dec("10"), UnitCost: dec("200")})
	require.NoError(t, err)
	assert.True(t, out.Stock.Equal(dec("20")))
	assert.True(t, out.PurchasePrice.Equal(dec("150")), "(10×100 + 10×200) / 20, obtenido %s", out.PurchasePrice)

	saved, err := repos.Articles.GetByID(ctx, "harina")
	require.NoError(t, err)
	assert.True(t, saved.Insumo.Stock.Equal(dec("20")))
	assert.True(t, saved.PurchasePrice.Equal(dec("150")))

	movs, err := repos.Movements.ListByOrder(ctx, "", entity.MovementTypePurchase)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "u-admin", movs[0].CreatedBy)
}

func TestRegisterPurchase_Rechazos(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewPurchaseUseCase(store)
	ctx := context.Background()

	_, err := uc.RegisterPurchase(ctx, dto.Actor{}, "harina", dto.RegisterPurchaseRequest{Quantity: decimal.Zero, UnitCost: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterPurchase(ctx, dto.Actor{}, "harina", dto.RegisterPurchaseRequest{Quantity: dec("1"), UnitCost: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
