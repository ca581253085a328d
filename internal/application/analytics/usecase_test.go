package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/analytics"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()
	for _, a := range []*entity.Article{
		{ID: "pizza", Kind: entity.ArticleKindManufactured, Denomination: "Pizza", Active: true, Manufactured: &entity.ManufacturedData{}},
		{ID: "gaseosa", Kind: entity.ArticleKindInsumo, Denomination: "Gaseosa", Active: true, Insumo: &entity.InsumoData{}},
	} {
		require.NoError(t, repos.Articles.Create(ctx, a))
	}
	day := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)
	orders := []*entity.Order{
		{
			ID: "o1", Status: entity.OrderDelivered, DeliveryType: entity.DeliveryHome, CreatedAt: day,
			Total: dec("400"), DeliveryFee: dec("200"), TotalCost: dec("60"),
			Lines: []entity.OrderLine{
				{ArticleID: "pizza", Quantity: 2, FinalSubtotal: dec("200")},
			},
		},
		{
			ID: "o2", Status: entity.OrderDelivered, DeliveryType: entity.DeliveryTakeAway, CreatedAt: day.Add(time.Hour),
			Total: dec("270"), TotalCost: dec("40"),
			Lines: []entity.OrderLine{
				{ArticleID: "pizza", Quantity: 1, FinalSubtotal: dec("100")},
				{ArticleID: "gaseosa", Quantity: 4, FinalSubtotal: dec("200")},
			},
		},
		{
			ID: "o3", Status: entity.OrderCancelled, DeliveryType: entity.DeliveryTakeAway, CreatedAt: day,
			Total: dec("999"), Lines: []entity.OrderLine{{ArticleID: "pizza", Quantity: 9}},
		},
		{
			ID: "o4", Status: entity.OrderDelivered, DeliveryType: entity.DeliveryTakeAway, CreatedAt: day.AddDate(0, -2, 0),
			Total: dec("50"), Lines: []entity.OrderLine{{ArticleID: "gaseosa", Quantity: 1}},
		},
	}
	for _, o := range orders {
		require.NoError(t, repos.Orders.Create(ctx, o))
	}
	return store
}

func TestRanking_SoloEntregadosEnRango(t *testing.T) {
	uc := analytics.NewUseCase(seed(t).Analytics(), time.UTC)

	items, err := uc.Ranking(context.Background(), dto.RangeRequest{From: "2026-05-01", To: "2026-05-10"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "gaseosa", items[0].ArticleID)
	assert.Equal(t, 4, items[0].Units)
	assert.Equal(t, "Pizza", items[1].Denomination)
	assert.Equal(t, 3, items[1].Units, "el pedido cancelado no suma")
	assert.True(t, items[1].Revenue.Equal(dec("300")))

	top, err := uc.Ranking(context.Background(), dto.RangeRequest{From: "2026-05-01", To: "2026-05-10", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestBalance_Ganancia(t *testing.T) {
	uc := analytics.NewUseCase(seed(t).Analytics(), time.UTC)

	b, err := uc.Balance(context.Background(), dto.RangeRequest{From: "2026-05-10", To: "2026-05-10"})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Orders)
	assert.True(t, b.Revenue.Equal(dec("670")))
	assert.True(t, b.Delivery.Equal(dec("200")))
	assert.True(t, b.Cost.Equal(dec("100")))
	assert.True(t, b.Profit.Equal(dec("370")), "670 - 200 - 100, obtenido %s", b.Profit)
	assert.Equal(t, "2026-05-10", b.To)
}

func TestRango_Invalido(t *testing.T) {
	uc := analytics.NewUseCase(seed(t).Analytics(), time.UTC)
	_, err := uc.Balance(context.Background(), dto.RangeRequest{From: "2026-05-10", To: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Ranking(context.Background(), dto.RangeRequest{From: "10/05/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
