package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
)

func harina() *entity.Article {
	return &entity.Article{
		ID: "harina", Kind: entity.ArticleKindInsumo, Denomination: "Harina", Active: true,
		Insumo: &entity.InsumoData{Stock: decimal.NewFromInt(10)},
	}
}

func TestRun_ErrorRestauraEstado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Repos().Articles.Create(ctx, harina()))

	boom := errors.New("boom")
	err := store.Run(ctx, func(repos repository.TxRepos) error {
		require.NoError(t, repos.Stock.SetStock(ctx, "harina", decimal.NewFromInt(2)))
		require.NoError(t, repos.Movements.Create(ctx, &entity.StockMovement{
			ID: "m1", InsumoID: "harina", OrderID: "p1", Type: entity.MovementTypeOut, Quantity: decimal.NewFromInt(8),
		}))
		require.NoError(t, repos.Orders.Create(ctx, &entity.Order{ID: "p1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Repos().Articles.GetByID(ctx, "harina")
	require.NoError(t, err)
	assert.True(t, got.Insumo.Stock.Equal(decimal.NewFromInt(10)), "el stock vuelve al valor previo")

	movs, err := store.Repos().Movements.ListByOrder(ctx, "p1", "")
	require.NoError(t, err)
	assert.Empty(t, movs)

	o, err := store.Repos().Orders.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestRun_CommitVisibleFuera(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Repos().Articles.Create(ctx, harina()))

	require.NoError(t, store.Run(ctx, func(repos repository.TxRepos) error {
		return repos.Stock.SetStock(ctx, "harina", decimal.NewFromInt(4))
	}))
	got, err := store.Repos().Stock.Get(ctx, []string{"harina"})
	require.NoError(t, err)
	assert.True(t, got["harina"].Insumo.Stock.Equal(decimal.NewFromInt(4)))
}

func TestRun_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := store.Run(ctx, func(repository.TxRepos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRepos_CopiasIndependientes(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := harina()
	require.NoError(t, store.Repos().Articles.Create(ctx, a))
	a.Insumo.Stock = decimal.Zero

	got, err := store.Repos().Articles.GetByID(ctx, "harina")
	require.NoError(t, err)
	assert.True(t, got.Insumo.Stock.Equal(decimal.NewFromInt(10)), "modificar el original no toca el store")

	got.Denomination = "otra"
	again, err := store.Repos().Articles.GetByID(ctx, "harina")
	require.NoError(t, err)
	assert.Equal(t, "Harina", again.Denomination)
}

func TestUsers_EmailDuplicadoSinDistinguirMayusculas(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := store.Repos().Users
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "ana@example.com"}))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{ID: "u2", Email: "ANA@example.com"}), domain.ErrEmailAlreadyExists)

	u, err := users.FindByEmail(ctx, "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
