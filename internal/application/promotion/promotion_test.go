package promotion_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/application/promotion"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var pizza = &entity.Article{
	ID: "pizza", Kind: entity.ArticleKindManufactured, Denomination: "Pizza",
	SalePrice: dec("100"), Active: true,
	Manufactured: &entity.ManufacturedData{PreparationMinutes: 15},
}

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Repos().Articles.Create(context.Background(), pizza))
	return store
}

func validRequest() dto.CreatePromotionRequest {
	return dto.CreatePromotionRequest{
		Denomination: "Happy Hour",
		StartDate:    "2026-03-01",
		EndDate:      "2026-03-31",
		StartTime:    "20:00",
		EndTime:      "23:00",
		DiscountType: string(entity.DiscountPercentage),
		Value:        dec("20"),
		MinQuantity:  2,
		ArticleIDs:   []string{"pizza"},
		BranchIDs:    []string{"s1"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Valida(t *testing.T) {
	store := newStore(t)
	uc := promotion.NewUseCase(store.Promotions(), store.Repos().Articles)
	ctx := context.Background()

	out, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", out.StartDate)
	assert.True(t, out.Active)

	list, err := uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_DenominacionDuplicada(t *testing.T) {
	store := newStore(t)
	uc := promotion.NewUseCase(store.Promotions(), store.Repos().Articles)
	ctx := context.Background()

	_, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	again := validRequest()
	again.Denomination = "  HAPPY hour "
	_, err = uc.Create(ctx, again)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "se compara sin mayúsculas ni espacios")
}

func TestCreate_Rechazos(t *testing.T) {
	cases := map[string]func(r *dto.CreatePromotionRequest){
		"fechas invertidas":   func(r *dto.CreatePromotionRequest) { r.EndDate = "2026-02-01" },
		"solo hora desde":     func(r *dto.CreatePromotionRequest) { r.EndTime = "" },
		"hora inválida":       func(r *dto.CreatePromotionRequest) { r.StartTime = "25:00" },
		"tipo desconocido":    func(r *dto.CreatePromotionRequest) { r.DiscountType = "BOGO" },
		"valor cero":          func(r *dto.CreatePromotionRequest) { r.Value = decimal.Zero },
		"porcentaje excedido": func(r *dto.CreatePromotionRequest) { r.Value = dec("120") },
		"artículo inexistente": func(r *dto.CreatePromotionRequest) {
			r.ArticleIDs = []string{"empanada"}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			uc := promotion.NewUseCase(store.Promotions(), store.Repos().Articles)
			req := validRequest()
			mutate(&req)
			_, err := uc.Create(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolver
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveDiscount_UsaZonaHorariaDelLocal(t *testing.T) {
	store := newStore(t)
	uc := promotion.NewUseCase(store.Promotions(), store.Repos().Articles)
	p, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	// 01:30 UTC del 11/03 son las 22:30 del 10/03 en UTC-3.
	now := time.Date(2026, 3, 11, 1, 30, 0, 0, time.UTC)
	local := promotion.NewResolver(store.Promotions(), time.FixedZone("ART", -3*3600))
	d, applied := local.ResolveDiscount(context.Background(), pizza, 2, "s1", p.ID, now)
	require.NotNil(t, applied)
	assert.True(t, d.Equal(dec("40")), "20%% de 200, obtenido %s", d)

	utc := promotion.NewResolver(store.Promotions(), nil)
	d, applied = utc.ResolveDiscount(context.Background(), pizza, 2, "s1", p.ID, now)
	assert.Nil(t, applied, "fuera de la franja en UTC")
	assert.True(t, d.IsZero())
}

func TestResolveDiscount_NoFallaNunca(t *testing.T) {
	store := newStore(t)
	uc := promotion.NewUseCase(store.Promotions(), store.Repos().Articles)
	p, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	r := promotion.NewResolver(store.Promotions(), nil)
	inWindow := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		qty      int
		branch   string
		promo    string
		wantZero bool
	}{
		{"aplica", 2, "s1", p.ID, false},
		{"sin promoción", 2, "s1", "", true},
		{"inexistente", 2, "s1", "nope", true},
		{"otra sucursal", 2, "s2", p.ID, true},
		{"bajo mínimo", 1, "s1", p.ID, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := r.ResolveDiscount(context.Background(), pizza, tc.qty, tc.branch, tc.promo, inWindow)
			assert.Equal(t, tc.wantZero, d.IsZero())
		})
	}
}
