package ordering_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/ordering"
)

func basePromotion() *entity.Promotion {
	return &entity.Promotion{
		ID:           "promo-1",
		Denomination: "Happy hour",
		StartDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		StartTime:    "18:00",
		EndTime:      "21:00",
		DiscountType: entity.DiscountPercentage,
		Value:        decimal.NewFromInt(20),
		MinQuantity:  2,
		ArticleIDs:   []string{"art-1"},
		BranchIDs:    []string{"suc-1"},
		Active:       true,
	}
}

var inWindow = time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Elegibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestEligibility_Aplica(t *testing.T) {
	ok, reason := ordering.Eligibility(basePromotion(), "art-1", "suc-1", 2, inWindow)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestEligibility_Rechazos(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(p *entity.Promotion)
		article  string
		branch   string
		qty      int
		now      time.Time
		expected string
	}{
		{"inactiva", func(p *entity.Promotion) { p.Active = false }, "art-1", "suc-1", 2, inWindow, ordering.RejectInactive},
		{"antes del rango", nil, "art-1", "suc-1", 2, time.Date(2026, 9, 30, 19, 0, 0, 0, time.UTC), ordering.RejectOutsideDates},
		{"después del rango", nil, "art-1", "suc-1", 2, time.Date(2026, 11, 1, 19, 0, 0, 0, time.UTC), ordering.RejectOutsideDates},
		{"fuera de horario", nil, "art-1", "suc-1", 2, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), ordering.RejectOutsideHours},
		{"artículo no elegible", nil, "art-2", "suc-1", 2, inWindow, ordering.RejectArticle},
		{"sucursal no elegible", nil, "art-1", "suc-9", 2, inWindow, ordering.RejectBranch},
		{"cantidad mínima", func(p *entity.Promotion) { p.MinQuantity = 3 }, "art-1", "suc-1", 2, inWindow, ordering.RejectMinQuantity},
		{"franja inválida", func(p *entity.Promotion) { p.StartTime = "25:00" }, "art-1", "suc-1", 2, inWindow, ordering.RejectInvalidWindow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := basePromotion()
			if tc.mutate != nil {
				tc.mutate(p)
			}
			ok, reason := ordering.Eligibility(p, tc.article, tc.branch, tc.qty, tc.now)
			assert.False(t, ok)
			assert.Equal(t, tc.expected, reason)
		})
	}
}

func TestWithinDates_ExtremosInclusivos(t *testing.T) {
	p := basePromotion()
	assert.True(t, ordering.WithinDates(p, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, ordering.WithinDates(p, time.Date(2026, 10, 31, 23, 59, 0, 0, time.UTC)))
}

func TestWithinHours_CruzaMedianoche(t *testing.T) {
	p := basePromotion()
	p.StartTime, p.EndTime = "22:00", "02:00"

	for _, h := range []int{22, 23, 0, 1} {
		ok, err := ordering.WithinHours(p, time.Date(2026, 10, 18, h, 30, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, ok, "hora %d", h)
	}
	ok, err := ordering.WithinHours(p, time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithinHours_SinFranjaEsTodoElDia(t *testing.T) {
	p := basePromotion()
	p.StartTime, p.EndTime = "", ""
	ok, err := ordering.WithinHours(p, time.Date(2026, 10, 18, 4, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento: asimetría FIXED vs PERCENTAGE
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscount_PorcentajeEscalaConCantidad(t *testing.T) {
	p := basePromotion()
	d := ordering.Discount(p, decimal.NewFromInt(100), 3)
	assert.Equal(t, "60", d.String(), "20% de 300")
}

func TestDiscount_FijoNoEscalaConCantidad(t *testing.T) {
	p := basePromotion()
	p.DiscountType = entity.DiscountFixed
	p.Value = decimal.NewFromInt(50)

	assert.Equal(t, "50", ordering.Discount(p, decimal.NewFromInt(100), 1).String())
	assert.Equal(t, "50", ordering.Discount(p, decimal.NewFromInt(100), 4).String())
}

func TestDiscount_TopeEnSubtotal(t *testing.T) {
	p := basePromotion()
	p.DiscountType = entity.DiscountFixed
	p.Value = decimal.NewFromInt(500)
	assert.Equal(t, "200", ordering.Discount(p, decimal.NewFromInt(100), 2).String())
}

func TestParseClock(t *testing.T) {
	m, err := ordering.ParseClock("18:45")
	require.NoError(t, err)
	assert.Equal(t, 18*60+45, m)

	for _, bad := range []string{"", "1845", "24:00", "12:60", "aa:bb"} {
		_, err := ordering.ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
