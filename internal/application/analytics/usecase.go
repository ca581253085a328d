// Package analytics contiene los casos de uso de estadísticas del local:
// ranking de artículos y balance de ingresos contra costos.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

const (
	dateLayout     = "2006-01-02"
	defaultRankTop = 10
	defaultDays    = 30
)

// UseCase estadísticas sobre pedidos entregados.
// Fuente de datos: AnalyticsRepository (consultas read-only).
type UseCase struct {
	repo repository.AnalyticsRepository
	loc  *time.Location
	now  func() time.Time
}

// NewUseCase construye el caso de uso. loc es la zona del local para interpretar las fechas.
func NewUseCase(repo repository.AnalyticsRepository, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{repo: repo, loc: loc, now: time.Now}
}

// rangeOf interpreta desde/hasta como días completos: [desde 00:00, hasta+1 00:00).
// Sin fechas se toman los últimos 30 días.
func (uc *UseCase) rangeOf(in dto.RangeRequest) (time.Time, time.Time, error) {
	today := uc.now().In(uc.loc)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, uc.loc).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -defaultDays)
	if in.From != "" {
		d, err := time.ParseInLocation(dateLayout, in.From, uc.loc)
		if err != nil {
			return from, to, domain.InvalidInput("desde inválido")
		}
		from = d
	}
	if in.To != "" {
		d, err := time.ParseInLocation(dateLayout, in.To, uc.loc)
		if err != nil {
			return from, to, domain.InvalidInput("hasta inválido")
		}
		to = d.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return from, to, domain.InvalidInput("desde debe ser anterior a hasta")
	}
	return from, to, nil
}

// Ranking artículos más vendidos en el rango.
func (uc *UseCase) Ranking(ctx context.Context, in dto.RangeRequest) ([]dto.RankingItem, error) {
	from, to, err := uc.rangeOf(in)
	if err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultRankTop
	}
	rows, err := uc.repo.Ranking(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RankingItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RankingItem{
			ArticleID:    r.ArticleID,
			Denomination: r.Denomination,
			Units:        r.Units,
			Revenue:      r.Revenue,
		})
	}
	return out, nil
}

// Balance ingresos, costos y ganancia (ingresos − envíos − costos) en el rango.
func (uc *UseCase) Balance(ctx context.Context, in dto.RangeRequest) (*dto.BalanceResponse, error) {
	from, to, err := uc.rangeOf(in)
	if err != nil {
		return nil, err
	}
	b, err := uc.repo.Balance(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		From:     from.Format(dateLayout),
		To:       to.AddDate(0, 0, -1).Format(dateLayout),
		Orders:   b.Orders,
		Revenue:  b.Revenue,
		Cost:     b.Cost,
		Delivery: b.Delivery,
		Profit:   b.Revenue.Sub(b.Delivery).Sub(b.Cost),
	}, nil
}
