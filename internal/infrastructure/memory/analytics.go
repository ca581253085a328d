package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo estadísticas sobre pedidos entregados en [from, to).
type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) delivered(from, to time.Time, visit func(o *entity.Order)) {
	r.s.with(false, func() {
		for _, o := range r.s.orders {
			if o.Status != entity.OrderDelivered || o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
				continue
			}
			visit(o)
		}
	})
}

func (r *AnalyticsRepo) Ranking(_ context.Context, from, to time.Time, limit int) ([]repository.ArticleRanking, error) {
	acc := map[string]*repository.ArticleRanking{}
	names := map[string]string{}
	r.delivered(from, to, func(o *entity.Order) {
		for _, l := range o.Lines {
			item, ok := acc[l.ArticleID]
			if !ok {
				item = &repository.ArticleRanking{ArticleID: l.ArticleID, Revenue: decimal.Zero}
				acc[l.ArticleID] = item
			}
			item.Units += l.Quantity
			item.Revenue = item.Revenue.Add(l.FinalSubtotal)
		}
		for id := range acc {
			if a, ok := r.s.articles[id]; ok {
				names[id] = a.Denomination
			}
		}
	})
	out := make([]repository.ArticleRanking, 0, len(acc))
	for id, item := range acc {
		item.Denomination = names[id]
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].ArticleID < out[j].ArticleID
	})
	return page(out, 0, limit), nil
}

func (r *AnalyticsRepo) Balance(_ context.Context, from, to time.Time) (repository.Balance, error) {
	b := repository.Balance{Revenue: decimal.Zero, Cost: decimal.Zero, Delivery: decimal.Zero}
	r.delivered(from, to, func(o *entity.Order) {
		b.Orders++
		b.Revenue = b.Revenue.Add(o.Total)
		b.Cost = b.Cost.Add(o.TotalCost)
		b.Delivery = b.Delivery.Add(o.DeliveryFee)
	})
	return b, nil
}
