package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var (
	_ repository.ArticleRepository       = (*ArticleRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.PromotionRepository     = (*PromotionRepo)(nil)
)

const maxDepth = 8

// resolve copia el artículo y resuelve los insumos de su receta.
func (s *Store) resolve(id string, depth int) *entity.Article {
	a, ok := s.articles[id]
	if !ok || depth > maxDepth {
		return nil
	}
	c := cloneArticle(a)
	if c.Manufactured != nil {
		for i := range c.Manufactured.Recipe {
			c.Manufactured.Recipe[i].Insumo = s.resolve(c.Manufactured.Recipe[i].InsumoID, depth+1)
		}
	}
	return c
}

// ArticleRepo artículos en memoria.
type ArticleRepo struct {
	s  *Store
	tx bool
}

func (r *ArticleRepo) Create(_ context.Context, a *entity.Article) error {
	var err error
	r.s.with(r.tx, func() {
		if _, ok := r.s.articles[a.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		r.s.articles[a.ID] = cloneArticle(a)
	})
	return err
}

func (r *ArticleRepo) Update(_ context.Context, a *entity.Article) error {
	var err error
	r.s.with(r.tx, func() {
		if _, ok := r.s.articles[a.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.s.articles[a.ID] = cloneArticle(a)
	})
	return err
}

func (r *ArticleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	var out *entity.Article
	r.s.with(r.tx, func() { out = r.s.resolve(id, 0) })
	return out, nil
}

func (r *ArticleRepo) List(_ context.Context, f repository.ArticleFilter) ([]*entity.Article, error) {
	var out []*entity.Article
	r.s.with(r.tx, func() {
		for id, a := range r.s.articles {
			if f.OnlyActive && !a.Active {
				continue
			}
			if f.Kind != "" && a.Kind != f.Kind {
				continue
			}
			if f.CategoryID != "" && a.CategoryID != f.CategoryID {
				continue
			}
			if f.Search != "" && !strings.Contains(a.SearchKey, f.Search) {
				continue
			}
			out = append(out, r.s.resolve(id, 0))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Denomination < out[j].Denomination })
	return page(out, f.Offset, f.Limit), nil
}

func (r *ArticleRepo) ListLowStock(_ context.Context) ([]*entity.Article, error) {
	var out []*entity.Article
	r.s.with(r.tx, func() {
		for _, a := range r.s.articles {
			if a.IsInsumo() && a.Active && a.Insumo != nil && a.Insumo.Stock.LessThanOrEqual(a.Insumo.MinStock) {
				out = append(out, cloneArticle(a))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Denomination < out[j].Denomination })
	return out, nil
}

// StockRepo stock de insumos en memoria. GetForUpdate no bloquea filas: la
// transacción ya tiene el store completo.
type StockRepo struct {
	s  *Store
	tx bool
}

func (r *StockRepo) GetForUpdate(ctx context.Context, ids []string) (map[string]*entity.Article, error) {
	return r.Get(ctx, ids)
}

func (r *StockRepo) Get(_ context.Context, ids []string) (map[string]*entity.Article, error) {
	out := make(map[string]*entity.Article, len(ids))
	r.s.with(r.tx, func() {
		for _, id := range ids {
			if a, ok := r.s.articles[id]; ok && a.IsInsumo() {
				out[id] = cloneArticle(a)
			}
		}
	})
	return out, nil
}

func (r *StockRepo) SetStock(_ context.Context, id string, stock decimal.Decimal) error {
	return r.mutate(id, func(a *entity.Article) { a.Insumo.Stock = stock })
}

func (r *StockRepo) SetPurchasePrice(_ context.Context, id string, price decimal.Decimal) error {
	return r.mutate(id, func(a *entity.Article) { a.PurchasePrice = price })
}

func (r *StockRepo) mutate(id string, fn func(a *entity.Article)) error {
	var err error
	r.s.with(r.tx, func() {
		a, ok := r.s.articles[id]
		if !ok || !a.IsInsumo() || a.Insumo == nil {
			err = domain.ErrNotFound
			return
		}
		c := cloneArticle(a)
		fn(c)
		r.s.articles[id] = c
	})
	return err
}

// MovementRepo ledger de movimientos en memoria.
type MovementRepo struct {
	s  *Store
	tx bool
}

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.with(r.tx, func() { r.s.movements = append(r.s.movements, ptrCopy(m)) })
	return nil
}

func (r *MovementRepo) ListByOrder(_ context.Context, orderID, movementType string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	r.s.with(r.tx, func() {
		for _, m := range r.s.movements {
			if m.OrderID == orderID && (movementType == "" || m.Type == movementType) {
				out = append(out, ptrCopy(m))
			}
		}
	})
	return out, nil
}

// CategoryRepo rubros en memoria.
type CategoryRepo struct {
	s *Store
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	var err error
	r.s.with(false, func() {
		for _, existing := range r.s.categories {
			if strings.EqualFold(existing.Denomination, c.Denomination) && existing.ParentID == c.ParentID {
				err = domain.ErrDuplicate
				return
			}
		}
		r.s.categories[c.ID] = ptrCopy(c)
	})
	return err
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.s.with(false, func() { out = ptrCopy(r.s.categories[id]) })
	return out, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.s.with(false, func() {
		for _, c := range r.s.categories {
			out = append(out, ptrCopy(c))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Denomination < out[j].Denomination })
	return out, nil
}

// PromotionRepo promociones en memoria.
type PromotionRepo struct {
	s *Store
}

func (r *PromotionRepo) Create(_ context.Context, p *entity.Promotion) error {
	var err error
	r.s.with(false, func() {
		if _, ok := r.s.promotions[p.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		r.s.promotions[p.ID] = clonePromotion(p)
	})
	return err
}

func (r *PromotionRepo) GetByID(_ context.Context, id string) (*entity.Promotion, error) {
	var out *entity.Promotion
	r.s.with(false, func() {
		if p, ok := r.s.promotions[id]; ok {
			out = clonePromotion(p)
		}
	})
	return out, nil
}

func (r *PromotionRepo) List(_ context.Context, onlyActive bool) ([]*entity.Promotion, error) {
	var out []*entity.Promotion
	r.s.with(false, func() {
		for _, p := range r.s.promotions {
			if onlyActive && !p.Active {
				continue
			}
			out = append(out, clonePromotion(p))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset > len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
