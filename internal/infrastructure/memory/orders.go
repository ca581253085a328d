package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	s  *Store
	tx bool
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	var err error
	r.s.with(r.tx, func() {
		if _, ok := r.s.orders[o.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		r.s.orders[o.ID] = cloneOrder(o)
	})
	return err
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.s.with(r.tx, func() {
		if o, ok := r.s.orders[id]; ok {
			out = cloneOrder(o)
		}
	})
	return out, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, at time.Time) error {
	return r.mutate(id, func(o *entity.Order) {
		o.Status = status
		o.UpdatedAt = at
	})
}

func (r *OrderRepo) SetInvoice(_ context.Context, id, invoiceID string) error {
	return r.mutate(id, func(o *entity.Order) { o.InvoiceID = invoiceID })
}

func (r *OrderRepo) mutate(id string, fn func(o *entity.Order)) error {
	var err error
	r.s.with(r.tx, func() {
		o, ok := r.s.orders[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		c := cloneOrder(o)
		fn(c)
		r.s.orders[id] = c
	})
	return err
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	r.s.with(r.tx, func() {
		for _, o := range r.s.orders {
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.CustomerID != "" && o.CustomerID != f.CustomerID {
				continue
			}
			out = append(out, cloneOrder(o))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Offset, f.Limit), nil
}

func (r *OrderRepo) SumEstimatedMinutes(_ context.Context, status entity.OrderStatus) (int, error) {
	total := 0
	r.s.with(r.tx, func() {
		for _, o := range r.s.orders {
			if o.Status == status {
				total += o.EstimatedMinutes
			}
		}
	})
	return total, nil
}
