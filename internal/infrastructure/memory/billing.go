package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
)

// InvoiceRepo facturas en memoria; replica las restricciones únicas de la tabla.
type InvoiceRepo struct {
	s  *Store
	tx bool
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	var err error
	r.s.with(r.tx, func() {
		for _, existing := range r.s.invoices {
			if existing.OrderID == inv.OrderID {
				err = domain.ErrDuplicate
				return
			}
			if existing.Number == inv.Number {
				err = repository.ErrInvoiceNumberTaken
				return
			}
		}
		r.s.invoices[inv.ID] = cloneInvoice(inv)
	})
	return err
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.s.with(r.tx, func() {
		if inv, ok := r.s.invoices[id]; ok {
			out = r.s.withPayments(inv)
		}
	})
	return out, nil
}

func (r *InvoiceRepo) GetByOrderID(_ context.Context, orderID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.s.with(r.tx, func() {
		for _, inv := range r.s.invoices {
			if inv.OrderID == orderID {
				out = r.s.withPayments(inv)
				return
			}
		}
	})
	return out, nil
}

func (r *InvoiceRepo) CountIssuedOn(_ context.Context, day time.Time) (int, error) {
	n := 0
	y, m, d := day.Date()
	r.s.with(r.tx, func() {
		for _, inv := range r.s.invoices {
			iy, im, id := inv.IssuedAt.In(day.Location()).Date()
			if iy == y && im == m && id == d {
				n++
			}
		}
	})
	return n, nil
}

func (s *Store) withPayments(inv *entity.Invoice) *entity.Invoice {
	c := cloneInvoice(inv)
	for _, p := range s.payments {
		if p.InvoiceID == inv.ID {
			c.Payments = append(c.Payments, *p)
		}
	}
	sort.Slice(c.Payments, func(i, j int) bool { return c.Payments[i].CreatedAt.Before(c.Payments[j].CreatedAt) })
	return c
}

// PaymentRepo pagos en memoria.
type PaymentRepo struct {
	s  *Store
	tx bool
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	var err error
	r.s.with(r.tx, func() {
		if _, ok := r.s.invoices[p.InvoiceID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.s.payments[p.ID] = ptrCopy(p)
	})
	return err
}

func (r *PaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	var err error
	r.s.with(r.tx, func() {
		if _, ok := r.s.payments[p.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		p.UpdatedAt = time.Now()
		r.s.payments[p.ID] = ptrCopy(p)
	})
	return err
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	var out *entity.Payment
	r.s.with(r.tx, func() { out = ptrCopy(r.s.payments[id]) })
	return out, nil
}

func (r *PaymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *PaymentRepo) ListByInvoice(_ context.Context, invoiceID string) ([]entity.Payment, error) {
	var out []entity.Payment
	r.s.with(r.tx, func() {
		for _, p := range r.s.payments {
			if p.InvoiceID == invoiceID {
				out = append(out, *p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
