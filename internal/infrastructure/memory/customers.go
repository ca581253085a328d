package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// CustomerRepo clientes y domicilios en memoria.
type CustomerRepo struct {
	s  *Store
	tx bool
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	var err error
	r.s.with(r.tx, func() {
		if _, ok := r.s.customers[c.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		r.s.customers[c.ID] = ptrCopy(c)
	})
	return err
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.s.with(r.tx, func() { out = ptrCopy(r.s.customers[id]) })
	return out, nil
}

func (r *CustomerRepo) CreateAddress(_ context.Context, a *entity.Address) error {
	var err error
	r.s.with(r.tx, func() {
		if _, ok := r.s.customers[a.CustomerID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.s.addresses[a.ID] = ptrCopy(a)
	})
	return err
}

func (r *CustomerRepo) GetAddress(_ context.Context, id string) (*entity.Address, error) {
	var out *entity.Address
	r.s.with(r.tx, func() { out = ptrCopy(r.s.addresses[id]) })
	return out, nil
}

func (r *CustomerRepo) ListAddresses(_ context.Context, customerID string) ([]*entity.Address, error) {
	var out []*entity.Address
	r.s.with(r.tx, func() {
		for _, a := range r.s.addresses {
			if a.CustomerID == customerID {
				out = append(out, ptrCopy(a))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *CustomerRepo) ClearPrincipal(_ context.Context, customerID string) error {
	r.s.with(r.tx, func() {
		for id, a := range r.s.addresses {
			if a.CustomerID == customerID && a.Principal {
				c := ptrCopy(a)
				c.Principal = false
				r.s.addresses[id] = c
			}
		}
	})
	return nil
}

// UserRepo usuarios en memoria; el email es único sin distinguir mayúsculas.
type UserRepo struct {
	s  *Store
	tx bool
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	var err error
	r.s.with(r.tx, func() {
		for _, existing := range r.s.users {
			if strings.EqualFold(existing.Email, u.Email) {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		r.s.users[u.ID] = ptrCopy(u)
	})
	return err
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.with(r.tx, func() {
		for _, u := range r.s.users {
			if strings.EqualFold(u.Email, email) {
				out = ptrCopy(u)
				return
			}
		}
	})
	return out, nil
}
