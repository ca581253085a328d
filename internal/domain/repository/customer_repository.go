package repository

import (
	"context"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes y domicilios.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	CreateAddress(ctx context.Context, a *entity.Address) error
	GetAddress(ctx context.Context, id string) (*entity.Address, error)
	ListAddresses(ctx context.Context, customerID string) ([]*entity.Address, error)
	// ClearPrincipal desmarca el domicilio principal del cliente.
	ClearPrincipal(ctx context.Context, customerID string) error
}

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
