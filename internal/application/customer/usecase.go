// Package customer casos de uso de clientes y sus domicilios.
package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// UseCase clientes y domicilios.
type UseCase struct {
	tx   repository.TxRunner
	repo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, repo repository.CustomerRepository) *UseCase {
	return &UseCase{tx: tx, repo: repo}
}

func authorize(actor dto.Actor, customerID string) error {
	if actor.IsClient() && actor.CustomerID != customerID {
		return domain.ErrForbidden
	}
	return nil
}

// Get obtiene un cliente.
func (uc *UseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.CustomerResponse, error) {
	if err := authorize(actor, id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return &dto.CustomerResponse{ID: c.ID, Name: c.Name, LastName: c.LastName, Email: c.Email, Phone: c.Phone}, nil
}

// AddAddress agrega un domicilio. Si es principal (o el primero) desmarca el anterior
// en la misma transacción.
func (uc *UseCase) AddAddress(ctx context.Context, actor dto.Actor, customerID string, in dto.CreateAddressRequest) (*dto.AddressResponse, error) {
	if err := authorize(actor, customerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Street) == "" || strings.TrimSpace(in.Locality) == "" {
		return nil, domain.InvalidInput("calle y localidad requeridas")
	}
	addr := &entity.Address{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Street:     strings.TrimSpace(in.Street),
		Number:     strings.TrimSpace(in.Number),
		PostalCode: in.PostalCode,
		Locality:   strings.TrimSpace(in.Locality),
		Principal:  in.Principal,
		CreatedAt:  time.Now(),
	}
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		c, err := repos.Customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
		}
		existing, err := repos.Customers.ListAddresses(ctx, customerID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			addr.Principal = true
		}
		if addr.Principal {
			if err := repos.Customers.ClearPrincipal(ctx, customerID); err != nil {
				return err
			}
		}
		return repos.Customers.CreateAddress(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	return toAddressResponse(addr), nil
}

// ListAddresses domicilios del cliente.
func (uc *UseCase) ListAddresses(ctx context.Context, actor dto.Actor, customerID string) ([]dto.AddressResponse, error) {
	if err := authorize(actor, customerID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListAddresses(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddressResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAddressResponse(a))
	}
	return out, nil
}

func toAddressResponse(a *entity.Address) *dto.AddressResponse {
	return &dto.AddressResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Street:     a.Street,
		Number:     a.Number,
		PostalCode: a.PostalCode,
		Locality:   a.Locality,
		Principal:  a.Principal,
	}
}
