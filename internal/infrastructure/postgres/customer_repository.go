package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes y domicilios (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste el cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customers (id, user_id, name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.UserID), c.Name, c.LastName, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, `
		SELECT id, COALESCE(user_id, ''), name, last_name, email, phone, created_at, updated_at
		FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// CreateAddress persiste un domicilio. Cliente inexistente = domain.ErrNotFound.
func (r *CustomerRepo) CreateAddress(ctx context.Context, a *entity.Address) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO addresses (id, customer_id, street, number, postal_code, locality, principal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CustomerID, a.Street, a.Number, a.PostalCode, a.Locality, a.Principal, a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente %s: %w", a.CustomerID, domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return domain.InvalidInput("el cliente ya tiene un domicilio principal")
		}
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

const addressColumns = `id, customer_id, street, number, postal_code, locality, principal, created_at`

func scanAddress(row pgx.Row) (*entity.Address, error) {
	var a entity.Address
	err := row.Scan(&a.ID, &a.CustomerID, &a.Street, &a.Number, &a.PostalCode, &a.Locality, &a.Principal, &a.CreatedAt)
	return &a, err
}

// GetAddress obtiene un domicilio; (nil, nil) si no existe.
func (r *CustomerRepo) GetAddress(ctx context.Context, id string) (*entity.Address, error) {
	a, err := scanAddress(r.q.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// ListAddresses domicilios del cliente por fecha de alta.
func (r *CustomerRepo) ListAddresses(ctx context.Context, customerID string) ([]*entity.Address, error) {
	rows, err := r.q.Query(ctx, `SELECT `+addressColumns+` FROM addresses
		WHERE customer_id = $1 ORDER BY created_at, id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Address, error) {
		return scanAddress(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan addresses: %w", err)
	}
	return list, nil
}

// ClearPrincipal desmarca el domicilio principal del cliente.
func (r *CustomerRepo) ClearPrincipal(ctx context.Context, customerID string) error {
	_, err := r.q.Exec(ctx, `UPDATE addresses SET principal = false WHERE customer_id = $1 AND principal`, customerID)
	if err != nil {
		return fmt.Errorf("clear principal address: %w", err)
	}
	return nil
}
