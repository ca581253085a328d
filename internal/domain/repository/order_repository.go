package repository

import (
	"context"
	"time"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	Status     entity.OrderStatus
	CustomerID string
	Limit      int
	Offset     int
}

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve el pedido con sus líneas; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, at time.Time) error
	SetInvoice(ctx context.Context, id, invoiceID string) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	// SumEstimatedMinutes suma los minutos estimados de los pedidos en el estado dado (carga de cocina).
	SumEstimatedMinutes(ctx context.Context, status entity.OrderStatus) (int, error)
}
