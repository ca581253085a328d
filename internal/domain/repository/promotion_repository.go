package repository

import (
	"context"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// PromotionRepository define el puerto de persistencia para promociones.
type PromotionRepository interface {
	Create(ctx context.Context, p *entity.Promotion) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Promotion, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Promotion, error)
}
