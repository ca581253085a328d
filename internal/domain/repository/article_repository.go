package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// ArticleFilter filtros del listado de catálogo.
type ArticleFilter struct {
	Kind       entity.ArticleKind
	CategoryID string
	Search     string // clave normalizada (textnorm.SearchKey)
	OnlyActive bool
	Limit      int
	Offset     int
}

// ArticleRepository define el puerto de persistencia para artículos (insumos y manufacturados).
// GetByID resuelve la receta con sus insumos; devuelve (nil, nil) si no existe.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	List(ctx context.Context, f ArticleFilter) ([]*entity.Article, error)
	ListLowStock(ctx context.Context) ([]*entity.Article, error)
}

// StockRepository define el puerto para leer/actualizar el stock de insumos.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetForUpdate bloquea las filas de los insumos (SELECT FOR UPDATE) y las devuelve por id.
	GetForUpdate(ctx context.Context, insumoIDs []string) (map[string]*entity.Article, error)
	// Get lee stock sin bloquear.
	Get(ctx context.Context, insumoIDs []string) (map[string]*entity.Article, error)
	SetStock(ctx context.Context, insumoID string, stock decimal.Decimal) error
	SetPurchasePrice(ctx context.Context, insumoID string, price decimal.Decimal) error
}

// StockMovementRepository ledger de movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByOrder(ctx context.Context, orderID, movementType string) ([]*entity.StockMovement, error)
}

// CategoryRepository rubros del catálogo.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
