package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// Lookup resuelve artículos del catálogo para el motor de precios y el control de stock.
// Solo lectura; no tiene efectos colaterales.
type Lookup struct {
	repo repository.ArticleRepository
}

// NewLookup construye el servicio de consulta.
func NewLookup(repo repository.ArticleRepository) *Lookup {
	return &Lookup{repo: repo}
}

// ResolveArticle devuelve el artículo con su receta resuelta o domain.ErrNotFound.
func (l *Lookup) ResolveArticle(ctx context.Context, id string) (*entity.Article, error) {
	return resolveWith(ctx, l.repo, id)
}

func resolveWith(ctx context.Context, repo repository.ArticleRepository, id string) (*entity.Article, error) {
	if id == "" {
		return nil, domain.InvalidInput("articulo_id requerido")
	}
	a, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener artículo %s: %w", id, err)
	}
	if a == nil {
		return nil, fmt.Errorf("artículo %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}
