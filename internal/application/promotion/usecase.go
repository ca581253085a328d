// Package promotion administra promociones y resuelve su aplicación sobre líneas de pedido.
package promotion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
	"github.com/jhoicas/BuenSabor-api/pkg/textnorm"
)

const dateLayout = "2006-01-02"

// UseCase alta y consulta de promociones.
type UseCase struct {
	repo     repository.PromotionRepository
	articles repository.ArticleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.PromotionRepository, articles repository.ArticleRepository) *UseCase {
	return &UseCase{repo: repo, articles: articles}
}

// Create valida vigencia, tipo y valor, y que los artículos existan.
// Una denominación ya usada por otra promoción es domain.ErrDuplicate.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	name := strings.TrimSpace(in.Denomination)
	if name == "" {
		return nil, domain.InvalidInput("denominacion requerida")
	}
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.InvalidInput("fecha_desde inválida")
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, domain.InvalidInput("fecha_hasta inválida")
	}
	if end.Before(start) {
		return nil, domain.InvalidInput("fecha_hasta anterior a fecha_desde")
	}
	if (in.StartTime == "") != (in.EndTime == "") {
		return nil, domain.InvalidInput("hora_desde y hora_hasta van juntas")
	}
	if in.StartTime != "" {
		if _, err := ordering.ParseClock(in.StartTime); err != nil {
			return nil, domain.InvalidInput("hora_desde: %v", err)
		}
		if _, err := ordering.ParseClock(in.EndTime); err != nil {
			return nil, domain.InvalidInput("hora_hasta: %v", err)
		}
	}

	kind := entity.DiscountType(in.DiscountType)
	if kind != entity.DiscountFixed && kind != entity.DiscountPercentage {
		return nil, domain.InvalidInput("tipo_descuento desconocido %q", in.DiscountType)
	}
	if !in.Value.IsPositive() {
		return nil, domain.InvalidInput("valor debe ser positivo")
	}
	if kind == entity.DiscountPercentage && in.Value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.InvalidInput("un porcentaje no puede superar 100")
	}
	if len(in.ArticleIDs) == 0 || len(in.BranchIDs) == 0 {
		return nil, domain.InvalidInput("articulos y sucursales requeridos")
	}
	for _, id := range in.ArticleIDs {
		a, err := uc.articles.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, domain.InvalidInput("articulo %s inexistente", id)
		}
	}

	existing, err := uc.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	key := textnorm.SearchKey(name)
	for _, p := range existing {
		if textnorm.SearchKey(p.Denomination) == key {
			return nil, domain.ErrDuplicate
		}
	}

	p := &entity.Promotion{
		ID:                  uuid.New().String(),
		Denomination:        name,
		StartDate:           start,
		EndDate:             end,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		DiscountDescription: in.DiscountDescription,
		DiscountType:        kind,
		Value:               in.Value,
		MinQuantity:         in.MinQuantity,
		ArticleIDs:          in.ArticleIDs,
		BranchIDs:           in.BranchIDs,
		Active:              true,
		CreatedAt:           time.Now(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	return toResponse(p), nil
}

// GetByID obtiene una promoción.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PromotionResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(p), nil
}

// ListActive lista las promociones activas.
func (uc *UseCase) ListActive(ctx context.Context) ([]*dto.PromotionResponse, error) {
	list, err := uc.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PromotionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	return out, nil
}

func toResponse(p *entity.Promotion) *dto.PromotionResponse {
	return &dto.PromotionResponse{
		ID:                  p.ID,
		Denomination:        p.Denomination,
		StartDate:           p.StartDate.Format(dateLayout),
		EndDate:             p.EndDate.Format(dateLayout),
		StartTime:           p.StartTime,
		EndTime:             p.EndTime,
		DiscountDescription: p.DiscountDescription,
		DiscountType:        string(p.DiscountType),
		Value:               p.Value,
		MinQuantity:         p.MinQuantity,
		ArticleIDs:          p.ArticleIDs,
		BranchIDs:           p.BranchIDs,
		Active:              p.Active,
		CreatedAt:           p.CreatedAt,
	}
}
