package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/inventory"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
	"github.com/jhoicas/BuenSabor-api/pkg/textnorm"
)

// ArticleUseCase casos de uso de administración del catálogo.
// El stock no se modifica desde aquí (compras y pedidos).
type ArticleUseCase struct {
	repo       repository.ArticleRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, categories repository.CategoryRepository) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, categories: categories, now: time.Now}
}

// CreateInsumo da de alta una materia prima con su stock inicial.
func (uc *ArticleUseCase) CreateInsumo(ctx context.Context, in dto.CreateInsumoRequest) (*dto.ArticleResponse, error) {
	if strings.TrimSpace(in.Denomination) == "" {
		return nil, domain.InvalidInput("denominacion requerida")
	}
	if in.SalePrice.IsNegative() || in.PurchasePrice.IsNegative() || in.Stock.IsNegative() || in.MinStock.IsNegative() {
		return nil, domain.InvalidInput("precios y stock no pueden ser negativos")
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := uc.now()
	a := &entity.Article{
		ID:            uuid.New().String(),
		Kind:          entity.ArticleKindInsumo,
		Denomination:  strings.TrimSpace(in.Denomination),
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		UnitMeasure:   in.UnitMeasure,
		CategoryID:    in.CategoryID,
		Active:        true,
		SearchKey:     textnorm.SearchKey(in.Denomination),
		CreatedAt:     now,
		UpdatedAt:     now,
		Insumo: &entity.InsumoData{
			Stock:          in.Stock,
			MinStock:       in.MinStock,
			ForPreparation: in.ForPreparation,
		},
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return ToArticleResponse(a), nil
}

// CreateManufactured da de alta un artículo elaborado. Cada línea de receta debe
// referir a un insumo existente con cantidad positiva.
func (uc *ArticleUseCase) CreateManufactured(ctx context.Context, in dto.CreateManufacturedRequest) (*dto.ArticleResponse, error) {
	if strings.TrimSpace(in.Denomination) == "" || len(in.Recipe) == 0 {
		return nil, domain.InvalidInput("denominacion y receta requeridas")
	}
	if in.SalePrice.IsNegative() || in.PreparationMinutes < 0 {
		return nil, domain.InvalidInput("precio y tiempo de preparación no pueden ser negativos")
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	recipe := make([]entity.RecipeLine, 0, len(in.Recipe))
	seen := make(map[string]bool, len(in.Recipe))
	for _, rl := range in.Recipe {
		if !rl.Quantity.IsPositive() {
			return nil, domain.InvalidInput("cantidad de receta debe ser positiva (%s)", rl.InsumoID)
		}
		if seen[rl.InsumoID] {
			return nil, domain.InvalidInput("insumo repetido en la receta (%s)", rl.InsumoID)
		}
		seen[rl.InsumoID] = true
		insumo, err := resolveWith(ctx, uc.repo, rl.InsumoID)
		if err != nil {
			return nil, err
		}
		if !insumo.IsInsumo() {
			return nil, domain.InvalidInput("%s no es un insumo", rl.InsumoID)
		}
		recipe = append(recipe, entity.RecipeLine{
			ID:       uuid.New().String(),
			InsumoID: insumo.ID,
			Quantity: rl.Quantity,
			Insumo:   insumo,
		})
	}

	now := uc.now()
	a := &entity.Article{
		ID:           uuid.New().String(),
		Kind:         entity.ArticleKindManufactured,
		Denomination: strings.TrimSpace(in.Denomination),
		SalePrice:    in.SalePrice,
		UnitMeasure:  in.UnitMeasure,
		CategoryID:   in.CategoryID,
		Active:       true,
		SearchKey:    textnorm.SearchKey(in.Denomination),
		CreatedAt:    now,
		UpdatedAt:    now,
		Manufactured: &entity.ManufacturedData{
			Description:        in.Description,
			PreparationMinutes: in.PreparationMinutes,
			Recipe:             recipe,
		},
	}
	a.PurchasePrice = inventory.UnitCost(a)
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return ToArticleResponse(a), nil
}

// Update modifica denominación, precio de venta, estado o stock mínimo.
func (uc *ArticleUseCase) Update(ctx context.Context, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	a, err := resolveWith(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	if in.Denomination != nil {
		name := strings.TrimSpace(*in.Denomination)
		if name == "" {
			return nil, domain.InvalidInput("denominacion vacía")
		}
		a.Denomination = name
		a.SearchKey = textnorm.SearchKey(name)
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.InvalidInput("precio_venta negativo")
		}
		a.SalePrice = *in.SalePrice
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	if in.MinStock != nil {
		if !a.IsInsumo() || in.MinStock.IsNegative() {
			return nil, domain.InvalidInput("stock_minimo solo aplica a insumos y no puede ser negativo")
		}
		a.Insumo.MinStock = *in.MinStock
	}
	a.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return ToArticleResponse(a), nil
}

// GetByID obtiene un artículo con su receta.
func (uc *ArticleUseCase) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	a, err := resolveWith(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	return ToArticleResponse(a), nil
}

// List lista artículos activos con filtros opcionales; q busca sin distinguir acentos.
func (uc *ArticleUseCase) List(ctx context.Context, in dto.ArticleListRequest) ([]*dto.ArticleResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ArticleFilter{
		Kind:       entity.ArticleKind(in.Kind),
		CategoryID: in.CategoryID,
		Search:     textnorm.SearchKey(in.Query),
		OnlyActive: true,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToArticleResponse(a))
	}
	return out, nil
}

// LowStock insumos con stock menor o igual al mínimo.
func (uc *ArticleUseCase) LowStock(ctx context.Context) ([]*dto.ArticleResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToArticleResponse(a))
	}
	return out, nil
}

func (uc *ArticleUseCase) checkCategory(ctx context.Context, id string) error {
	if id == "" || uc.categories == nil {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.InvalidInput("categoria %s inexistente", id)
	}
	return nil
}

// ToArticleResponse mapea la variante a su DTO.
func ToArticleResponse(a *entity.Article) *dto.ArticleResponse {
	resp := &dto.ArticleResponse{
		ID:            a.ID,
		Kind:          string(a.Kind),
		Denomination:  a.Denomination,
		SalePrice:     a.SalePrice,
		PurchasePrice: a.PurchasePrice,
		Cost:          inventory.UnitCost(a),
		UnitMeasure:   a.UnitMeasure,
		CategoryID:    a.CategoryID,
		Active:        a.Active,
		CreatedAt:     a.CreatedAt,
	}
	if a.IsInsumo() && a.Insumo != nil {
		stock, minStock, forPrep := a.Insumo.Stock, a.Insumo.MinStock, a.Insumo.ForPreparation
		resp.Stock = &stock
		resp.MinStock = &minStock
		resp.ForPreparation = &forPrep
	}
	if a.IsManufactured() && a.Manufactured != nil {
		resp.Description = a.Manufactured.Description
		resp.PreparationMinutes = a.Manufactured.PreparationMinutes
		for _, rl := range a.Manufactured.Recipe {
			name := ""
			if rl.Insumo != nil {
				name = rl.Insumo.Denomination
			}
			resp.Recipe = append(resp.Recipe, dto.RecipeLineResponse{
				InsumoID:     rl.InsumoID,
				Denomination: name,
				Quantity:     rl.Quantity,
			})
		}
	}
	return resp
}
