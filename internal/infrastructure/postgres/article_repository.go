package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// maxRecipeDepth corta la resolución de recetas anidadas.
const maxRecipeDepth = 8

const articleColumns = `
	id, kind, denomination, search_key, sale_price, purchase_price, unit_measure,
	COALESCE(category_id, ''), active,
	COALESCE(stock, 0), COALESCE(min_stock, 0), COALESCE(for_preparation, false),
	COALESCE(description, ''), COALESCE(preparation_minutes, 0),
	created_at, updated_at`

// ArticleRepo artículos (insumos y manufacturados) con sus recetas.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var (
		a        entity.Article
		kind     string
		stock    decimal.Decimal
		minStock decimal.Decimal
		forPrep  bool
		desc     string
		prepMin  int
	)
	err := row.Scan(
		&a.ID, &kind, &a.Denomination, &a.SearchKey, &a.SalePrice, &a.PurchasePrice, &a.UnitMeasure,
		&a.CategoryID, &a.Active,
		&stock, &minStock, &forPrep,
		&desc, &prepMin,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Kind = entity.ArticleKind(kind)
	switch a.Kind {
	case entity.ArticleKindInsumo:
		a.Insumo = &entity.InsumoData{Stock: stock, MinStock: minStock, ForPreparation: forPrep}
	case entity.ArticleKindManufactured:
		a.Manufactured = &entity.ManufacturedData{Description: desc, PreparationMinutes: prepMin}
	}
	return &a, nil
}

// Create persiste el artículo y, si es manufacturado, su receta.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	var (
		stock, minStock *decimal.Decimal
		forPrep         *bool
		desc            *string
		prepMin         *int
	)
	if a.Insumo != nil {
		stock, minStock, forPrep = &a.Insumo.Stock, &a.Insumo.MinStock, &a.Insumo.ForPreparation
	}
	if a.Manufactured != nil {
		desc, prepMin = &a.Manufactured.Description, &a.Manufactured.PreparationMinutes
	}
	query := `
		INSERT INTO articles (id, kind, denomination, search_key, sale_price, purchase_price, unit_measure,
			category_id, active, stock, min_stock, for_preparation, description, preparation_minutes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		a.ID, string(a.Kind), a.Denomination, a.SearchKey, a.SalePrice, a.PurchasePrice, a.UnitMeasure,
		nullIfEmpty(a.CategoryID), a.Active, stock, minStock, forPrep, desc, prepMin,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}

	for i := range a.Recipe() {
		rl := &a.Manufactured.Recipe[i]
		if rl.ID == "" {
			rl.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_lines (id, article_id, insumo_id, quantity, position)
			VALUES ($1, $2, $3, $4, $5)`,
			rl.ID, a.ID, rl.InsumoID, rl.Quantity, i,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.InvalidInput("insumo %s inexistente", rl.InsumoID)
			}
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}

// Update actualiza los datos editables. Stock y precio de compra van por StockRepo.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	var minStock *decimal.Decimal
	if a.Insumo != nil {
		minStock = &a.Insumo.MinStock
	}
	query := `
		UPDATE articles
		SET denomination = $2,
		    search_key   = $3,
		    sale_price   = $4,
		    active       = $5,
		    min_stock    = COALESCE($6, min_stock),
		    category_id  = $7,
		    updated_at   = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.Denomination, a.SearchKey, a.SalePrice, a.Active, minStock, nullIfEmpty(a.CategoryID), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("artículo %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

// GetByID obtiene el artículo con la receta resuelta; (nil, nil) si no existe.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.resolve(ctx, id, 0)
}

func (r *ArticleRepo) resolve(ctx context.Context, id string, depth int) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	if a.IsManufactured() && depth < maxRecipeDepth {
		if err := r.loadRecipe(ctx, a, depth); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (r *ArticleRepo) loadRecipe(ctx context.Context, a *entity.Article, depth int) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, insumo_id, quantity FROM recipe_lines
		WHERE article_id = $1 ORDER BY position`, a.ID)
	if err != nil {
		return fmt.Errorf("list recipe: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.RecipeLine, error) {
		var rl entity.RecipeLine
		err := row.Scan(&rl.ID, &rl.InsumoID, &rl.Quantity)
		return rl, err
	})
	if err != nil {
		return fmt.Errorf("scan recipe: %w", err)
	}
	for i := range lines {
		insumo, err := r.resolve(ctx, lines[i].InsumoID, depth+1)
		if err != nil {
			return err
		}
		lines[i].Insumo = insumo
	}
	a.Manufactured.Recipe = lines
	return nil
}

// List lista artículos filtrados, ordenados por denominación.
func (r *ArticleRepo) List(ctx context.Context, f repository.ArticleFilter) ([]*entity.Article, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.OnlyActive {
		where = append(where, "active")
	}
	if f.Kind != "" {
		add("kind = $%d", string(f.Kind))
	}
	if f.CategoryID != "" {
		add("category_id = $%d", f.CategoryID)
	}
	if f.Search != "" {
		add("search_key LIKE '%%' || $%d || '%%'", f.Search)
	}
	query := `SELECT ` + articleColumns + ` FROM articles`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY denomination"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return r.queryArticles(ctx, query, args...)
}

// ListLowStock insumos activos con stock <= stock mínimo.
func (r *ArticleRepo) ListLowStock(ctx context.Context) ([]*entity.Article, error) {
	return r.queryArticles(ctx, `SELECT `+articleColumns+` FROM articles
		WHERE kind = 'INSUMO' AND active AND stock <= min_stock
		ORDER BY denomination`)
}

func (r *ArticleRepo) queryArticles(ctx context.Context, query string, args ...any) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Article, error) {
		return scanArticle(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan articles: %w", err)
	}
	// Las recetas se cargan después de cerrar rows: la conexión de una tx no admite dos queries abiertas.
	for _, a := range list {
		if a.IsManufactured() {
			if err := r.loadRecipe(ctx, a, 0); err != nil {
				return nil, err
			}
		}
	}
	return list, nil
}
