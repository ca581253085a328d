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

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

const promotionColumns = `
	id, denomination, start_date, end_date, start_time, end_time, discount_description,
	discount_type, value, min_quantity, article_ids, branch_ids, active, created_at`

// PromotionRepo promociones; artículos y sucursales se guardan como TEXT[].
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador.
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

func scanPromotion(row pgx.Row) (*entity.Promotion, error) {
	var (
		p    entity.Promotion
		kind string
	)
	err := row.Scan(
		&p.ID, &p.Denomination, &p.StartDate, &p.EndDate, &p.StartTime, &p.EndTime, &p.DiscountDescription,
		&kind, &p.Value, &p.MinQuantity, &p.ArticleIDs, &p.BranchIDs, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.DiscountType = entity.DiscountType(kind)
	return &p, nil
}

// Create persiste la promoción. Denominación repetida = domain.ErrDuplicate.
func (r *PromotionRepo) Create(ctx context.Context, p *entity.Promotion) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO promotions (` + promotionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Denomination, p.StartDate, p.EndDate, p.StartTime, p.EndTime, p.DiscountDescription,
		string(p.DiscountType), p.Value, p.MinQuantity, p.ArticleIDs, p.BranchIDs, p.Active, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert promotion: %w", err)
	}
	return nil
}

// GetByID obtiene una promoción; (nil, nil) si no existe.
func (r *PromotionRepo) GetByID(ctx context.Context, id string) (*entity.Promotion, error) {
	p, err := scanPromotion(r.q.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return p, nil
}

// List lista promociones por fecha de alta.
func (r *PromotionRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Promotion, error) {
	rows, err := r.q.Query(ctx, `SELECT `+promotionColumns+` FROM promotions
		WHERE active OR NOT $1
		ORDER BY created_at`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Promotion, error) {
		return scanPromotion(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan promotions: %w", err)
	}
	return list, nil
}
