package promotion

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// Resolver decide el descuento de una línea a partir de la promoción elegida por el cliente.
// Nunca falla: cualquier problema con la promoción se traduce en "sin descuento".
type Resolver struct {
	repo repository.PromotionRepository
	loc  *time.Location
}

// NewResolver construye el resolver. loc es la zona horaria del local; nil = UTC.
func NewResolver(repo repository.PromotionRepository, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{repo: repo, loc: loc}
}

// ResolveDiscount devuelve el descuento (≥ 0) y la promoción aplicada, o cero y nil.
func (r *Resolver) ResolveDiscount(
	ctx context.Context,
	article *entity.Article,
	quantity int,
	branchID, promotionID string,
	now time.Time,
) (decimal.Decimal, *entity.Promotion) {
	if promotionID == "" || article == nil {
		return decimal.Zero, nil
	}
	logger := log.Ctx(ctx).With().
		Str("promocion_id", promotionID).
		Str("articulo_id", article.ID).
		Logger()

	p, err := r.repo.GetByID(ctx, promotionID)
	if err != nil {
		logger.Warn().Err(err).Msg("promoción no disponible, se ignora")
		return decimal.Zero, nil
	}
	if p == nil {
		logger.Info().Msg("promoción inexistente, se ignora")
		return decimal.Zero, nil
	}

	ok, reason := ordering.Eligibility(p, article.ID, branchID, quantity, now.In(r.loc))
	if !ok {
		logger.Info().Str("motivo", reason).Int("cantidad", quantity).Str("sucursal_id", branchID).
			Msg("promoción rechazada")
		return decimal.Zero, nil
	}

	d := ordering.Discount(p, article.SalePrice, quantity)
	if d.IsZero() {
		return decimal.Zero, nil
	}
	return d, p
}
