package ordering

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/inventory"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// ShortageError stock insuficiente; lista todos los insumos que no alcanzan.
type ShortageError struct {
	Shortages []inventory.Shortage
}

func (e *ShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.Denomination
		if name == "" {
			name = s.InsumoID
		}
		parts = append(parts, fmt.Sprintf("%s (requerido %s, disponible %s)", name, s.Required, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, ", ")
}

func (e *ShortageError) Unwrap() error { return domain.ErrInsufficientStock }

// StockService valida, descuenta y repone stock de insumos.
type StockService struct {
	stock repository.StockRepository
	now   func() time.Time
}

// NewStockService construye el servicio. stock se usa para Validate (fuera de transacción).
func NewStockService(stock repository.StockRepository) *StockService {
	return &StockService{stock: stock, now: time.Now}
}

// Validate indica si el stock actual alcanza para las líneas. No modifica nada.
func (s *StockService) Validate(ctx context.Context, lines []inventory.Line) (bool, []inventory.Shortage, error) {
	reqs := inventory.Requirements(lines)
	if len(reqs) == 0 {
		return true, nil, nil
	}
	insumos, err := s.stock.Get(ctx, requirementIDs(reqs))
	if err != nil {
		return false, nil, fmt.Errorf("leer stock: %w", err)
	}
	shortages := inventory.CheckStock(reqs, insumos)
	return len(shortages) == 0, shortages, nil
}

// Commit descuenta el stock que consume el pedido y registra movimientos OUT.
// Bloquea las filas de los insumos y vuelve a verificar: si no alcanza devuelve
// *ShortageError y la transacción se revierte completa.
func (s *StockService) Commit(ctx context.Context, repos repository.TxRepos, order *entity.Order, userID string) error {
	lines, err := orderLines(ctx, repos.Articles, order)
	if err != nil {
		return err
	}
	reqs := inventory.Requirements(lines)
	if len(reqs) == 0 {
		return nil
	}
	insumos, err := repos.Stock.GetForUpdate(ctx, requirementIDs(reqs))
	if err != nil {
		return fmt.Errorf("bloquear stock: %w", err)
	}
	if shortages := inventory.CheckStock(reqs, insumos); len(shortages) > 0 {
		return &ShortageError{Shortages: shortages}
	}

	now := s.now()
	for _, r := range reqs {
		insumo := insumos[r.InsumoID]
		if err := repos.Stock.SetStock(ctx, r.InsumoID, insumo.Insumo.Stock.Sub(r.Quantity)); err != nil {
			return fmt.Errorf("descontar stock %s: %w", r.InsumoID, err)
		}
		if err := repos.Movements.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			InsumoID:  r.InsumoID,
			OrderID:   order.ID,
			Type:      entity.MovementTypeOut,
			Quantity:  r.Quantity,
			UnitCost:  insumo.PurchasePrice,
			Date:      now,
			CreatedBy: userID,
		}); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
	}
	log.Ctx(ctx).Debug().Str("pedido_id", order.ID).Int("insumos", len(reqs)).Msg("stock descontado")
	return nil
}

// Rollback repone exactamente lo que registraron los movimientos OUT del pedido
// y deja un movimiento IN por insumo.
func (s *StockService) Rollback(ctx context.Context, repos repository.TxRepos, order *entity.Order, userID string) error {
	outs, err := repos.Movements.ListByOrder(ctx, order.ID, entity.MovementTypeOut)
	if err != nil {
		return fmt.Errorf("leer movimientos: %w", err)
	}
	if len(outs) == 0 {
		return nil
	}
	acc := make(map[string]decimal.Decimal)
	cost := make(map[string]decimal.Decimal)
	for _, m := range outs {
		acc[m.InsumoID] = acc[m.InsumoID].Add(m.Quantity)
		cost[m.InsumoID] = m.UnitCost
	}
	ids := make([]string, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	insumos, err := repos.Stock.GetForUpdate(ctx, ids)
	if err != nil {
		return fmt.Errorf("bloquear stock: %w", err)
	}
	now := s.now()
	for _, id := range ids {
		insumo, ok := insumos[id]
		if !ok || insumo.Insumo == nil {
			return fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
		}
		if err := repos.Stock.SetStock(ctx, id, insumo.Insumo.Stock.Add(acc[id])); err != nil {
			return fmt.Errorf("reponer stock %s: %w", id, err)
		}
		if err := repos.Movements.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			InsumoID:  id,
			OrderID:   order.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  acc[id],
			UnitCost:  cost[id],
			Date:      now,
			CreatedBy: userID,
		}); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
	}
	log.Ctx(ctx).Debug().Str("pedido_id", order.ID).Int("insumos", len(ids)).Msg("stock repuesto")
	return nil
}

func orderLines(ctx context.Context, articles repository.ArticleRepository, order *entity.Order) ([]inventory.Line, error) {
	out := make([]inventory.Line, 0, len(order.Lines))
	for _, l := range order.Lines {
		a, err := articles.GetByID(ctx, l.ArticleID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, fmt.Errorf("artículo %s: %w", l.ArticleID, domain.ErrNotFound)
		}
		out = append(out, inventory.Line{Article: a, Quantity: l.Quantity})
	}
	return out, nil
}

func requirementIDs(reqs []inventory.Requirement) []string {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.InsumoID)
	}
	return ids
}
