// Package inventory registra compras de insumos: suma stock, recalcula el costo
// promedio ponderado y deja el movimiento en el ledger.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/inventory"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// PurchaseUseCase compras a proveedor de insumos.
type PurchaseUseCase struct {
	tx  repository.TxRunner
	now func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(tx repository.TxRunner) *PurchaseUseCase {
	return &PurchaseUseCase{tx: tx, now: time.Now}
}

// RegisterPurchase bloquea la fila del insumo (SELECT FOR UPDATE), aplica CostCalculator,
// actualiza precio de compra y stock y guarda el movimiento PURCHASE.
func (uc *PurchaseUseCase) RegisterPurchase(ctx context.Context, actor dto.Actor, insumoID string, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.InvalidInput("cantidad debe ser positiva")
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.InvalidInput("costo_unitario negativo")
	}

	var out *dto.PurchaseResponse
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		locked, err := repos.Stock.GetForUpdate(ctx, []string{insumoID})
		if err != nil {
			return err
		}
		insumo, ok := locked[insumoID]
		if !ok || insumo.Insumo == nil {
			return fmt.Errorf("insumo %s: %w", insumoID, domain.ErrNotFound)
		}
		current := insumo.Insumo.Stock
		newCost := inventory.CostCalculator(current, insumo.PurchasePrice, in.Quantity, in.UnitCost)
		newStock := current.Add(in.Quantity)

		if err := repos.Stock.SetPurchasePrice(ctx, insumoID, newCost); err != nil {
			return err
		}
		if err := repos.Stock.SetStock(ctx, insumoID, newStock); err != nil {
			return err
		}
		if err := repos.Movements.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			InsumoID:  insumoID,
			Type:      entity.MovementTypePurchase,
			Quantity:  in.Quantity,
			UnitCost:  in.UnitCost,
			Date:      uc.now(),
			CreatedBy: actor.UserID,
		}); err != nil {
			return err
		}
		out = &dto.PurchaseResponse{InsumoID: insumoID, Stock: newStock, PurchasePrice: newCost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("insumo_id", insumoID).Str("cantidad", in.Quantity.String()).Msg("compra registrada")
	return out, nil
}
