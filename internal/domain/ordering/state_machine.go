// Package ordering reúne las reglas puras del pedido: máquina de estados,
// vigencia y cálculo de promociones, y fórmula de totales.
package ordering

import (
	"slices"

	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// Effect efecto colateral que el caso de uso debe ejecutar junto con la transición.
type Effect int

const (
	EffectNone Effect = iota
	EffectCommitStock
	EffectRollbackStock
)

var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderPending:     {entity.OrderPreparation, entity.OrderCancelled},
	entity.OrderPreparation: {entity.OrderReady, entity.OrderDelivered, entity.OrderCancelled},
	entity.OrderReady:       {entity.OrderDelivered, entity.OrderCancelled},
}

// CanTransition indica si el pedido puede pasar al estado target.
// PREPARACION → ENTREGADO solo es válido para retiro en local.
func CanTransition(current, target entity.OrderStatus, delivery entity.DeliveryType) bool {
	next, ok := orderTransitions[current]
	if !ok || !slices.Contains(next, target) {
		return false
	}
	if current == entity.OrderPreparation && target == entity.OrderDelivered {
		return delivery == entity.DeliveryTakeAway
	}
	return true
}

// Transition valida el cambio de estado y devuelve el efecto sobre el stock.
// No modifica el pedido; el caso de uso persiste el nuevo estado en la misma transacción.
func Transition(order *entity.Order, target entity.OrderStatus) (Effect, error) {
	if !CanTransition(order.Status, target, order.DeliveryType) {
		return EffectNone, &domain.TransitionError{Entity: "pedido", From: string(order.Status), To: string(target)}
	}
	switch {
	case order.Status == entity.OrderPending && target == entity.OrderPreparation:
		return EffectCommitStock, nil
	case target == entity.OrderCancelled && order.Status.StockCommitted():
		return EffectRollbackStock, nil
	default:
		return EffectNone, nil
	}
}
