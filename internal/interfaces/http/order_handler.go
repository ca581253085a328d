package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/application/ordering"
)

// OrderHandler maneja pedidos: cotización, validación de stock, alta y ciclo de estados.
type OrderHandler struct {
	uc *ordering.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Calcula totales con promociones vigentes, tiempo estimado y si el stock alcanza.
// @Description  El stock se descuenta al confirmar el pedido.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Validate godoc
// @Summary      Validar stock de un pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      200   {object}  dto.StockValidationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pedidos/validar [post]
func (h *OrderHandler) Validate(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Validate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Quote godoc
// @Summary      Calcular total de un pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pedidos/calcular-total [post]
func (h *OrderHandler) Quote(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Quote(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Estimate godoc
// @Summary      Tiempo estimado de un pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      200   {object}  dto.EstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pedidos/tiempo-estimado [post]
func (h *OrderHandler) Estimate(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Estimate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Description  Un cliente solo ve sus propios pedidos.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        estado      query  string  false  "PENDIENTE | EN_PREPARACION | LISTO | ENTREGADO | CANCELADO"
// @Param        cliente_id  query  string  false  "Cliente"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.OrderResponse
// @Router       /api/pedidos [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

type transitionFunc func(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error)

func (h *OrderHandler) transition(fn transitionFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := fn(c.UserContext(), GetActor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Confirm godoc
// @Summary      Confirmar pedido
// @Description  PENDIENTE → EN_PREPARACION. Descuenta stock (revalidado con bloqueo) y emite la factura.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/confirmar [put]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error { return h.transition(h.uc.Confirm)(c) }

// StartPreparation godoc
// @Summary      Pasar pedido a preparación
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/preparacion [put]
func (h *OrderHandler) StartPreparation(c *fiber.Ctx) error {
	return h.transition(h.uc.StartPreparation)(c)
}

// MarkReady godoc
// @Summary      Marcar pedido listo
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/listo [put]
func (h *OrderHandler) MarkReady(c *fiber.Ctx) error { return h.transition(h.uc.MarkReady)(c) }

// Deliver godoc
// @Summary      Marcar pedido entregado
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/entregado [put]
func (h *OrderHandler) Deliver(c *fiber.Ctx) error { return h.transition(h.uc.Deliver)(c) }

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Repone el stock si ya se había descontado.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cancelar [put]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error { return h.transition(h.uc.Cancel)(c) }
