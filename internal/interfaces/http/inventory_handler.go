package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/application/inventory"
)

// InventoryHandler registra compras de insumos (protegido).
type InventoryHandler struct {
	uc *inventory.PurchaseUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.PurchaseUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterPurchase godoc
// @Summary      Registrar compra de insumo
// @Description  Suma stock y recalcula el precio de compra por promedio ponderado.
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.RegisterPurchaseRequest  true  "cantidad, costo_unitario"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/compras [post]
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterPurchase(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
