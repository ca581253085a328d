package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/application/promotion"
)

// PromotionHandler maneja las promociones.
type PromotionHandler struct {
	uc *promotion.UseCase
}

// NewPromotionHandler construye el handler.
func NewPromotionHandler(uc *promotion.UseCase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear promoción
// @Description  Fechas YYYY-MM-DD y franja horaria HH:MM en la zona horaria del local.
// @Tags         promociones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePromotionRequest  true  "Datos de la promoción"
// @Success      201   {object}  dto.PromotionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/promociones [post]
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePromotionRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar promociones activas
// @Tags         promociones
// @Produce      json
// @Success      200  {array}  dto.PromotionResponse
// @Router       /api/promociones [get]
func (h *PromotionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener promoción por ID
// @Tags         promociones
// @Produce      json
// @Param        id   path  string  true  "ID de la promoción"
// @Success      200  {object}  dto.PromotionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/promociones/{id} [get]
func (h *PromotionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
