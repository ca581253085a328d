package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/customer"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
)

// CustomerHandler maneja clientes y sus domicilios (protegido).
type CustomerHandler struct {
	uc *customer.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddAddress godoc
// @Summary      Agregar domicilio
// @Description  Si es principal, los demás domicilios del cliente dejan de serlo.
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.CreateAddressRequest  true  "Domicilio"
// @Success      201   {object}  dto.AddressResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/domicilios [post]
func (h *CustomerHandler) AddAddress(c *fiber.Ctx) error {
	var in dto.CreateAddressRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddAddress(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAddresses godoc
// @Summary      Listar domicilios
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}   dto.AddressResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/domicilios [get]
func (h *CustomerHandler) ListAddresses(c *fiber.Ctx) error {
	out, err := h.uc.ListAddresses(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
