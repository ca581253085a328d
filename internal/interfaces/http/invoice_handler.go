package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
)

// InvoiceHandler maneja las facturas (protegido).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener factura
// @Description  Incluye pagos, total pagado y saldo pendiente.
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerateForOrder godoc
// @Summary      Facturar pedido
// @Description  Emite la factura de un pedido ya confirmado. 409 si ya tiene factura.
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        pedidoId  path  string  true  "ID del pedido"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/facturas/pedido/{pedidoId} [post]
func (h *InvoiceHandler) GenerateForOrder(c *fiber.Ctx) error {
	out, err := h.uc.GenerateForOrder(c.UserContext(), c.Params("pedidoId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         facturas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	body, name, err := h.uc.PDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "application/pdf", name, body)
}

// XML godoc
// @Summary      Descargar factura en XML
// @Tags         facturas
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/xml [get]
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	body, name, err := h.uc.XML(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, fiber.MIMEApplicationXMLCharsetUTF8, name, body)
}

func sendAttachment(c *fiber.Ctx, contentType, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(body)
}
