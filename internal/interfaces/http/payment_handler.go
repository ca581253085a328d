package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
)

// PaymentHandler maneja pagos de facturas y el webhook de MercadoPago.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// CreateCash godoc
// @Summary      Registrar pago en efectivo
// @Description  Queda PENDIENTE hasta que caja lo confirme. Sin monto se toma el saldo disponible.
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.CashPaymentRequest  false  "monto"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/pagos/efectivo [post]
func (h *PaymentHandler) CreateCash(c *fiber.Ctx) error {
	var in dto.CashPaymentRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	out, err := h.uc.CreateCash(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateMercadoPago godoc
// @Summary      Iniciar pago con MercadoPago
// @Description  Crea la preferencia de checkout y devuelve el init_point.
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.GatewayPaymentRequest  false  "monto, titulo"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/pagos/mercadopago [post]
func (h *PaymentHandler) CreateMercadoPago(c *fiber.Ctx) error {
	var in dto.GatewayPaymentRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	out, err := h.uc.CreateGatewayCheckout(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Confirm godoc
// @Summary      Confirmar pago en efectivo
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pagos/{id}/confirmar [put]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmCash(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar pago en efectivo
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pagos/{id}/rechazar [put]
func (h *PaymentHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.RejectCash(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Webhook de MercadoPago
// @Description  Público. Valida x-signature, consulta el pago y actualiza su estado. Reenvíos son idempotentes.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        type     query  string  false  "Tópico (payment)"
// @Param        data.id  query  string  false  "ID del pago en MercadoPago"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/pagos/webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	in := billing.WebhookInput{
		Topic:     c.Query("type", c.Query("topic")),
		DataID:    c.Query("data.id", c.Query("id")),
		Signature: c.Get("x-signature"),
		RequestID: c.Get("x-request-id"),
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in.Notification); err != nil {
			return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "notificación inválida")
		}
	}
	if err := h.uc.HandleWebhook(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
