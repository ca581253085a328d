package http

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/application/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
)

// stockErrorResponse 409 con el detalle de insumos faltantes.
type stockErrorResponse struct {
	dto.ErrorResponse
	Shortages []dto.StockShortage `json:"faltantes"`
}

func errorBody(status int, code, message string) dto.ErrorResponse {
	return dto.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     utils.StatusMessage(status),
		Code:      code,
		Message:   message,
	}
}

// fail responde un error con código y mensaje explícitos.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorBody(status, code, message))
}

// respondError traduce errores de dominio y de validación a la respuesta HTTP.
// Lo que no se reconoce es un 500 con mensaje genérico y se registra.
func respondError(c *fiber.Ctx, err error) error {
	var (
		verrs validator.ValidationErrors
		terr  *domain.TransitionError
	)
	switch {
	case errors.Is(err, errBadBody):
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo o parámetros inválidos")
	case errors.As(err, &verrs):
		body := errorBody(fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
		body.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			body.Fields[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(stockErrorResponse{
			ErrorResponse: errorBody(fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error()),
			Shortages:     ordering.ShortagesOf(err),
		})
	case errors.As(err, &terr):
		return fail(c, fiber.StatusConflict, "INVALID_STATE", terr.Error())
	case errors.Is(err, domain.ErrInvalidState):
		return fail(c, fiber.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado al recurso")
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return fail(c, fiber.StatusBadGateway, "GATEWAY_UNAVAILABLE", "pasarela de pago no disponible")
	}
	log.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}
