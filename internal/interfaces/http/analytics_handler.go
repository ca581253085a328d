package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/analytics"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
)

// AnalyticsHandler maneja las estadísticas de ventas.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Ranking godoc
// @Summary      Ranking de artículos más vendidos
// @Description  Considera solo pedidos entregados en el rango. Default: mes en curso.
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        hasta  query  string  false  "Fin del período (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Máx. artículos"  default(10)
// @Success      200  {array}   dto.RankingItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estadisticas/ranking [get]
func (h *AnalyticsHandler) Ranking(c *fiber.Ctx) error {
	var in dto.RangeRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Ranking(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Ingresos, costos y ganancia
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        hasta  query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estadisticas/balance [get]
func (h *AnalyticsHandler) Balance(c *fiber.Ctx) error {
	var in dto.RangeRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Balance(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
