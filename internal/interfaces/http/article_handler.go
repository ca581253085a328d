package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/catalog"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
)

// ArticleHandler maneja el catálogo de artículos (insumos y manufacturados).
type ArticleHandler struct {
	uc *catalog.ArticleUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *catalog.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// List godoc
// @Summary      Listar artículos
// @Tags         articulos
// @Produce      json
// @Param        tipo          query  string  false  "MANUFACTURADO | INSUMO"
// @Param        categoria_id  query  string  false  "Rubro"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.ArticleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/articulos [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	var in dto.ArticleListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	in.Query = ""
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar artículos por denominación
// @Description  Búsqueda sin distinguir mayúsculas ni acentos; solo artículos activos.
// @Tags         articulos
// @Produce      json
// @Param        q      query  string  true   "Texto a buscar"
// @Param        tipo   query  string  false  "MANUFACTURADO | INSUMO"
// @Success      200  {array}   dto.ArticleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/articulos/buscar [get]
func (h *ArticleHandler) Search(c *fiber.Ctx) error {
	var in dto.ArticleListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	if in.Query == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "q es requerido")
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         articulos
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateInsumo godoc
// @Summary      Crear insumo
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInsumoRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articulos/insumos [post]
func (h *ArticleHandler) CreateInsumo(c *fiber.Ctx) error {
	var in dto.CreateInsumoRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateInsumo(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateManufactured godoc
// @Summary      Crear artículo manufacturado
// @Description  El costo se calcula a partir de la receta.
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManufacturedRequest  true  "Datos y receta"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articulos/manufacturados [post]
func (h *ArticleHandler) CreateManufactured(c *fiber.Ctx) error {
	var in dto.CreateManufacturedRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateManufactured(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Description  Precio de venta, denominación, stock mínimo o baja lógica.
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateArticleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticleRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Insumos con stock bajo el mínimo
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ArticleResponse
// @Router       /api/insumos/stock-bajo [get]
func (h *ArticleHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
