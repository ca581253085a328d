package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/auth"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
)

// AuthHandler maneja registro, login y alta de empleados.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar cliente
// @Description  Crea el usuario con rol CLIENTE y su ficha de cliente.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterClientRequest  true  "email, password, nombre, apellido"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterClientRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.RegisterClient(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateStaff godoc
// @Summary      Alta de empleado
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "email, password, rol"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *AuthHandler) CreateStaff(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.CreateStaff(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
