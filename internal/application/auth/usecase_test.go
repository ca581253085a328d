package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/auth"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
	"github.com/jhoicas/BuenSabor-api/pkg/jwt"
)

const secret = "test-secret"

func setup() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store, store.Repos().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "buen-sabor"})
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login de clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterClient_CreaUsuarioYCliente(t *testing.T) {
	uc, store := setup()
	ctx := context.Background()

	u, err := uc.RegisterClient(ctx, dto.RegisterClientRequest{
		Email: "  Ana@Example.com ", Password: "secreta123", Name: "Ana", LastName: "Paz",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, entity.RoleCliente, u.Role)
	require.NotEmpty(t, u.CustomerID)

	c, err := store.Repos().Customers.GetByID(ctx, u.CustomerID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, u.ID, c.UserID)

	_, err = uc.RegisterClient(ctx, dto.RegisterClientRequest{Email: "ANA@example.com", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConIdentidad(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()
	u, err := uc.RegisterClient(ctx, dto.RegisterClientRequest{Email: "ana@example.com", Password: "secreta123", Name: "Ana", LastName: "Paz"})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@example.com", Password: "secreta123"})
	require.NoError(t, err)

	id, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, u.CustomerID, id.CustomerID)
	assert.Equal(t, entity.RoleCliente, id.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()
	_, err := uc.RegisterClient(ctx, dto.RegisterClientRequest{Email: "ana@example.com", Password: "secreta123", Name: "Ana", LastName: "Paz"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateStaff_RolesValidos(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	u, err := uc.CreateStaff(ctx, dto.CreateStaffRequest{Email: "cocina@example.com", Password: "cocina123", Role: entity.RoleCocinero})
	require.NoError(t, err)
	assert.Empty(t, u.CustomerID)

	_, err = uc.CreateStaff(ctx, dto.CreateStaffRequest{Email: "x@example.com", Password: "clave1234", Role: entity.RoleCliente})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "CLIENTE se registra por /auth/register")
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin@example.com", "admin1234"))
	require.NoError(t, uc.EnsureAdmin(ctx, "Admin@example.com", "otra-clave"))

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "admin1234"})
	require.NoError(t, err, "la segunda llamada no pisa la clave")
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)

	assert.NoError(t, uc.EnsureAdmin(ctx, "", ""))
}
