package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

var staffRoles = map[string]bool{
	entity.RoleAdmin:    true,
	entity.RoleCajero:   true,
	entity.RoleCocinero: true,
	entity.RoleDelivery: true,
}

// CreateStaff da de alta un empleado (sin ficha de cliente).
func (uc *AuthUseCase) CreateStaff(ctx context.Context, in dto.CreateStaffRequest) (*dto.UserResponse, error) {
	if !staffRoles[in.Role] {
		return nil, domain.InvalidInput("rol %q no válido para empleados", in.Role)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.InvalidInput("email y password (mínimo 8) requeridos")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureAdmin crea el administrador inicial si el email no existe. Sin email no hace nada.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	existing, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if _, err := uc.CreateStaff(ctx, dto.CreateStaffRequest{Email: email, Password: password, Role: entity.RoleAdmin}); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("administrador inicial creado")
	return nil
}
