package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
	"github.com/jhoicas/BuenSabor-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de clientes y login.
type AuthUseCase struct {
	tx       repository.TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx repository.TxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tx: tx, userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterClient crea el usuario CLIENTE y su ficha de cliente en una transacción.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterClient(ctx context.Context, in dto.RegisterClientRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.InvalidInput("email y password (mínimo 8) requeridos")
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
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
		Role:         entity.RoleCliente,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      strings.TrimSpace(in.Name),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.CustomerID = customer.ID

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		return repos.Customers.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:     user.ID,
		CustomerID: user.CustomerID,
		Role:       user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		CustomerID: u.CustomerID,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
	}
}
