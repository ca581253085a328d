package dto

import "time"

// RegisterClientRequest body para POST /api/auth/register.
type RegisterClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"nombre" validate:"required"`
	LastName string `json:"apellido" validate:"required"`
	Phone    string `json:"telefono,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse usuario en respuestas (sin hash).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"rol"`
	CustomerID string    `json:"cliente_id,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginResponse token + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	LastName string `json:"apellido"`
	Email    string `json:"email"`
	Phone    string `json:"telefono,omitempty"`
}

// CreateAddressRequest body para POST /api/clientes/:id/domicilios.
type CreateAddressRequest struct {
	Street     string `json:"calle" validate:"required"`
	Number     string `json:"numero" validate:"required"`
	PostalCode string `json:"codigo_postal"`
	Locality   string `json:"localidad" validate:"required"`
	Principal  bool   `json:"principal"`
}

// AddressResponse domicilio en respuestas.
type AddressResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"cliente_id"`
	Street     string `json:"calle"`
	Number     string `json:"numero"`
	PostalCode string `json:"codigo_postal,omitempty"`
	Locality   string `json:"localidad"`
	Principal  bool   `json:"principal"`
}

// CreateStaffRequest body para POST /api/usuarios (alta de empleados, solo ADMIN).
type CreateStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"rol" validate:"required,oneof=ADMIN CAJERO COCINERO DELIVERY"`
}
