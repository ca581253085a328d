package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleCajero   = "CAJERO"
	RoleCocinero = "COCINERO"
	RoleDelivery = "DELIVERY"
	RoleCliente  = "CLIENTE"
)

// User representa un usuario del sistema (empleado o cliente).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Role         string
	CustomerID   string // solo para rol CLIENTE
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
