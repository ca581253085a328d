package entity

import "time"

// Customer cliente del restaurante.
type Customer struct {
	ID        string
	UserID    string
	Name      string
	LastName  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address domicilio de un cliente. A lo sumo uno por cliente es Principal.
type Address struct {
	ID         string
	CustomerID string
	Street     string
	Number     string
	PostalCode string
	Locality   string
	Principal  bool
	CreatedAt  time.Time
}
