package entity

import "time"

// Category rubro del catálogo (jerárquico opcional).
type Category struct {
	ID           string
	ParentID     string // vacío si es raíz
	Denomination string
	CreatedAt    time.Time
}
