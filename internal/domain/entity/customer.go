package entity

import "time"

// Géneros usados por el generador de clientes.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Customer representa un cliente de la tienda.
// ID, DateOfBirth y CreatedAt son inmutables; UpdatedAt se sella en cada mutación con la marca del lote.
type Customer struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth time.Time
	Gender      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
