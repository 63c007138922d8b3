package entity

import "time"

// Estados de una empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)

// Company representa una organización/tenant del sistema. Todas las filas de negocio cuelgan de una Company.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Currency  string // ISO 4217
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
