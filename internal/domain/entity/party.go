package entity

import "time"

// Party cliente o proveedor de la empresa (mismos datos de contacto).
type Party struct {
	ID            string
	CompanyID     string
	Code          string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	TaxID         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
