package dto

import "time"

// CreatePartyRequest alta de cliente o proveedor.
type CreatePartyRequest struct {
	Code          string `json:"code" validate:"required,min=1,max=30"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" validate:"max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"max=50"`
	Address       string `json:"address"`
	TaxID         string `json:"tax_id" validate:"max=50"`
}

// UpdatePartyRequest solo cambian los campos presentes.
type UpdatePartyRequest struct {
	Code          *string `json:"code" validate:"omitempty,min=1,max=30"`
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Address       *string `json:"address"`
	TaxID         *string `json:"tax_id" validate:"omitempty,max=50"`
}

// PartyResponse salida de cliente o proveedor.
type PartyResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	TaxID         string    `json:"tax_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PartyListResponse lista paginada.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
