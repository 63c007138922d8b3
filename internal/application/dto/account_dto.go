package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountCategoryRequest alta de categoría del plan de cuentas.
type CreateAccountCategoryRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=30"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Type        string `json:"type" validate:"required,oneof=asset liability equity revenue expense"`
	Description string `json:"description"`
}

// UpdateAccountCategoryRequest cambios parciales.
type UpdateAccountCategoryRequest struct {
	Code        *string `json:"code" validate:"omitempty,min=1,max=30"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type        *string `json:"type" validate:"omitempty,oneof=asset liability equity revenue expense"`
	Description *string `json:"description"`
}

// AccountCategoryResponse salida de una categoría.
type AccountCategoryResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountCategoryListResponse lista paginada.
type AccountCategoryListResponse struct {
	Items []AccountCategoryResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// CreateAccountRequest alta de cuenta. Balance es el saldo inicial.
type CreateAccountRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Code        string          `json:"code" validate:"required,min=1,max=30"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
	Balance     decimal.Decimal `json:"balance"`
}

// UpdateAccountRequest cambios parciales.
type UpdateAccountRequest struct {
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Code        *string          `json:"code" validate:"omitempty,min=1,max=30"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
	Balance     *decimal.Decimal `json:"balance"`
}

// AccountQuery filtros del listado de cuentas.
type AccountQuery struct {
	ListQuery
	CategoryID string `query:"category_id"`
	Type       string `query:"type"`
	Active     *bool  `query:"active"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Type         string          `json:"type"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"is_active"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AccountListResponse lista paginada.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
