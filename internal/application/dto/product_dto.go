package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El costo se calcula desde movimientos de entrada.
type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Type         string          `json:"type" validate:"omitempty,oneof=inventory service"`
	SellPrice    decimal.Decimal `json:"sell_price" validate:"gte=0"`
	BuyPrice     decimal.Decimal `json:"buy_price" validate:"gte=0"`
	TaxRate      decimal.Decimal `json:"tax_rate" validate:"gte=0,lte=100"`
	Unit         string          `json:"unit" validate:"max=20"`
	MinimumStock decimal.Decimal `json:"minimum_stock" validate:"gte=0"`
	IsActive     *bool           `json:"is_active"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost).
type UpdateProductRequest struct {
	Code         *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Type         *string          `json:"type" validate:"omitempty,oneof=inventory service"`
	SellPrice    *decimal.Decimal `json:"sell_price" validate:"omitempty,gte=0"`
	BuyPrice     *decimal.Decimal `json:"buy_price" validate:"omitempty,gte=0"`
	TaxRate      *decimal.Decimal `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
	MinimumStock *decimal.Decimal `json:"minimum_stock" validate:"omitempty,gte=0"`
	IsActive     *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Unit         string          `json:"unit"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	IsActive     bool            `json:"is_active"`
	Cost         decimal.Decimal `json:"cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
