package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeInventory = "inventory"
	ProductTypeService   = "service"
)

// Product producto o servicio vendible. Cost es promedio ponderado calculado desde movimientos de entrada.
type Product struct {
	ID           string
	CompanyID    string
	Code         string // único por empresa
	Name         string
	Description  string
	Type         string
	SellPrice    decimal.Decimal
	BuyPrice     decimal.Decimal
	TaxRate      decimal.Decimal // porcentaje 0-100
	Unit         string
	MinimumStock decimal.Decimal
	IsActive     bool
	Cost         decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
