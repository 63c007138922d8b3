package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock cantidad actual de un producto en una bodega.
type Stock struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockLevel fila de consulta de existencias con nombres resueltos.
type StockLevel struct {
	ProductID     string
	ProductCode   string
	ProductName   string
	WarehouseID   string
	WarehouseName string
	Quantity      decimal.Decimal
	MinimumStock  decimal.Decimal
	Cost          decimal.Decimal
}
