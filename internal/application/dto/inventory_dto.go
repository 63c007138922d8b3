package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// IN/OUT/ADJUSTMENT usan warehouse_id; TRANSFER usa from_warehouse_id y to_warehouse_id.
type RegisterMovementRequest struct {
	ProductID       string           `json:"product_id" validate:"required,uuid"`
	WarehouseID     string           `json:"warehouse_id,omitempty" validate:"omitempty,uuid"`
	FromWarehouseID string           `json:"from_warehouse_id,omitempty" validate:"omitempty,uuid"`
	ToWarehouseID   string           `json:"to_warehouse_id,omitempty" validate:"omitempty,uuid"`
	Type            string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	Note            string           `json:"note" validate:"max=500"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	ListQuery
	ProductID   string `query:"product_id"`
	WarehouseID string `query:"warehouse_id"`
}

// MovementResponse fila del kardex.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Note          string          `json:"note"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockQuery filtros de GET /api/inventory/stock.
type StockQuery struct {
	ProductID   string `query:"product_id"`
	WarehouseID string `query:"warehouse_id"`
}

// StockLevelResponse existencias de un producto en una bodega.
type StockLevelResponse struct {
	ProductID     string          `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	LowStock      bool            `json:"low_stock"`
}
