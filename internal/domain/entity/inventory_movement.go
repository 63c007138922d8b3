package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN          = "IN"
	MovementTypeOUT         = "OUT"
	MovementTypeADJUSTMENT  = "ADJUSTMENT"
	MovementTypeTRANSFER    = "TRANSFER" // solo como tipo de request; se persiste como par OUT/IN
	MovementTypeTransferOut = "TRANSFER_OUT"
	MovementTypeTransferIn  = "TRANSFER_IN"
)

// InventoryMovement movimiento de inventario. Quantity es positiva en entradas y negativa en salidas.
type InventoryMovement struct {
	ID            string
	CompanyID     string
	TransactionID string // agrupa los dos lados de un traslado
	ProductID     string
	WarehouseID   string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Note          string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
