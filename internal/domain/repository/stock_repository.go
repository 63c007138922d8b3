package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// StockRepository consulta y actualiza existencias por producto+bodega.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y debe usarse dentro de una transacción.
type StockRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	ListLevels(ctx context.Context, companyID, productID, warehouseID string) ([]entity.StockLevel, error)
}

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ListParams
	ProductID   string
	WarehouseID string
}

// InventoryMovementRepository persistencia del kardex.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, companyID string, f MovementFilter) ([]*entity.InventoryMovement, error)
}
