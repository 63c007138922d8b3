package inventory

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// QueryUseCase consultas de existencias y kardex.
type QueryUseCase struct {
	stockRepo    repository.StockRepository
	movementRepo repository.InventoryMovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(stockRepo repository.StockRepository, movementRepo repository.InventoryMovementRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movementRepo: movementRepo}
}

// Stock existencias por producto y bodega; low_stock si cantidad <= mínimo.
func (uc *QueryUseCase) Stock(ctx context.Context, companyID string, q dto.StockQuery) ([]dto.StockLevelResponse, error) {
	levels, err := uc.stockRepo.ListLevels(ctx, companyID, q.ProductID, q.WarehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			ProductID:     l.ProductID,
			ProductCode:   l.ProductCode,
			ProductName:   l.ProductName,
			WarehouseID:   l.WarehouseID,
			WarehouseName: l.WarehouseName,
			Quantity:      l.Quantity,
			MinimumStock:  l.MinimumStock,
			LowStock:      l.Quantity.LessThanOrEqual(l.MinimumStock),
		})
	}
	return out, nil
}

// Movements historial de movimientos, más recientes primero.
func (uc *QueryUseCase) Movements(ctx context.Context, companyID string, q dto.MovementQuery) (*dto.MovementListResponse, error) {
	q.Normalize()
	list, err := uc.movementRepo.List(ctx, companyID, repository.MovementFilter{
		ListParams:  repository.ListParams{Limit: q.Limit, Offset: q.Offset},
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		Note:          m.Note,
		Date:          m.Date,
		CreatedBy:     m.CreatedBy,
	}
}
