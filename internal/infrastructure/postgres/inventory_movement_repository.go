package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, company_id, transaction_id, product_id, warehouse_id, type, quantity,
		       unit_cost, total_cost, note, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.TransactionID, m.ProductID, m.WarehouseID, m.Type, m.Quantity,
		m.UnitCost, m.TotalCost, m.Note, m.Date, m.CreatedAt, nullIfEmpty(m.CreatedBy),
	)
	return writeErr("create inventory movement", err)
}

// List historial de movimientos, más recientes primero.
func (r *InventoryMovementRepo) List(ctx context.Context, companyID string, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	w := newWhere("company_id", companyID)
	if f.ProductID != "" {
		w.add("product_id = ?", f.ProductID)
	}
	if f.WarehouseID != "" {
		w.add("warehouse_id = ?", f.WarehouseID)
	}
	query := `
		SELECT id, company_id, transaction_id, product_id, warehouse_id, type, quantity, unit_cost, total_cost,
		       note, date, created_at, created_by
		FROM inventory_movements` + w.sql() + ` ORDER BY date DESC, created_at DESC` + w.page(f.ListParams)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := []*entity.InventoryMovement{}
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.TransactionID, &m.ProductID, &m.WarehouseID, &m.Type,
			&m.Quantity, &m.UnitCost, &m.TotalCost, &m.Note, &m.Date, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.CreatedBy = derefString(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
