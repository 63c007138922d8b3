package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre inventory_stock (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) get(ctx context.Context, query, productID, warehouseID string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.CompanyID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// sin fila = cero existencias
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return r.get(ctx, `
		SELECT company_id, product_id, warehouse_id, quantity, updated_at
		FROM inventory_stock WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si no existe la crea en cero
// antes, para que también quede bloqueada.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_stock (company_id, product_id, warehouse_id, quantity, updated_at)
		SELECT company_id, $1, $2, 0, now() FROM products WHERE id = $1
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`, productID, warehouseID)
	if err != nil {
		return nil, writeErr("init stock", err)
	}
	return r.get(ctx, `
		SELECT company_id, product_id, warehouse_id, quantity, updated_at
		FROM inventory_stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`, productID, warehouseID)
}

// Upsert inserta o actualiza la cantidad por producto y bodega.
func (r *StockRepo) Upsert(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO inventory_stock (company_id, product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, s.CompanyID, s.ProductID, s.WarehouseID, s.Quantity)
	return writeErr("upsert stock", err)
}

// ListLevels existencias por producto y bodega con nombres, costo y stock mínimo.
func (r *StockRepo) ListLevels(ctx context.Context, companyID, productID, warehouseID string) ([]entity.StockLevel, error) {
	w := newWhere("s.company_id", companyID)
	if productID != "" {
		w.add("s.product_id = ?", productID)
	}
	if warehouseID != "" {
		w.add("s.warehouse_id = ?", warehouseID)
	}
	query := `
		SELECT p.id, p.code, p.name, wh.id, wh.name, s.quantity, p.minimum_stock, p.cost
		FROM inventory_stock s
		JOIN products   p  ON p.id  = s.product_id
		JOIN warehouses wh ON wh.id = s.warehouse_id` + w.sql() + `
		ORDER BY p.name, wh.name`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	list := []entity.StockLevel{}
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ProductID, &l.ProductCode, &l.ProductName, &l.WarehouseID, &l.WarehouseName,
			&l.Quantity, &l.MinimumStock, &l.Cost); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
