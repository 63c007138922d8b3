package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, code, name, description, type, sell_price, buy_price, tax_rate, unit,
	minimum_stock, is_active, cost, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Description, &p.Type, &p.SellPrice, &p.BuyPrice, &p.TaxRate,
		&p.Unit, &p.MinimumStock, &p.IsActive, &p.Cost, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Create persiste un producto; código duplicado en la empresa -> ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.Code, p.Name, p.Description, p.Type, p.SellPrice, p.BuyPrice,
		p.TaxRate, p.Unit, p.MinimumStock, p.IsActive, p.Cost, p.CreatedAt, p.UpdatedAt)
	return writeErr("insert product", err)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	return notFoundNil(p, err, "get product")
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	return notFoundNil(p, err, "lock product")
}

func (r *ProductRepo) List(ctx context.Context, companyID string, lp repository.ListParams) ([]*entity.Product, error) {
	w := newWhere("company_id", companyID)
	w.addSearch(lp.Search, "code", "name")
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + ` ORDER BY name` + w.page(lp)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables; el costo solo cambia vía UpdateCost.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, type = $5, sell_price = $6, buy_price = $7,
		       tax_rate = $8, unit = $9, minimum_stock = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.Code, p.Name, p.Description, p.Type, p.SellPrice, p.BuyPrice, p.TaxRate,
		p.Unit, p.MinimumStock, p.IsActive, p.UpdatedAt)
	return writeErr("update product", err)
}

// UpdateCost actualiza el costo promedio ponderado.
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET cost = $2, updated_at = now() WHERE id = $1`, productID, cost)
	return writeErr("update product cost", err)
}

func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete product", err)
}
