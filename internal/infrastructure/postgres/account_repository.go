package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var (
	_ repository.AccountCategoryRepository = (*AccountCategoryRepo)(nil)
	_ repository.AccountRepository         = (*AccountRepo)(nil)
)

// ── Categorías ────────────────────────────────────────────────────────────────

// AccountCategoryRepo implementación de AccountCategoryRepository.
type AccountCategoryRepo struct {
	q Querier
}

// NewAccountCategoryRepository construye el adaptador.
func NewAccountCategoryRepository(q Querier) *AccountCategoryRepo {
	return &AccountCategoryRepo{q: q}
}

const categoryColumns = `id, company_id, code, name, type, description, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.AccountCategory, error) {
	var c entity.AccountCategory
	err := row.Scan(&c.ID, &c.CompanyID, &c.Code, &c.Name, &c.Type, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *AccountCategoryRepo) Create(ctx context.Context, c *entity.AccountCategory) error {
	query := `INSERT INTO account_categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CompanyID, c.Code, c.Name, c.Type, c.Description, c.CreatedAt, c.UpdatedAt)
	return writeErr("insert account category", err)
}

func (r *AccountCategoryRepo) GetByID(ctx context.Context, id string) (*entity.AccountCategory, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM account_categories WHERE id = $1`, id))
	return notFoundNil(c, err, "get account category")
}

func (r *AccountCategoryRepo) List(ctx context.Context, companyID string, p repository.ListParams) ([]*entity.AccountCategory, error) {
	w := newWhere("company_id", companyID)
	w.addSearch(p.Search, "code", "name")
	query := `SELECT ` + categoryColumns + ` FROM account_categories` + w.sql() + ` ORDER BY code` + w.page(p)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list account categories: %w", err)
	}
	defer rows.Close()
	list := []*entity.AccountCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *AccountCategoryRepo) Update(ctx context.Context, c *entity.AccountCategory) error {
	query := `
		UPDATE account_categories SET code = $2, name = $3, type = $4, description = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Code, c.Name, c.Type, c.Description, c.UpdatedAt)
	return writeErr("update account category", err)
}

func (r *AccountCategoryRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM account_categories WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete account category", err)
}

// ── Cuentas ───────────────────────────────────────────────────────────────────

// AccountRepo implementación de AccountRepository. Las lecturas traen nombre y tipo de la categoría.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountSelect = `
	SELECT a.id, a.company_id, a.category_id, a.code, a.name, a.description, a.is_active, a.balance,
	       c.name, c.type, a.created_at, a.updated_at
	FROM accounts a
	JOIN account_categories c ON c.id = a.category_id`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.CompanyID, &a.CategoryID, &a.Code, &a.Name, &a.Description, &a.IsActive, &a.Balance,
		&a.CategoryName, &a.Type, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, company_id, category_id, code, name, description, is_active, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, a.ID, a.CompanyID, a.CategoryID, a.Code, a.Name, a.Description, a.IsActive, a.Balance,
		a.CreatedAt, a.UpdatedAt)
	return writeErr("insert account", err)
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, accountSelect+` WHERE a.id = $1`, id))
	return notFoundNil(a, err, "get account")
}

func (r *AccountRepo) List(ctx context.Context, companyID string, f repository.AccountFilter) ([]*entity.Account, error) {
	w := newWhere("a.company_id", companyID)
	w.addSearch(f.Search, "a.code", "a.name")
	if f.CategoryID != "" {
		w.add("a.category_id = ?", f.CategoryID)
	}
	if f.Type != "" {
		w.add("c.type = ?", f.Type)
	}
	if f.Active != nil {
		w.add("a.is_active = ?", *f.Active)
	}
	query := accountSelect + w.sql() + ` ORDER BY a.code` + w.page(f.ListParams)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	list := []*entity.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET category_id = $2, code = $3, name = $4, description = $5, is_active = $6,
		       balance = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, a.ID, a.CategoryID, a.Code, a.Name, a.Description, a.IsActive, a.Balance, a.UpdatedAt)
	return writeErr("update account", err)
}

func (r *AccountRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete account", err)
}
