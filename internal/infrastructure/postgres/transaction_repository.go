package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementa TransactionRepository.
type TransactionRepo struct {
	q Querier
}

func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, company_id, number, date, type, description, amount, reference,
	COALESCE(account_id::text, ''), status, COALESCE(created_by::text, ''), created_at, updated_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.CompanyID, &t.Number, &t.Date, &t.Type, &t.Description, &t.Amount, &t.Reference,
		&t.AccountID, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, company_id, number, date, type, description, amount, reference, account_id,
		       status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.CompanyID, t.Number, t.Date, t.Type, t.Description, t.Amount, t.Reference, nullIfEmpty(t.AccountID),
		t.Status, nullIfEmpty(t.CreatedBy), t.CreatedAt, t.UpdatedAt)
	return writeErr("insert transaction", err)
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	return notFoundNil(t, err, "get transaction")
}

// List filtra por estado, tipo y rango de fechas.
func (r *TransactionRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.Transaction, error) {
	w := newWhere("company_id", companyID)
	w.addSearch(f.Search, "number", "description", "reference")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	w.addDateRange("date", f.From, f.To)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + w.sql() + ` ORDER BY date DESC, number DESC` + w.page(f.ListParams)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := []*entity.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		UPDATE transactions SET date = $2, type = $3, description = $4, amount = $5, reference = $6,
		       account_id = $7, status = $8, updated_at = $9
		WHERE id = $1`,
		t.ID, t.Date, t.Type, t.Description, t.Amount, t.Reference, nullIfEmpty(t.AccountID), t.Status, t.UpdatedAt)
	return writeErr("update transaction", err)
}

func (r *TransactionRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete transaction", err)
}
