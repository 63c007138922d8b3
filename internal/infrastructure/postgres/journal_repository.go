package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.JournalRepository = (*JournalRepo)(nil)

// JournalRepo implementa JournalRepository.
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construye el adaptador.
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

const journalColumns = `id, company_id, number, date, description, reference, status,
	COALESCE(transaction_id::text, ''), COALESCE(created_by::text, ''), created_at, updated_at`

func scanJournal(row pgx.Row) (*entity.Journal, error) {
	var j entity.Journal
	err := row.Scan(&j.ID, &j.CompanyID, &j.Number, &j.Date, &j.Description, &j.Reference, &j.Status,
		&j.TransactionID, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	return &j, err
}

// Create persiste el asiento con sus líneas.
func (r *JournalRepo) Create(ctx context.Context, j *entity.Journal) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO journals (id, company_id, number, date, description, reference, status, transaction_id,
		       created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.ID, j.CompanyID, j.Number, j.Date, j.Description, j.Reference, j.Status, nullIfEmpty(j.TransactionID),
		nullIfEmpty(j.CreatedBy), j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return writeErr("insert journal", err)
	}
	if err := insertJournalItems(ctx, tx, j); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertJournalItems(ctx context.Context, tx pgx.Tx, j *entity.Journal) error {
	for i := range j.Items {
		it := &j.Items[i]
		it.JournalID = j.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO journal_items (id, journal_id, account_id, description, debit, credit, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.JournalID, it.AccountID, it.Description, it.Debit, it.Credit, it.Position)
		if err != nil {
			return writeErr("insert journal item", err)
		}
	}
	return nil
}

// GetByID devuelve el asiento con líneas y datos de la cuenta.
func (r *JournalRepo) GetByID(ctx context.Context, id string) (*entity.Journal, error) {
	j, err := scanJournal(r.q.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE id = $1`, id))
	j, err = notFoundNil(j, err, "get journal")
	if err != nil || j == nil {
		return j, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT ji.id, ji.journal_id, ji.account_id, a.code, a.name, ji.description, ji.debit, ji.credit, ji.position
		FROM journal_items ji
		JOIN accounts a ON a.id = ji.account_id
		WHERE ji.journal_id = $1
		ORDER BY ji.position`, id)
	if err != nil {
		return nil, fmt.Errorf("list journal items: %w", err)
	}
	defer rows.Close()
	j.Items = []entity.JournalItem{}
	for rows.Next() {
		var it entity.JournalItem
		if err := rows.Scan(&it.ID, &it.JournalID, &it.AccountID, &it.AccountCode, &it.AccountName, &it.Description,
			&it.Debit, &it.Credit, &it.Position); err != nil {
			return nil, fmt.Errorf("scan journal item: %w", err)
		}
		j.Items = append(j.Items, it)
	}
	return j, rows.Err()
}

// List cabeceras de asientos.
func (r *JournalRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.Journal, error) {
	w := newWhere("company_id", companyID)
	w.addSearch(f.Search, "number", "description", "reference")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	w.addDateRange("date", f.From, f.To)
	query := `SELECT ` + journalColumns + ` FROM journals` + w.sql() + ` ORDER BY date DESC, number DESC` + w.page(f.ListParams)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	defer rows.Close()
	list := []*entity.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// Update actualiza cabecera y opcionalmente reemplaza las líneas.
func (r *JournalRepo) Update(ctx context.Context, j *entity.Journal, replaceItems bool) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE journals SET date = $2, description = $3, reference = $4, status = $5, transaction_id = $6, updated_at = $7
		WHERE id = $1`,
		j.ID, j.Date, j.Description, j.Reference, j.Status, nullIfEmpty(j.TransactionID), j.UpdatedAt)
	if err != nil {
		return writeErr("update journal", err)
	}
	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE journal_id = $1`, j.ID); err != nil {
			return fmt.Errorf("delete journal items: %w", err)
		}
		if err := insertJournalItems(ctx, tx, j); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *JournalRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM journals WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete journal", err)
}
