package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementa PaymentRepository. party_id e invoice_id apuntan a clientes/facturas de venta
// o a proveedores/facturas de compra según payments.type.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentSelect = `
	SELECT p.id, p.company_id, p.number, p.date, p.type, p.account_id, p.party_id,
	       COALESCE(c.name, v.name, ''), p.amount, p.method, p.reference, p.status, p.note,
	       COALESCE(p.journal_id::text, ''), COALESCE(p.created_by::text, ''), p.created_at, p.updated_at
	FROM payments p
	LEFT JOIN customers c ON p.type = 'customer' AND c.id = p.party_id
	LEFT JOIN vendors v ON p.type = 'vendor' AND v.id = p.party_id`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(&p.ID, &p.CompanyID, &p.Number, &p.Date, &p.Type, &p.AccountID, &p.PartyID, &p.PartyName,
		&p.Amount, &p.Method, &p.Reference, &p.Status, &p.Note, &p.JournalID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Create persiste el pago con sus aplicaciones.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, company_id, number, date, type, account_id, party_id, amount, method, reference,
		       status, note, journal_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.CompanyID, p.Number, p.Date, p.Type, p.AccountID, p.PartyID, p.Amount, p.Method, p.Reference,
		p.Status, p.Note, nullIfEmpty(p.JournalID), nullIfEmpty(p.CreatedBy), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return writeErr("insert payment", err)
	}
	if err := insertPaymentItems(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertPaymentItems(ctx context.Context, tx pgx.Tx, p *entity.Payment) error {
	for i := range p.Items {
		it := &p.Items[i]
		it.PaymentID = p.ID
		_, err := tx.Exec(ctx, `INSERT INTO payment_items (id, payment_id, invoice_id, amount) VALUES ($1, $2, $3, $4)`,
			it.ID, it.PaymentID, it.InvoiceID, it.Amount)
		if err != nil {
			return writeErr("insert payment item", err)
		}
	}
	return nil
}

// GetByID devuelve el pago con sus aplicaciones y el número de cada factura.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	p, err = notFoundNil(p, err, "get payment")
	if err != nil || p == nil {
		return p, err
	}
	invoices := "sales_invoices"
	if p.Type == entity.PaymentTypeVendor {
		invoices = "purchase_invoices"
	}
	rows, err := r.q.Query(ctx, `
		SELECT pi.id, pi.payment_id, pi.invoice_id, COALESCE(i.number, ''), pi.amount
		FROM payment_items pi
		LEFT JOIN `+invoices+` i ON i.id = pi.invoice_id
		WHERE pi.payment_id = $1
		ORDER BY i.number`, id)
	if err != nil {
		return nil, fmt.Errorf("list payment items: %w", err)
	}
	defer rows.Close()
	p.Items = []entity.PaymentItem{}
	for rows.Next() {
		var it entity.PaymentItem
		if err := rows.Scan(&it.ID, &it.PaymentID, &it.InvoiceID, &it.InvoiceNumber, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan payment item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	return p, rows.Err()
}

// List cabeceras de pagos; f.Type filtra customer/vendor.
func (r *PaymentRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.Payment, error) {
	w := newWhere("p.company_id", companyID)
	w.addSearch(f.Search, "p.number", "p.reference", "c.name", "v.name")
	if f.Status != "" {
		w.add("p.status = ?", f.Status)
	}
	if f.Type != "" {
		w.add("p.type = ?", f.Type)
	}
	if f.PartyID != "" {
		w.add("p.party_id = ?", f.PartyID)
	}
	w.addDateRange("p.date", f.From, f.To)
	query := paymentSelect + w.sql() + ` ORDER BY p.date DESC, p.number DESC` + w.page(f.ListParams)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := []*entity.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza cabecera y opcionalmente reemplaza las aplicaciones.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment, replaceItems bool) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE payments SET date = $2, account_id = $3, party_id = $4, amount = $5, method = $6, reference = $7,
		       status = $8, note = $9, journal_id = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.Date, p.AccountID, p.PartyID, p.Amount, p.Method, p.Reference, p.Status, p.Note,
		nullIfEmpty(p.JournalID), p.UpdatedAt)
	if err != nil {
		return writeErr("update payment", err)
	}
	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM payment_items WHERE payment_id = $1`, p.ID); err != nil {
			return fmt.Errorf("delete payment items: %w", err)
		}
		if err := insertPaymentItems(ctx, tx, p); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// InvoiceHasPayments incluye pagos anulados: sus aplicaciones siguen apuntando a la factura.
func (r *PaymentRepo) InvoiceHasPayments(ctx context.Context, invoiceID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payment_items WHERE invoice_id = $1)`, invoiceID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("invoice has payments: %w", err)
	}
	return ok, nil
}

func (r *PaymentRepo) PartyHasPayments(ctx context.Context, paymentType, partyID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE type = $1 AND party_id = $2)`,
		paymentType, partyID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("party has payments: %w", err)
	}
	return ok, nil
}

func (r *PaymentRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM payments WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete payment", err)
}
