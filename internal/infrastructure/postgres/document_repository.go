package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// documentTable nombres de tablas y columnas que varían por tipo de documento.
type documentTable struct {
	header     string
	items      string
	partyCol   string
	partyTable string
	sourceCol  string // vacío si el tipo no referencia un documento de origen
	dueCol     string
	paymentTyp string // vacío si no admite pagos
}

var documentTables = map[entity.DocumentKind]documentTable{
	entity.KindSalesQuotation: {
		header: "sales_quotations", items: "sales_quotation_items",
		partyCol: "customer_id", partyTable: "customers", dueCol: "valid_until",
	},
	entity.KindSalesOrder: {
		header: "sales_orders", items: "sales_order_items",
		partyCol: "customer_id", partyTable: "customers", sourceCol: "quotation_id", dueCol: "expected_delivery_date",
	},
	entity.KindSalesInvoice: {
		header: "sales_invoices", items: "sales_invoice_items",
		partyCol: "customer_id", partyTable: "customers", sourceCol: "order_id", dueCol: "due_date",
		paymentTyp: entity.PaymentTypeCustomer,
	},
	entity.KindPurchaseOrder: {
		header: "purchase_orders", items: "purchase_order_items",
		partyCol: "vendor_id", partyTable: "vendors", dueCol: "expected_delivery_date",
	},
	entity.KindPurchaseInvoice: {
		header: "purchase_invoices", items: "purchase_invoice_items",
		partyCol: "vendor_id", partyTable: "vendors", sourceCol: "order_id", dueCol: "due_date",
		paymentTyp: entity.PaymentTypeVendor,
	},
}

// DocumentRepo repositorio genérico de documentos comerciales, atado a un tipo.
type DocumentRepo struct {
	q    Querier
	kind entity.DocumentKind
	t    documentTable
}

// NewDocumentRepository construye el repositorio para el tipo indicado.
func NewDocumentRepository(q Querier, kind entity.DocumentKind) *DocumentRepo {
	t, ok := documentTables[kind]
	if !ok {
		panic(fmt.Sprintf("postgres: tipo de documento desconocido %q", kind))
	}
	return &DocumentRepo{q: q, kind: kind, t: t}
}

// Kind tipo de documento del repositorio.
func (r *DocumentRepo) Kind() entity.DocumentKind { return r.kind }

func (r *DocumentRepo) sourceExpr() string {
	if r.t.sourceCol == "" {
		return "''"
	}
	return "COALESCE(d." + r.t.sourceCol + "::text, '')"
}

// paidExpr suma de pagos no cancelados aplicados a la factura.
func (r *DocumentRepo) paidExpr() string {
	if r.t.paymentTyp == "" {
		return "0::numeric"
	}
	return `COALESCE((
		SELECT SUM(pi.amount) FROM payment_items pi
		JOIN payments p ON p.id = pi.payment_id
		WHERE pi.invoice_id = d.id AND p.status <> 'canceled' AND p.type = '` + r.t.paymentTyp + `'), 0)`
}

func (r *DocumentRepo) selectSQL() string {
	return `
		SELECT d.id, d.company_id, d.number, d.` + r.t.partyCol + `, pt.name, ` + r.sourceExpr() + `,
		       d.date, d.` + r.t.dueCol + `, d.status, d.subtotal, d.tax_total, d.total, ` + r.paidExpr() + `,
		       d.note, d.created_by, d.created_at, d.updated_at
		FROM ` + r.t.header + ` d
		JOIN ` + r.t.partyTable + ` pt ON pt.id = d.` + r.t.partyCol
}

func (r *DocumentRepo) scan(row pgx.Row) (*entity.TradeDocument, error) {
	d := entity.TradeDocument{Kind: r.kind}
	var createdBy *string
	err := row.Scan(&d.ID, &d.CompanyID, &d.Number, &d.PartyID, &d.PartyName, &d.SourceID,
		&d.Date, &d.DueDate, &d.Status, &d.Subtotal, &d.TaxTotal, &d.Total, &d.AmountPaid,
		&d.Note, &createdBy, &d.CreatedAt, &d.UpdatedAt)
	d.CreatedBy = derefString(createdBy)
	return &d, err
}

// Create inserta cabecera y líneas en una misma transacción.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.TradeDocument) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cols := `id, company_id, number, ` + r.t.partyCol + `, date, ` + r.t.dueCol + `, status, subtotal, tax_total, total,
		note, created_by, created_at, updated_at`
	args := []any{d.ID, d.CompanyID, d.Number, d.PartyID, d.Date, d.DueDate, d.Status, d.Subtotal, d.TaxTotal, d.Total,
		d.Note, nullIfEmpty(d.CreatedBy), d.CreatedAt, d.UpdatedAt}
	placeholders := "$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14"
	if r.t.sourceCol != "" {
		cols += ", " + r.t.sourceCol
		placeholders += ", $15"
		args = append(args, nullIfEmpty(d.SourceID))
	}
	if _, err := tx.Exec(ctx, `INSERT INTO `+r.t.header+` (`+cols+`) VALUES (`+placeholders+`)`, args...); err != nil {
		return writeErr("insert "+r.t.header, err)
	}
	if err := r.insertItems(ctx, tx, d); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *DocumentRepo) insertItems(ctx context.Context, tx pgx.Tx, d *entity.TradeDocument) error {
	query := `
		INSERT INTO ` + r.t.items + ` (id, document_id, product_id, description, quantity, unit_price, tax_rate,
		       subtotal, tax_amount, total, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i := range d.Items {
		it := &d.Items[i]
		it.DocumentID = d.ID
		if _, err := tx.Exec(ctx, query, it.ID, it.DocumentID, nullIfEmpty(it.ProductID), it.Description, it.Quantity,
			it.UnitPrice, it.TaxRate, it.Subtotal, it.TaxAmount, it.Total, it.Position); err != nil {
			return writeErr("insert "+r.t.items, err)
		}
	}
	return nil
}

// GetByID devuelve el documento con sus líneas.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.TradeDocument, error) {
	d, err := r.scan(r.q.QueryRow(ctx, r.selectSQL()+` WHERE d.id = $1`, id))
	d, err = notFoundNil(d, err, "get "+r.t.header)
	if err != nil || d == nil {
		return d, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, COALESCE(product_id::text, ''), description, quantity, unit_price, tax_rate,
		       subtotal, tax_amount, total, position
		FROM `+r.t.items+` WHERE document_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.items, err)
	}
	defer rows.Close()
	d.Items = []entity.DocumentItem{}
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProductID, &it.Description, &it.Quantity, &it.UnitPrice,
			&it.TaxRate, &it.Subtotal, &it.TaxAmount, &it.Total, &it.Position); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.items, err)
		}
		d.Items = append(d.Items, it)
	}
	return d, rows.Err()
}

// List cabeceras (sin líneas) filtradas, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.TradeDocument, error) {
	w := newWhere("d.company_id", companyID)
	w.addSearch(f.Search, "d.number", "pt.name")
	if f.Status != "" {
		w.add("d.status = ?", f.Status)
	}
	if f.PartyID != "" {
		w.add("d."+r.t.partyCol+" = ?", f.PartyID)
	}
	w.addDateRange("d.date", f.From, f.To)
	query := r.selectSQL() + w.sql() + ` ORDER BY d.date DESC, d.number DESC` + w.page(f.ListParams)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.header, err)
	}
	defer rows.Close()
	list := []*entity.TradeDocument{}
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.header, err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera y, si replaceItems, reemplaza las líneas.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.TradeDocument, replaceItems bool) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	set := `number = $2, ` + r.t.partyCol + ` = $3, date = $4, ` + r.t.dueCol + ` = $5, status = $6,
		subtotal = $7, tax_total = $8, total = $9, note = $10, updated_at = $11`
	args := []any{d.ID, d.Number, d.PartyID, d.Date, d.DueDate, d.Status, d.Subtotal, d.TaxTotal, d.Total, d.Note, d.UpdatedAt}
	if r.t.sourceCol != "" {
		set += ", " + r.t.sourceCol + " = $12"
		args = append(args, nullIfEmpty(d.SourceID))
	}
	if _, err := tx.Exec(ctx, `UPDATE `+r.t.header+` SET `+set+` WHERE id = $1`, args...); err != nil {
		return writeErr("update "+r.t.header, err)
	}
	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM `+r.t.items+` WHERE document_id = $1`, d.ID); err != nil {
			return fmt.Errorf("delete %s: %w", r.t.items, err)
		}
		if err := r.insertItems(ctx, tx, d); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete elimina el documento (las líneas caen por ON DELETE CASCADE).
func (r *DocumentRepo) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM `+r.t.header+` WHERE company_id = $1 AND id = $2`, companyID, id)
	return writeErr("delete "+r.t.header, err)
}

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo numeración atómica en document_sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el siguiente valor (empieza en 1).
func (r *SequenceRepo) Next(ctx context.Context, companyID, prefix string, year int) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (company_id, prefix, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, prefix, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`, companyID, prefix, year).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
