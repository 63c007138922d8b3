package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func invoiceTables(sales bool) (header, items, paymentType string) {
	if sales {
		return "sales_invoices", "sales_invoice_items", entity.PaymentTypeCustomer
	}
	return "purchase_invoices", "purchase_invoice_items", entity.PaymentTypeVendor
}

// InvoicedTotals suma facturas de venta y de compra no canceladas en [from, to).
func (r *AnalyticsRepo) InvoicedTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(total) FROM sales_invoices
	              WHERE company_id = $1 AND date >= $2 AND date < $3 AND status <> 'canceled'), 0) AS revenue,
	    COALESCE((SELECT SUM(total) FROM purchase_invoices
	              WHERE company_id = $1 AND date >= $2 AND date < $3 AND status <> 'canceled'), 0) AS expenses`

	var revenue, expenses decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, from, to).Scan(&revenue, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.InvoicedTotals: %w", err)
	}
	return revenue, expenses, nil
}

// Outstanding saldo de facturas a la fecha menos pagos registrados hasta esa fecha.
func (r *AnalyticsRepo) Outstanding(ctx context.Context, companyID string, sales bool, asOf time.Time) (decimal.Decimal, error) {
	header, _, paymentType := invoiceTables(sales)
	query := `
	SELECT
	    COALESCE((SELECT SUM(i.total) FROM ` + header + ` i
	              WHERE i.company_id = $1 AND i.status <> 'canceled' AND i.date <= $2), 0)
	  - COALESCE((SELECT SUM(pi.amount)
	              FROM payment_items pi
	              JOIN payments p ON p.id = pi.payment_id
	              JOIN ` + header + ` i ON i.id = pi.invoice_id
	              WHERE p.company_id = $1 AND p.type = $3 AND p.status <> 'canceled' AND p.date <= $2
	                AND i.status <> 'canceled' AND i.date <= $2), 0) AS outstanding`

	var out decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, asOf, paymentType).Scan(&out); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.Outstanding: %w", err)
	}
	return out, nil
}

// MonthlyTotals ingresos y gastos facturados agrupados por mes; solo meses con movimiento.
func (r *AnalyticsRepo) MonthlyTotals(ctx context.Context, companyID string, from, to time.Time) ([]repository.MonthTotals, error) {
	const query = `
	WITH s AS (
	    SELECT date_trunc('month', date)::date AS month, SUM(total) AS total
	    FROM sales_invoices
	    WHERE company_id = $1 AND date >= $2 AND date < $3 AND status <> 'canceled'
	    GROUP BY 1
	), p AS (
	    SELECT date_trunc('month', date)::date AS month, SUM(total) AS total
	    FROM purchase_invoices
	    WHERE company_id = $1 AND date >= $2 AND date < $3 AND status <> 'canceled'
	    GROUP BY 1
	)
	SELECT COALESCE(s.month, p.month) AS month,
	       COALESCE(s.total, 0)        AS revenue,
	       COALESCE(p.total, 0)        AS expenses
	FROM s
	FULL OUTER JOIN p ON p.month = s.month
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlyTotals: %w", err)
	}
	return collect(rows, "analytics.MonthlyTotals", func(row pgx.Rows) (repository.MonthTotals, error) {
		var m repository.MonthTotals
		err := row.Scan(&m.Month, &m.Revenue, &m.Expenses)
		return m, err
	})
}

// DailyCash entradas y salidas por día: pagos no cancelados y transacciones de caja/banco contabilizadas.
func (r *AnalyticsRepo) DailyCash(ctx context.Context, companyID string, from, to time.Time) ([]repository.DailyCash, error) {
	const query = `
	SELECT day, SUM(incoming), SUM(outgoing)
	FROM (
	    SELECT date AS day,
	           CASE WHEN type = 'customer' THEN amount ELSE 0 END AS incoming,
	           CASE WHEN type = 'vendor'   THEN amount ELSE 0 END AS outgoing
	    FROM payments
	    WHERE company_id = $1 AND date >= $2 AND date < $3 AND status <> 'canceled'
	    UNION ALL
	    SELECT date,
	           CASE WHEN type IN ('cash_receipt', 'bank_receipt') THEN amount ELSE 0 END,
	           CASE WHEN type IN ('cash_payment', 'bank_payment') THEN amount ELSE 0 END
	    FROM transactions
	    WHERE company_id = $1 AND date >= $2 AND date < $3 AND status = 'posted' AND type <> 'journal'
	) x
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.DailyCash: %w", err)
	}
	return collect(rows, "analytics.DailyCash", func(row pgx.Rows) (repository.DailyCash, error) {
		var d repository.DailyCash
		err := row.Scan(&d.Day, &d.Incoming, &d.Outgoing)
		return d, err
	})
}

// RecentActivity últimas facturas, pagos y transacciones de la compañía.
func (r *AnalyticsRepo) RecentActivity(ctx context.Context, companyID string, limit int) ([]repository.ActivityRow, error) {
	const query = `
	SELECT id, date, description, type, reference, amount, status, entity
	FROM (
	    SELECT i.id, i.date, 'Factura de venta ' || i.number AS description, 'incoming' AS type,
	           i.number AS reference, i.total AS amount, i.status, c.name AS entity, i.created_at
	    FROM sales_invoices i JOIN customers c ON c.id = i.customer_id
	    WHERE i.company_id = $1
	    UNION ALL
	    SELECT i.id, i.date, 'Factura de compra ' || i.number, 'outgoing',
	           i.number, i.total, i.status, v.name, i.created_at
	    FROM purchase_invoices i JOIN vendors v ON v.id = i.vendor_id
	    WHERE i.company_id = $1
	    UNION ALL
	    SELECT p.id, p.date, 'Pago ' || p.number,
	           CASE WHEN p.type = 'customer' THEN 'incoming' ELSE 'outgoing' END,
	           COALESCE(NULLIF(p.reference, ''), p.number), p.amount, p.status,
	           COALESCE(c.name, v.name, ''), p.created_at
	    FROM payments p
	    LEFT JOIN customers c ON p.type = 'customer' AND c.id = p.party_id
	    LEFT JOIN vendors v ON p.type = 'vendor' AND v.id = p.party_id
	    WHERE p.company_id = $1
	    UNION ALL
	    SELECT t.id, t.date, COALESCE(NULLIF(t.description, ''), t.number),
	           CASE WHEN t.type IN ('cash_receipt', 'bank_receipt') THEN 'incoming' ELSE 'outgoing' END,
	           COALESCE(NULLIF(t.reference, ''), t.number), t.amount, t.status, '', t.created_at
	    FROM transactions t
	    WHERE t.company_id = $1
	) x
	ORDER BY date DESC, created_at DESC
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentActivity: %w", err)
	}
	return collect(rows, "analytics.RecentActivity", func(row pgx.Rows) (repository.ActivityRow, error) {
		var a repository.ActivityRow
		err := row.Scan(&a.ID, &a.Date, &a.Description, &a.Type, &a.Reference, &a.Amount, &a.Status, &a.Entity)
		return a, err
	})
}

// AccountActivity saldo inicial y débitos/créditos de asientos posted con fecha en [from, to).
func (r *AnalyticsRepo) AccountActivity(ctx context.Context, companyID string, from *time.Time, to time.Time) ([]repository.AccountActivity, error) {
	const query = `
	SELECT a.id, a.code, a.name, c.type, c.name, a.balance,
	       COALESCE(SUM(ji.debit), 0)  AS debit,
	       COALESCE(SUM(ji.credit), 0) AS credit
	FROM accounts a
	JOIN account_categories c ON c.id = a.category_id
	LEFT JOIN journal_items ji ON ji.account_id = a.id
	     AND EXISTS (
	         SELECT 1 FROM journals j
	         WHERE j.id = ji.journal_id AND j.status = 'posted'
	           AND j.date < $2 AND ($3::date IS NULL OR j.date >= $3::date))
	WHERE a.company_id = $1
	GROUP BY a.id, a.code, a.name, c.type, c.name, a.balance
	ORDER BY a.code`

	rows, err := r.q.Query(ctx, query, companyID, to, from)
	if err != nil {
		return nil, fmt.Errorf("analytics.AccountActivity: %w", err)
	}
	return collect(rows, "analytics.AccountActivity", func(row pgx.Rows) (repository.AccountActivity, error) {
		var a repository.AccountActivity
		err := row.Scan(&a.AccountID, &a.Code, &a.Name, &a.Type, &a.CategoryName, &a.Opening, &a.Debit, &a.Credit)
		return a, err
	})
}

// TaxByRate base e impuesto por tarifa de facturas no canceladas.
func (r *AnalyticsRepo) TaxByRate(ctx context.Context, companyID string, sales bool, from, to time.Time) ([]repository.TaxRateRow, error) {
	header, items, _ := invoiceTables(sales)
	query := `
	SELECT it.tax_rate, SUM(it.subtotal) AS taxable, SUM(it.tax_amount) AS tax
	FROM ` + items + ` it
	JOIN ` + header + ` i ON i.id = it.document_id
	WHERE i.company_id = $1 AND i.date >= $2 AND i.date < $3 AND i.status <> 'canceled'
	GROUP BY it.tax_rate
	ORDER BY it.tax_rate`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.TaxByRate: %w", err)
	}
	return collect(rows, "analytics.TaxByRate", func(row pgx.Rows) (repository.TaxRateRow, error) {
		var t repository.TaxRateRow
		err := row.Scan(&t.Rate, &t.Taxable, &t.Tax)
		return t, err
	})
}

// SalesByCustomer ventas facturadas por cliente, mayor total primero.
func (r *AnalyticsRepo) SalesByCustomer(ctx context.Context, companyID string, from, to time.Time) ([]repository.SalesGroupRow, error) {
	const query = `
	SELECT c.id, c.code, c.name, 0::numeric,
	       SUM(i.subtotal), SUM(i.tax_total), SUM(i.total), COUNT(*)
	FROM sales_invoices i
	JOIN customers c ON c.id = i.customer_id
	WHERE i.company_id = $1 AND i.date >= $2 AND i.date < $3 AND i.status <> 'canceled'
	GROUP BY c.id, c.code, c.name
	ORDER BY SUM(i.total) DESC`

	return r.salesGroups(ctx, "analytics.SalesByCustomer", query, companyID, from, to)
}

// SalesByProduct ventas facturadas por producto (solo líneas con producto).
func (r *AnalyticsRepo) SalesByProduct(ctx context.Context, companyID string, from, to time.Time) ([]repository.SalesGroupRow, error) {
	const query = `
	SELECT p.id, p.code, p.name, SUM(it.quantity),
	       SUM(it.subtotal), SUM(it.tax_amount), SUM(it.total), COUNT(DISTINCT i.id)
	FROM sales_invoice_items it
	JOIN sales_invoices i ON i.id = it.document_id
	JOIN products p ON p.id = it.product_id
	WHERE i.company_id = $1 AND i.date >= $2 AND i.date < $3 AND i.status <> 'canceled'
	GROUP BY p.id, p.code, p.name
	ORDER BY SUM(it.total) DESC`

	return r.salesGroups(ctx, "analytics.SalesByProduct", query, companyID, from, to)
}

func (r *AnalyticsRepo) salesGroups(ctx context.Context, op, query, companyID string, from, to time.Time) ([]repository.SalesGroupRow, error) {
	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collect(rows, op, func(row pgx.Rows) (repository.SalesGroupRow, error) {
		var g repository.SalesGroupRow
		err := row.Scan(&g.ID, &g.Code, &g.Name, &g.Quantity, &g.Subtotal, &g.Tax, &g.Total, &g.Count)
		return g, err
	})
}

// collect recorre rows con scan y cierra el cursor.
func collect[T any](rows pgx.Rows, op string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
