package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity saldo inicial y movimiento contabilizado (asientos posted) de una cuenta en un rango.
type AccountActivity struct {
	AccountID    string
	Code         string
	Name         string
	Type         string
	CategoryName string
	Opening      decimal.Decimal // accounts.balance
	Debit        decimal.Decimal
	Credit       decimal.Decimal
}

// MonthTotals ingresos y gastos facturados de un mes.
type MonthTotals struct {
	Month    time.Time // primer día del mes
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
}

// DailyCash entradas y salidas de dinero de un día (pagos + transacciones de caja/banco).
type DailyCash struct {
	Day      time.Time
	Incoming decimal.Decimal
	Outgoing decimal.Decimal
}

// ActivityRow fila del feed de actividad reciente.
type ActivityRow struct {
	ID          string
	Date        time.Time
	Description string
	Type        string // incoming | outgoing
	Reference   string
	Amount      decimal.Decimal
	Status      string
	Entity      string
}

// TaxRateRow base gravable e impuesto agrupados por tarifa.
type TaxRateRow struct {
	Rate    decimal.Decimal
	Taxable decimal.Decimal
	Tax     decimal.Decimal
}

// SalesGroupRow ventas agrupadas por cliente o producto.
type SalesGroupRow struct {
	ID       string
	Code     string
	Name     string
	Quantity decimal.Decimal // solo por producto
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Count    int
}

// AnalyticsRepository consultas de solo lectura para dashboard y reportes.
// Las facturas canceladas se excluyen siempre.
type AnalyticsRepository interface {
	// InvoicedTotals suma de totales de facturas de venta (revenue) y de compra (expenses) en [from, to).
	InvoicedTotals(ctx context.Context, companyID string, from, to time.Time) (revenue, expenses decimal.Decimal, err error)

	// Outstanding saldo por cobrar (sales) o por pagar (purchases) de facturas con fecha <= asOf,
	// descontando pagos no cancelados con fecha <= asOf.
	Outstanding(ctx context.Context, companyID string, sales bool, asOf time.Time) (decimal.Decimal, error)

	// MonthlyTotals totales por mes en [from, to).
	MonthlyTotals(ctx context.Context, companyID string, from, to time.Time) ([]MonthTotals, error)

	// DailyCash flujo de caja diario en [from, to).
	DailyCash(ctx context.Context, companyID string, from, to time.Time) ([]DailyCash, error)

	// RecentActivity últimas filas de facturas, pagos y transacciones.
	RecentActivity(ctx context.Context, companyID string, limit int) ([]ActivityRow, error)

	// AccountActivity saldo inicial + débitos/créditos de asientos posted con fecha en [from, to).
	// from nil = desde el inicio.
	AccountActivity(ctx context.Context, companyID string, from *time.Time, to time.Time) ([]AccountActivity, error)

	// TaxByRate impuestos por tarifa de facturas de venta (sales=true) o de compra en [from, to).
	TaxByRate(ctx context.Context, companyID string, sales bool, from, to time.Time) ([]TaxRateRow, error)

	// SalesByCustomer y SalesByProduct agrupan facturas de venta en [from, to).
	SalesByCustomer(ctx context.Context, companyID string, from, to time.Time) ([]SalesGroupRow, error)
	SalesByProduct(ctx context.Context, companyID string, from, to time.Time) ([]SalesGroupRow, error)
}
