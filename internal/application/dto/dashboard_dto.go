package dto

import "github.com/shopspring/decimal"

// MetricDTO valor del mes en curso contra el mes anterior.
type MetricDTO struct {
	Value         decimal.Decimal `json:"value"`
	PreviousValue decimal.Decimal `json:"previous_value"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// DashboardMetricsDTO respuesta de GET /api/dashboard/metrics.
type DashboardMetricsDTO struct {
	Period             string    `json:"period"` // YYYY-MM
	TotalRevenue       MetricDTO `json:"total_revenue"`
	TotalExpenses      MetricDTO `json:"total_expenses"`
	AccountsReceivable MetricDTO `json:"accounts_receivable"`
	AccountsPayable    MetricDTO `json:"accounts_payable"`
}

// ChartDataDTO ingresos vs gastos de los últimos 12 meses.
type ChartDataDTO struct {
	Months   []string          `json:"months"`
	Revenue  []decimal.Decimal `json:"revenue"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// CashFlowBucketDTO entradas y salidas de un tramo (semana o mes).
type CashFlowBucketDTO struct {
	Label    string          `json:"label"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Incoming decimal.Decimal `json:"incoming"`
	Outgoing decimal.Decimal `json:"outgoing"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlowDTO flujo de caja por tramos con totales.
type CashFlowDTO struct {
	From          string              `json:"from"`
	To            string              `json:"to"`
	Interval      string              `json:"interval"`
	Buckets       []CashFlowBucketDTO `json:"buckets"`
	TotalIncoming decimal.Decimal     `json:"total_incoming"`
	TotalOutgoing decimal.Decimal     `json:"total_outgoing"`
	Net           decimal.Decimal     `json:"net"`
}

// RecentTransactionDTO fila del feed de actividad.
type RecentTransactionDTO struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        string          `json:"type"` // incoming | outgoing
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Entity      string          `json:"entity"`
}

// TopAccountDTO cuenta con su saldo y participación dentro de su tipo.
type TopAccountDTO struct {
	AccountID  string          `json:"account_id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TopAccountsDTO top 5 de ingresos y de gastos.
type TopAccountsDTO struct {
	Revenue  []TopAccountDTO `json:"revenue"`
	Expenses []TopAccountDTO `json:"expenses"`
}
