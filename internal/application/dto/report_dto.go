package dto

import "github.com/shopspring/decimal"

// ReportQuery parámetros comunes de /api/reports/*.
type ReportQuery struct {
	From     string `query:"from"`
	To       string `query:"to"`
	AsOf     string `query:"as_of"`
	Interval string `query:"interval"`
	Format   string `query:"format"`
}

// ReportLineDTO saldo o movimiento de una cuenta en un reporte.
type ReportLineDTO struct {
	AccountID string          `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

// PeriodSummaryDTO totales de un período del estado de resultados.
type PeriodSummaryDTO struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// ProfitLossDTO estado de resultados con comparación contra el período anterior.
type ProfitLossDTO struct {
	PeriodSummaryDTO
	Revenue  []ReportLineDTO  `json:"revenue"`
	Expenses []ReportLineDTO  `json:"expenses"`
	Previous PeriodSummaryDTO `json:"previous"`
	Change   PeriodChangeDTO  `json:"change_percent"`
}

// PeriodChangeDTO variación porcentual contra el período anterior.
type PeriodChangeDTO struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
}

// BalanceSheetDTO balance general a una fecha.
type BalanceSheetDTO struct {
	AsOf                      string          `json:"as_of"`
	Assets                    []ReportLineDTO `json:"assets"`
	Liabilities               []ReportLineDTO `json:"liabilities"`
	Equity                    []ReportLineDTO `json:"equity"`
	CurrentEarnings           decimal.Decimal `json:"current_earnings"`
	TotalAssets               decimal.Decimal `json:"total_assets"`
	TotalLiabilities          decimal.Decimal `json:"total_liabilities"`
	TotalEquity               decimal.Decimal `json:"total_equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
	IsBalanced                bool            `json:"is_balanced"`
}

// TaxRateLineDTO base e impuesto de una tarifa.
type TaxRateLineDTO struct {
	Rate    decimal.Decimal `json:"rate"`
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
}

// TaxReportDTO impuesto generado (ventas) y descontable (compras).
type TaxReportDTO struct {
	From        string           `json:"from"`
	To          string           `json:"to"`
	Output      []TaxRateLineDTO `json:"output"`
	Input       []TaxRateLineDTO `json:"input"`
	TotalOutput decimal.Decimal  `json:"total_output"`
	TotalInput  decimal.Decimal  `json:"total_input"`
	NetPayable  decimal.Decimal  `json:"net_payable"`
}

// SalesGroupDTO ventas agregadas por cliente o producto.
type SalesGroupDTO struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity,omitempty"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Share    decimal.Decimal `json:"share_percent"`
}

// SalesReportDTO ventas por cliente y por producto.
type SalesReportDTO struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	ByCustomer []SalesGroupDTO `json:"by_customer"`
	ByProduct  []SalesGroupDTO `json:"by_product"`
	Total      decimal.Decimal `json:"total"`
}

// InventoryValuationLineDTO valoración de un producto en una bodega.
type InventoryValuationLineDTO struct {
	ProductID     string          `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
	Value         decimal.Decimal `json:"value"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	LowStock      bool            `json:"low_stock"`
}

// InventoryReportDTO valoración de inventario.
type InventoryReportDTO struct {
	Items         []InventoryValuationLineDTO `json:"items"`
	TotalValue    decimal.Decimal             `json:"total_value"`
	LowStockCount int                         `json:"low_stock_count"`
}

// ReportTable representación tabular de un reporte para exportar a xlsx o pdf.
type ReportTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}
