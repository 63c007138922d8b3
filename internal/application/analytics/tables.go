package analytics

import (
	"strconv"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/pkg/money"
)

// Conversión de reportes a tablas para exportar. Los montos se formatean con f.

func ProfitLossTable(r *dto.ProfitLossDTO, f *money.Formatter) dto.ReportTable {
	t := dto.ReportTable{
		Title:   "Profit and Loss " + r.From + " / " + r.To,
		Headers: []string{"Section", "Code", "Account", "Amount"},
	}
	for _, l := range r.Revenue {
		t.Rows = append(t.Rows, []string{"Revenue", l.Code, l.Name, f.Number(l.Amount)})
	}
	t.Rows = append(t.Rows, []string{"Total revenue", "", "", f.Number(r.TotalRevenue)})
	for _, l := range r.Expenses {
		t.Rows = append(t.Rows, []string{"Expenses", l.Code, l.Name, f.Number(l.Amount)})
	}
	t.Rows = append(t.Rows,
		[]string{"Total expenses", "", "", f.Number(r.TotalExpenses)},
		[]string{"Net income", "", "", f.Number(r.NetIncome)},
		[]string{"Previous net income", "", r.Previous.From + " / " + r.Previous.To, f.Number(r.Previous.NetIncome)},
	)
	return t
}

func BalanceSheetTable(r *dto.BalanceSheetDTO, f *money.Formatter) dto.ReportTable {
	t := dto.ReportTable{
		Title:   "Balance Sheet as of " + r.AsOf,
		Headers: []string{"Section", "Code", "Account", "Amount"},
	}
	section := func(name string, lines []dto.ReportLineDTO) {
		for _, l := range lines {
			t.Rows = append(t.Rows, []string{name, l.Code, l.Name, f.Number(l.Amount)})
		}
	}
	section("Assets", r.Assets)
	t.Rows = append(t.Rows, []string{"Total assets", "", "", f.Number(r.TotalAssets)})
	section("Liabilities", r.Liabilities)
	t.Rows = append(t.Rows, []string{"Total liabilities", "", "", f.Number(r.TotalLiabilities)})
	section("Equity", r.Equity)
	t.Rows = append(t.Rows,
		[]string{"Total equity", "", "", f.Number(r.TotalEquity)},
		[]string{"Total liabilities and equity", "", "", f.Number(r.TotalLiabilitiesAndEquity)},
	)
	return t
}

func CashFlowTable(r *dto.CashFlowDTO, f *money.Formatter) dto.ReportTable {
	t := dto.ReportTable{
		Title:   "Cash Flow " + r.From + " / " + r.To,
		Headers: []string{"Period", "From", "To", "Incoming", "Outgoing", "Net"},
	}
	for _, b := range r.Buckets {
		t.Rows = append(t.Rows, []string{b.Label, b.From, b.To, f.Number(b.Incoming), f.Number(b.Outgoing), f.Number(b.Net)})
	}
	t.Rows = append(t.Rows, []string{"Total", "", "", f.Number(r.TotalIncoming), f.Number(r.TotalOutgoing), f.Number(r.Net)})
	return t
}

func TaxTable(r *dto.TaxReportDTO, f *money.Formatter) dto.ReportTable {
	t := dto.ReportTable{
		Title:   "Tax Report " + r.From + " / " + r.To,
		Headers: []string{"Type", "Rate %", "Taxable", "Tax"},
	}
	for _, l := range r.Output {
		t.Rows = append(t.Rows, []string{"Output", l.Rate.String(), f.Number(l.Taxable), f.Number(l.Tax)})
	}
	for _, l := range r.Input {
		t.Rows = append(t.Rows, []string{"Input", l.Rate.String(), f.Number(l.Taxable), f.Number(l.Tax)})
	}
	t.Rows = append(t.Rows,
		[]string{"Total output", "", "", f.Number(r.TotalOutput)},
		[]string{"Total input", "", "", f.Number(r.TotalInput)},
		[]string{"Net payable", "", "", f.Number(r.NetPayable)},
	)
	return t
}

func SalesTable(r *dto.SalesReportDTO, f *money.Formatter) dto.ReportTable {
	t := dto.ReportTable{
		Title:   "Sales " + r.From + " / " + r.To,
		Headers: []string{"Group", "Code", "Name", "Invoices", "Subtotal", "Tax", "Total", "Share %"},
	}
	group := func(name string, rows []dto.SalesGroupDTO) {
		for _, g := range rows {
			t.Rows = append(t.Rows, []string{
				name, g.Code, g.Name, strconv.Itoa(g.Count),
				f.Number(g.Subtotal), f.Number(g.Tax), f.Number(g.Total), g.Share.StringFixed(2),
			})
		}
	}
	group("Customer", r.ByCustomer)
	group("Product", r.ByProduct)
	t.Rows = append(t.Rows, []string{"Total", "", "", "", "", "", f.Number(r.Total), ""})
	return t
}

func InventoryTable(r *dto.InventoryReportDTO, f *money.Formatter) dto.ReportTable {
	t := dto.ReportTable{
		Title:   "Inventory Valuation",
		Headers: []string{"Code", "Product", "Warehouse", "Quantity", "Cost", "Value", "Low stock"},
	}
	for _, l := range r.Items {
		low := ""
		if l.LowStock {
			low = "yes"
		}
		t.Rows = append(t.Rows, []string{
			l.ProductCode, l.ProductName, l.WarehouseName, l.Quantity.String(),
			f.Number(l.Cost), f.Number(l.Value), low,
		})
	}
	t.Rows = append(t.Rows, []string{"Total", "", "", "", "", f.Number(r.TotalValue), strconv.Itoa(r.LowStockCount)})
	return t
}
