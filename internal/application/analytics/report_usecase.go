package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/money"
)

// ReportUseCase reportes financieros. Saldo de cuenta = balance inicial + movimiento de asientos posted.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	stockRepo     repository.StockRepository
	companyRepo   repository.CompanyRepository
	renderers     map[string]TableRenderer
	locale        string
	now           func() time.Time
}

// NewReportUseCase construye el caso de uso. renderers por formato (xlsx, pdf).
func NewReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	stockRepo repository.StockRepository,
	companyRepo repository.CompanyRepository,
	renderers map[string]TableRenderer,
	locale string,
) *ReportUseCase {
	return &ReportUseCase{
		analyticsRepo: analyticsRepo,
		stockRepo:     stockRepo,
		companyRepo:   companyRepo,
		renderers:     renderers,
		locale:        locale,
		now:           time.Now,
	}
}

// WithClock fija el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// ProfitLoss ingresos y gastos por cuenta con movimiento en el rango, y comparación con el período anterior.
func (uc *ReportUseCase) ProfitLoss(ctx context.Context, companyID string, q dto.ReportQuery) (*dto.ProfitLossDTO, error) {
	p, err := parsePeriod(q.From, q.To, uc.now())
	if err != nil {
		return nil, err
	}
	prev := p.previous()

	type result struct {
		rows []repository.AccountActivity
		err  error
	}
	curCh := make(chan result, 1)
	prevCh := make(chan result, 1)
	go func() {
		rows, err := uc.analyticsRepo.AccountActivity(ctx, companyID, &p.From, p.To)
		curCh <- result{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.AccountActivity(ctx, companyID, &prev.From, prev.To)
		prevCh <- result{rows, err}
	}()
	cur, before := <-curCh, <-prevCh
	if cur.err != nil {
		return nil, fmt.Errorf("profit-loss: %w", cur.err)
	}
	if before.err != nil {
		return nil, fmt.Errorf("profit-loss: período anterior: %w", before.err)
	}

	out := &dto.ProfitLossDTO{
		Revenue:  activityLines(cur.rows, entity.AccountTypeRevenue),
		Expenses: activityLines(cur.rows, entity.AccountTypeExpense),
	}
	out.PeriodSummaryDTO = summary(p, cur.rows)
	out.Previous = summary(prev, before.rows)
	out.Change = dto.PeriodChangeDTO{
		Revenue:   changePercent(out.TotalRevenue, out.Previous.TotalRevenue),
		Expenses:  changePercent(out.TotalExpenses, out.Previous.TotalExpenses),
		NetIncome: changePercent(out.NetIncome, out.Previous.NetIncome),
	}
	return out, nil
}

// activityLines movimiento neto del rango (sin saldo inicial) de las cuentas del tipo; omite cuentas sin movimiento.
func activityLines(rows []repository.AccountActivity, accountType string) []dto.ReportLineDTO {
	lines := []dto.ReportLineDTO{}
	for _, r := range rows {
		if r.Type != accountType {
			continue
		}
		amount := entity.NetActivity(r.Type, r.Debit, r.Credit)
		if amount.IsZero() {
			continue
		}
		lines = append(lines, line(r, amount))
	}
	return lines
}

func line(r repository.AccountActivity, amount decimal.Decimal) dto.ReportLineDTO {
	return dto.ReportLineDTO{AccountID: r.AccountID, Code: r.Code, Name: r.Name, Category: r.CategoryName, Amount: amount.Round(2)}
}

func summary(p period, rows []repository.AccountActivity) dto.PeriodSummaryDTO {
	rev, exp := decimal.Zero, decimal.Zero
	for _, r := range rows {
		switch r.Type {
		case entity.AccountTypeRevenue:
			rev = rev.Add(entity.NetActivity(r.Type, r.Debit, r.Credit))
		case entity.AccountTypeExpense:
			exp = exp.Add(entity.NetActivity(r.Type, r.Debit, r.Credit))
		}
	}
	return dto.PeriodSummaryDTO{
		From:          dto.FormatDate(p.From),
		To:            dto.FormatDate(p.lastDay()),
		TotalRevenue:  rev.Round(2),
		TotalExpenses: exp.Round(2),
		NetIncome:     rev.Sub(exp).Round(2),
	}
}

// BalanceSheet saldos de activo, pasivo y patrimonio a la fecha, con la utilidad del ejercicio como línea de patrimonio.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, companyID string, q dto.ReportQuery) (*dto.BalanceSheetDTO, error) {
	asOf := startOfDay(uc.now())
	if q.AsOf != "" {
		t, err := dto.ParseDate(q.AsOf)
		if err != nil {
			return nil, domain.NewValidationError("as_of", msgDate)
		}
		asOf = t
	}
	rows, err := uc.analyticsRepo.AccountActivity(ctx, companyID, nil, asOf.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("balance-sheet: %w", err)
	}

	out := &dto.BalanceSheetDTO{
		AsOf:        dto.FormatDate(asOf),
		Assets:      []dto.ReportLineDTO{},
		Liabilities: []dto.ReportLineDTO{},
		Equity:      []dto.ReportLineDTO{},
	}
	earnings := decimal.Zero
	for _, r := range rows {
		bal := balance(r)
		switch r.Type {
		case entity.AccountTypeAsset:
			out.Assets = append(out.Assets, line(r, bal))
			out.TotalAssets = out.TotalAssets.Add(bal)
		case entity.AccountTypeLiability:
			out.Liabilities = append(out.Liabilities, line(r, bal))
			out.TotalLiabilities = out.TotalLiabilities.Add(bal)
		case entity.AccountTypeEquity:
			out.Equity = append(out.Equity, line(r, bal))
			out.TotalEquity = out.TotalEquity.Add(bal)
		case entity.AccountTypeRevenue:
			earnings = earnings.Add(bal)
		case entity.AccountTypeExpense:
			earnings = earnings.Sub(bal)
		}
	}
	out.CurrentEarnings = earnings.Round(2)
	out.Equity = append(out.Equity, dto.ReportLineDTO{Name: "Current earnings", Category: "computed", Amount: out.CurrentEarnings})
	out.TotalAssets = out.TotalAssets.Round(2)
	out.TotalLiabilities = out.TotalLiabilities.Round(2)
	out.TotalEquity = out.TotalEquity.Add(earnings).Round(2)
	out.TotalLiabilitiesAndEquity = out.TotalLiabilities.Add(out.TotalEquity)
	out.IsBalanced = out.TotalAssets.Equal(out.TotalLiabilitiesAndEquity)
	return out, nil
}

// CashFlow entradas y salidas por semana o por mes en el rango.
func (uc *ReportUseCase) CashFlow(ctx context.Context, companyID string, q dto.ReportQuery) (*dto.CashFlowDTO, error) {
	p, err := parsePeriod(q.From, q.To, uc.now())
	if err != nil {
		return nil, err
	}
	interval := strings.ToLower(q.Interval)
	if interval == "" {
		interval = IntervalWeek
	}
	if interval != IntervalWeek && interval != IntervalMonth {
		return nil, domain.NewValidationError("interval", "Must be one of: week month")
	}
	return cashFlow(ctx, uc.analyticsRepo, companyID, rangeBuckets(p.From, p.To, interval), interval)
}

// Tax impuesto generado (ventas) y descontable (compras) por tarifa.
func (uc *ReportUseCase) Tax(ctx context.Context, companyID string, q dto.ReportQuery) (*dto.TaxReportDTO, error) {
	p, err := parsePeriod(q.From, q.To, uc.now())
	if err != nil {
		return nil, err
	}
	output, err := uc.analyticsRepo.TaxByRate(ctx, companyID, true, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("tax: ventas: %w", err)
	}
	input, err := uc.analyticsRepo.TaxByRate(ctx, companyID, false, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("tax: compras: %w", err)
	}
	out := &dto.TaxReportDTO{From: dto.FormatDate(p.From), To: dto.FormatDate(p.lastDay())}
	out.Output, out.TotalOutput = taxLines(output)
	out.Input, out.TotalInput = taxLines(input)
	out.NetPayable = out.TotalOutput.Sub(out.TotalInput)
	return out, nil
}

func taxLines(rows []repository.TaxRateRow) ([]dto.TaxRateLineDTO, decimal.Decimal) {
	lines := make([]dto.TaxRateLineDTO, 0, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		lines = append(lines, dto.TaxRateLineDTO{Rate: r.Rate, Taxable: r.Taxable.Round(2), Tax: r.Tax.Round(2)})
		total = total.Add(r.Tax)
	}
	return lines, total.Round(2)
}

// Sales ventas por cliente y por producto con participación sobre el total.
func (uc *ReportUseCase) Sales(ctx context.Context, companyID string, q dto.ReportQuery) (*dto.SalesReportDTO, error) {
	p, err := parsePeriod(q.From, q.To, uc.now())
	if err != nil {
		return nil, err
	}
	byCustomer, err := uc.analyticsRepo.SalesByCustomer(ctx, companyID, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("sales: por cliente: %w", err)
	}
	byProduct, err := uc.analyticsRepo.SalesByProduct(ctx, companyID, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("sales: por producto: %w", err)
	}
	total := decimal.Zero
	for _, r := range byCustomer {
		total = total.Add(r.Total)
	}
	return &dto.SalesReportDTO{
		From:       dto.FormatDate(p.From),
		To:         dto.FormatDate(p.lastDay()),
		ByCustomer: salesGroups(byCustomer, total),
		ByProduct:  salesGroups(byProduct, decimal.Zero),
		Total:      total.Round(2),
	}, nil
}

// salesGroups total cero = participación sobre la suma del propio grupo.
func salesGroups(rows []repository.SalesGroupRow, total decimal.Decimal) []dto.SalesGroupDTO {
	if total.IsZero() {
		for _, r := range rows {
			total = total.Add(r.Total)
		}
	}
	out := make([]dto.SalesGroupDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesGroupDTO{
			ID:       r.ID,
			Code:     r.Code,
			Name:     r.Name,
			Quantity: r.Quantity,
			Subtotal: r.Subtotal.Round(2),
			Tax:      r.Tax.Round(2),
			Total:    r.Total.Round(2),
			Count:    r.Count,
			Share:    share(r.Total, total),
		})
	}
	return out
}

// Inventory valoración (cantidad x costo promedio) por producto y bodega.
func (uc *ReportUseCase) Inventory(ctx context.Context, companyID string) (*dto.InventoryReportDTO, error) {
	levels, err := uc.stockRepo.ListLevels(ctx, companyID, "", "")
	if err != nil {
		return nil, fmt.Errorf("inventory report: %w", err)
	}
	out := &dto.InventoryReportDTO{Items: make([]dto.InventoryValuationLineDTO, 0, len(levels))}
	for _, l := range levels {
		value := l.Quantity.Mul(l.Cost).Round(2)
		low := l.Quantity.LessThanOrEqual(l.MinimumStock)
		if low {
			out.LowStockCount++
		}
		out.TotalValue = out.TotalValue.Add(value)
		out.Items = append(out.Items, dto.InventoryValuationLineDTO{
			ProductID:     l.ProductID,
			ProductCode:   l.ProductCode,
			ProductName:   l.ProductName,
			WarehouseID:   l.WarehouseID,
			WarehouseName: l.WarehouseName,
			Quantity:      l.Quantity,
			Cost:          l.Cost,
			Value:         value,
			MinimumStock:  l.MinimumStock,
			LowStock:      low,
		})
	}
	return out, nil
}

// Export renderiza la tabla construida por build en el formato pedido, con montos en la moneda de la empresa.
// Devuelve bytes y content type; formato desconocido -> ValidationError en "format".
func (uc *ReportUseCase) Export(ctx context.Context, companyID, format string, build func(*money.Formatter) dto.ReportTable) ([]byte, string, error) {
	r, ok := uc.renderers[strings.ToLower(format)]
	if !ok {
		return nil, "", domain.NewValidationError("format", "Must be one of: json xlsx pdf")
	}
	currency := ""
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	if company != nil {
		currency = company.Currency
	}
	table := build(money.NewFormatter(uc.locale, currency))
	out, err := r.Render(ctx, table)
	if err != nil {
		return nil, "", fmt.Errorf("export %s: %w", format, err)
	}
	return out, r.ContentType(), nil
}
