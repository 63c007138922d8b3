package analytics_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/cache"
)

const company = "aaaaaaaa-0000-0000-0000-000000000001"

var clock = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeAnalytics responde según el rango consultado y cuenta las llamadas.
type fakeAnalytics struct {
	calls    atomic.Int32
	failWith error
	activity []repository.AccountActivity
	prevAct  []repository.AccountActivity
	days     []repository.DailyCash
	months   []repository.MonthTotals
}

func (f *fakeAnalytics) InvoicedTotals(_ context.Context, _ string, from, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	f.calls.Add(1)
	if f.failWith != nil {
		return decimal.Zero, decimal.Zero, f.failWith
	}
	if from.Month() == time.March {
		return d("1500"), d("400"), nil
	}
	return d("1000"), d("0"), nil
}

func (f *fakeAnalytics) Outstanding(_ context.Context, _ string, sales bool, asOf time.Time) (decimal.Decimal, error) {
	if sales && asOf.Month() == time.March {
		return d("300"), nil
	}
	return d("200"), nil
}

func (f *fakeAnalytics) MonthlyTotals(context.Context, string, time.Time, time.Time) ([]repository.MonthTotals, error) {
	return f.months, nil
}

func (f *fakeAnalytics) DailyCash(context.Context, string, time.Time, time.Time) ([]repository.DailyCash, error) {
	return f.days, nil
}

func (f *fakeAnalytics) RecentActivity(context.Context, string, int) ([]repository.ActivityRow, error) {
	return nil, nil
}

func (f *fakeAnalytics) AccountActivity(_ context.Context, _ string, from *time.Time, _ time.Time) ([]repository.AccountActivity, error) {
	if from != nil && from.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		return f.prevAct, nil
	}
	return f.activity, nil
}

func (f *fakeAnalytics) TaxByRate(context.Context, string, bool, time.Time, time.Time) ([]repository.TaxRateRow, error) {
	return nil, nil
}

func (f *fakeAnalytics) SalesByCustomer(context.Context, string, time.Time, time.Time) ([]repository.SalesGroupRow, error) {
	return nil, nil
}

func (f *fakeAnalytics) SalesByProduct(context.Context, string, time.Time, time.Time) ([]repository.SalesGroupRow, error) {
	return nil, nil
}

func TestDashboard_MetricsComparaConMesAnterior(t *testing.T) {
	repo := &fakeAnalytics{}
	uc := analytics.NewDashboardUseCase(repo, nil, 0).WithClock(clock)

	m, err := uc.Metrics(context.Background(), company)
	require.NoError(t, err)

	assert.Equal(t, "2026-03", m.Period)
	assert.True(t, m.TotalRevenue.Value.Equal(d("1500")))
	assert.True(t, m.TotalRevenue.ChangePercent.Equal(d("50")))
	assert.True(t, m.TotalExpenses.ChangePercent.Equal(d("100")))
	assert.True(t, m.AccountsReceivable.ChangePercent.Equal(d("50")))
	assert.True(t, m.AccountsPayable.ChangePercent.IsZero())
}

func TestDashboard_MetricsFallaSiUnaConsultaFalla(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalytics{failWith: errors.New("db caída")}, nil, 0).WithClock(clock)
	_, err := uc.Metrics(context.Background(), company)
	assert.Error(t, err)
}

func TestDashboard_MetricsUsaCache(t *testing.T) {
	repo := &fakeAnalytics{}
	uc := analytics.NewDashboardUseCase(repo, cache.NewMemoryStore(), time.Minute).WithClock(clock)

	first, err := uc.Metrics(context.Background(), company)
	require.NoError(t, err)
	second, err := uc.Metrics(context.Background(), company)
	require.NoError(t, err)

	assert.Equal(t, int32(2), repo.calls.Load())
	assert.True(t, first.TotalRevenue.Value.Equal(second.TotalRevenue.Value))
}

func TestDashboard_ChartDataRellenaMesesVacios(t *testing.T) {
	repo := &fakeAnalytics{months: []repository.MonthTotals{
		{Month: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: d("10"), Expenses: d("4")},
	}}
	uc := analytics.NewDashboardUseCase(repo, nil, 0).WithClock(clock)

	out, err := uc.ChartData(context.Background(), company)
	require.NoError(t, err)
	require.Len(t, out.Months, 12)
	assert.Equal(t, "2025-04", out.Months[0])
	assert.Equal(t, "2026-03", out.Months[11])
	assert.True(t, out.Revenue[9].Equal(d("10")))
	assert.True(t, out.Expenses[10].IsZero())
}

func TestDashboard_CashFlowPorSemana(t *testing.T) {
	repo := &fakeAnalytics{days: []repository.DailyCash{
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Incoming: d("100"), Outgoing: d("30")},
		{Day: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Incoming: d("50")},
		{Day: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), Outgoing: d("20")},
	}}
	uc := analytics.NewDashboardUseCase(repo, nil, 0).WithClock(clock)

	out, err := uc.CashFlow(context.Background(), company)
	require.NoError(t, err)
	require.Len(t, out.Buckets, 4)
	assert.True(t, out.Buckets[0].Net.Equal(d("70")))
	assert.True(t, out.Buckets[1].Incoming.Equal(d("50")))
	assert.True(t, out.Buckets[3].Outgoing.Equal(d("20")))
	assert.Equal(t, "2026-03-31", out.Buckets[3].To)
	assert.True(t, out.Net.Equal(d("100")))
}

func TestDashboard_TopAccountsOrdenaYCalculaParticipacion(t *testing.T) {
	repo := &fakeAnalytics{activity: []repository.AccountActivity{
		{AccountID: "r1", Type: entity.AccountTypeRevenue, Credit: d("300")},
		{AccountID: "r2", Type: entity.AccountTypeRevenue, Opening: d("100"), Credit: d("600")},
		{AccountID: "e1", Type: entity.AccountTypeExpense, Debit: d("50")},
		{AccountID: "a1", Type: entity.AccountTypeAsset, Debit: d("999")},
	}}
	uc := analytics.NewDashboardUseCase(repo, nil, 0).WithClock(clock)

	out, err := uc.TopAccounts(context.Background(), company)
	require.NoError(t, err)
	require.Len(t, out.Revenue, 2)
	assert.Equal(t, "r2", out.Revenue[0].AccountID)
	assert.True(t, out.Revenue[0].Balance.Equal(d("700")))
	assert.True(t, out.Revenue[0].Percentage.Equal(d("70")))
	require.Len(t, out.Expenses, 1)
	assert.True(t, out.Expenses[0].Percentage.Equal(d("100")))
}

func TestReport_ProfitLossConPeriodoAnterior(t *testing.T) {
	repo := &fakeAnalytics{
		activity: []repository.AccountActivity{
			{AccountID: "r1", Type: entity.AccountTypeRevenue, Credit: d("1000")},
			{AccountID: "e1", Type: entity.AccountTypeExpense, Debit: d("400")},
			{AccountID: "e2", Type: entity.AccountTypeExpense},
		},
		prevAct: []repository.AccountActivity{
			{AccountID: "r1", Type: entity.AccountTypeRevenue, Credit: d("500")},
		},
	}
	uc := analytics.NewReportUseCase(repo, nil, nil, nil, "es-CO").WithClock(clock)

	out, err := uc.ProfitLoss(context.Background(), company, dto.ReportQuery{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)
	assert.Len(t, out.Expenses, 1)
	assert.True(t, out.NetIncome.Equal(d("600")))
	assert.Equal(t, "2026-01-29", out.Previous.From)
	assert.True(t, out.Previous.TotalRevenue.Equal(d("500")))
	assert.True(t, out.Change.Revenue.Equal(d("100")))
}

func TestReport_BalanceSheetCuadraConUtilidadDelEjercicio(t *testing.T) {
	repo := &fakeAnalytics{activity: []repository.AccountActivity{
		{AccountID: "a1", Type: entity.AccountTypeAsset, Name: "Caja", Debit: d("1000")},
		{AccountID: "l1", Type: entity.AccountTypeLiability, Credit: d("300")},
		{AccountID: "q1", Type: entity.AccountTypeEquity, Credit: d("500")},
		{AccountID: "r1", Type: entity.AccountTypeRevenue, Credit: d("600")},
		{AccountID: "e1", Type: entity.AccountTypeExpense, Debit: d("400")},
	}}
	uc := analytics.NewReportUseCase(repo, nil, nil, nil, "es-CO").WithClock(clock)

	out, err := uc.BalanceSheet(context.Background(), company, dto.ReportQuery{AsOf: "2026-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-31", out.AsOf)
	assert.True(t, out.CurrentEarnings.Equal(d("200")))
	assert.True(t, out.TotalEquity.Equal(d("700")))
	assert.True(t, out.TotalLiabilitiesAndEquity.Equal(d("1000")))
	assert.True(t, out.IsBalanced)
	require.Len(t, out.Equity, 2)
	assert.Equal(t, "computed", out.Equity[1].Category)

	// un saldo inicial sin contrapartida descuadra el balance
	repo.activity = append(repo.activity, repository.AccountActivity{AccountID: "a2", Type: entity.AccountTypeAsset, Opening: d("50")})
	out, err = uc.BalanceSheet(context.Background(), company, dto.ReportQuery{AsOf: "2026-03-31"})
	require.NoError(t, err)
	assert.True(t, out.TotalAssets.Equal(d("1050")))
	assert.False(t, out.IsBalanced)

	_, err = uc.BalanceSheet(context.Background(), company, dto.ReportQuery{AsOf: "31/03/2026"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "as_of")
}
