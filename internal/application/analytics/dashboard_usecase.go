// Package analytics contiene los casos de uso del dashboard y de los reportes financieros.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

const (
	chartMonths      = 12
	recentLimit      = 10
	topAccountsLimit = 5
)

// DashboardUseCase métricas del dashboard. Fuente: AnalyticsRepository (consultas read-only).
// Las respuestas se cachean por empresa durante ttl si hay cache configurado.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         ports.Cache
	ttl           time.Duration
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache ports.Cache, ttl time.Duration) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, ttl: ttl, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// cached devuelve el valor en cache o lo calcula y lo guarda. Los errores de cache no interrumpen la consulta.
func cached[T any](ctx context.Context, uc *DashboardUseCase, key string, compute func() (*T, error)) (*T, error) {
	if uc.cache == nil || uc.ttl <= 0 {
		return compute()
	}
	if raw, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
		var v T
		if json.Unmarshal(raw, &v) == nil {
			return &v, nil
		}
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(v); err == nil {
		_ = uc.cache.Set(ctx, key, raw, uc.ttl)
	}
	return v, nil
}

func cacheKey(companyID, name string) string {
	return "dashboard:" + companyID + ":" + name
}

// Metrics ingresos y gastos del mes en curso, CxC y CxP pendientes, cada uno contra el mes anterior.
//
// Seis consultas en paralelo; si alguna falla, falla la respuesta.
func (uc *DashboardUseCase) Metrics(ctx context.Context, companyID string) (*dto.DashboardMetricsDTO, error) {
	return cached(ctx, uc, cacheKey(companyID, "metrics"), func() (*dto.DashboardMetricsDTO, error) {
		now := uc.now().UTC()
		monthStart := startOfMonth(now)
		nextMonth := monthStart.AddDate(0, 1, 0)
		prevMonth := monthStart.AddDate(0, -1, 0)
		today := startOfDay(now)
		prevMonthEnd := monthStart.AddDate(0, 0, -1)

		type totalsResult struct {
			revenue  decimal.Decimal
			expenses decimal.Decimal
			err      error
		}
		type amountResult struct {
			value decimal.Decimal
			err   error
		}

		curCh := make(chan totalsResult, 1)
		prevCh := make(chan totalsResult, 1)
		arCh := make(chan amountResult, 1)
		arPrevCh := make(chan amountResult, 1)
		apCh := make(chan amountResult, 1)
		apPrevCh := make(chan amountResult, 1)

		go func() {
			rev, exp, err := uc.analyticsRepo.InvoicedTotals(ctx, companyID, monthStart, nextMonth)
			curCh <- totalsResult{rev, exp, err}
		}()
		go func() {
			rev, exp, err := uc.analyticsRepo.InvoicedTotals(ctx, companyID, prevMonth, monthStart)
			prevCh <- totalsResult{rev, exp, err}
		}()
		outstanding := func(ch chan<- amountResult, sales bool, asOf time.Time) {
			v, err := uc.analyticsRepo.Outstanding(ctx, companyID, sales, asOf)
			ch <- amountResult{v, err}
		}
		go outstanding(arCh, true, today)
		go outstanding(arPrevCh, true, prevMonthEnd)
		go outstanding(apCh, false, today)
		go outstanding(apPrevCh, false, prevMonthEnd)

		cur, prev := <-curCh, <-prevCh
		ar, arPrev, ap, apPrev := <-arCh, <-arPrevCh, <-apCh, <-apPrevCh

		if cur.err != nil {
			return nil, fmt.Errorf("dashboard: totales del mes: %w", cur.err)
		}
		if prev.err != nil {
			return nil, fmt.Errorf("dashboard: totales del mes anterior: %w", prev.err)
		}
		for _, r := range []amountResult{ar, arPrev, ap, apPrev} {
			if r.err != nil {
				return nil, fmt.Errorf("dashboard: saldos pendientes: %w", r.err)
			}
		}

		return &dto.DashboardMetricsDTO{
			Period:             monthStart.Format("2006-01"),
			TotalRevenue:       metric(cur.revenue, prev.revenue),
			TotalExpenses:      metric(cur.expenses, prev.expenses),
			AccountsReceivable: metric(ar.value, arPrev.value),
			AccountsPayable:    metric(ap.value, apPrev.value),
		}, nil
	})
}

func metric(cur, prev decimal.Decimal) dto.MetricDTO {
	return dto.MetricDTO{
		Value:         cur.Round(2),
		PreviousValue: prev.Round(2),
		ChangePercent: changePercent(cur, prev),
	}
}

// ChartData ingresos vs gastos de los últimos 12 meses (incluye el actual); meses sin datos en cero.
func (uc *DashboardUseCase) ChartData(ctx context.Context, companyID string) (*dto.ChartDataDTO, error) {
	return cached(ctx, uc, cacheKey(companyID, "chart-data"), func() (*dto.ChartDataDTO, error) {
		end := startOfMonth(uc.now()).AddDate(0, 1, 0)
		start := end.AddDate(0, -chartMonths, 0)
		rows, err := uc.analyticsRepo.MonthlyTotals(ctx, companyID, start, end)
		if err != nil {
			return nil, fmt.Errorf("dashboard: totales mensuales: %w", err)
		}
		byMonth := make(map[string]repository.MonthTotals, len(rows))
		for _, r := range rows {
			byMonth[r.Month.Format("2006-01")] = r
		}
		out := &dto.ChartDataDTO{
			Months:   make([]string, 0, chartMonths),
			Revenue:  make([]decimal.Decimal, 0, chartMonths),
			Expenses: make([]decimal.Decimal, 0, chartMonths),
		}
		for m := start; m.Before(end); m = m.AddDate(0, 1, 0) {
			label := m.Format("2006-01")
			r := byMonth[label]
			out.Months = append(out.Months, label)
			out.Revenue = append(out.Revenue, r.Revenue.Round(2))
			out.Expenses = append(out.Expenses, r.Expenses.Round(2))
		}
		return out, nil
	})
}

// CashFlow mes en curso en 4 tramos semanales.
func (uc *DashboardUseCase) CashFlow(ctx context.Context, companyID string) (*dto.CashFlowDTO, error) {
	return cached(ctx, uc, cacheKey(companyID, "cash-flow"), func() (*dto.CashFlowDTO, error) {
		buckets := weekOfMonthBuckets(uc.now())
		return cashFlow(ctx, uc.analyticsRepo, companyID, buckets, IntervalWeek)
	})
}

// cashFlow reparte el flujo diario en los tramos dados.
func cashFlow(ctx context.Context, repo repository.AnalyticsRepository, companyID string, buckets []bucket, interval string) (*dto.CashFlowDTO, error) {
	if len(buckets) == 0 {
		return &dto.CashFlowDTO{Interval: interval, Buckets: []dto.CashFlowBucketDTO{}}, nil
	}
	from, to := buckets[0].from, buckets[len(buckets)-1].to
	days, err := repo.DailyCash(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("cash flow: %w", err)
	}
	out := &dto.CashFlowDTO{
		From:     dto.FormatDate(from),
		To:       dto.FormatDate(to.AddDate(0, 0, -1)),
		Interval: interval,
		Buckets:  make([]dto.CashFlowBucketDTO, 0, len(buckets)),
	}
	for _, b := range buckets {
		in, outgoing := decimal.Zero, decimal.Zero
		for _, d := range days {
			day := startOfDay(d.Day)
			if !day.Before(b.from) && day.Before(b.to) {
				in = in.Add(d.Incoming)
				outgoing = outgoing.Add(d.Outgoing)
			}
		}
		out.Buckets = append(out.Buckets, dto.CashFlowBucketDTO{
			Label:    b.label,
			From:     dto.FormatDate(b.from),
			To:       dto.FormatDate(b.to.AddDate(0, 0, -1)),
			Incoming: in.Round(2),
			Outgoing: outgoing.Round(2),
			Net:      in.Sub(outgoing).Round(2),
		})
		out.TotalIncoming = out.TotalIncoming.Add(in)
		out.TotalOutgoing = out.TotalOutgoing.Add(outgoing)
	}
	out.TotalIncoming = out.TotalIncoming.Round(2)
	out.TotalOutgoing = out.TotalOutgoing.Round(2)
	out.Net = out.TotalIncoming.Sub(out.TotalOutgoing)
	return out, nil
}

// RecentTransactions últimos 10 movimientos entre facturas, pagos y transacciones.
func (uc *DashboardUseCase) RecentTransactions(ctx context.Context, companyID string) ([]dto.RecentTransactionDTO, error) {
	list, err := cached(ctx, uc, cacheKey(companyID, "recent-transactions"), func() (*[]dto.RecentTransactionDTO, error) {
		rows, err := uc.analyticsRepo.RecentActivity(ctx, companyID, recentLimit)
		if err != nil {
			return nil, fmt.Errorf("dashboard: actividad reciente: %w", err)
		}
		out := make([]dto.RecentTransactionDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.RecentTransactionDTO{
				ID:          r.ID,
				Date:        dto.FormatDate(r.Date),
				Description: r.Description,
				Type:        r.Type,
				Reference:   r.Reference,
				Amount:      r.Amount.Round(2),
				Status:      r.Status,
				Entity:      r.Entity,
			})
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// TopAccounts 5 cuentas de ingreso y 5 de gasto con mayor saldo actual y su % dentro del tipo.
func (uc *DashboardUseCase) TopAccounts(ctx context.Context, companyID string) (*dto.TopAccountsDTO, error) {
	return cached(ctx, uc, cacheKey(companyID, "top-accounts"), func() (*dto.TopAccountsDTO, error) {
		rows, err := uc.analyticsRepo.AccountActivity(ctx, companyID, nil, startOfDay(uc.now()).AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("dashboard: saldos de cuentas: %w", err)
		}
		return &dto.TopAccountsDTO{
			Revenue:  topAccounts(rows, entity.AccountTypeRevenue),
			Expenses: topAccounts(rows, entity.AccountTypeExpense),
		}, nil
	})
}

func topAccounts(rows []repository.AccountActivity, accountType string) []dto.TopAccountDTO {
	total := decimal.Zero
	list := make([]dto.TopAccountDTO, 0)
	for _, r := range rows {
		if r.Type != accountType {
			continue
		}
		bal := balance(r)
		total = total.Add(bal)
		list = append(list, dto.TopAccountDTO{AccountID: r.AccountID, Code: r.Code, Name: r.Name, Balance: bal.Round(2)})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Balance.GreaterThan(list[j].Balance) })
	if len(list) > topAccountsLimit {
		list = list[:topAccountsLimit]
	}
	for i := range list {
		list[i].Percentage = share(list[i].Balance, total)
	}
	return list
}

// balance saldo actual = inicial + movimiento neto según la naturaleza del tipo.
func balance(r repository.AccountActivity) decimal.Decimal {
	return r.Opening.Add(entity.NetActivity(r.Type, r.Debit, r.Credit))
}
