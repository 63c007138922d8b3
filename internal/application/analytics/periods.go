package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// changePercent variación de cur contra prev en %, 2 decimales. Sin base: 0 si ambos son cero, 100 si no.
func changePercent(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		if cur.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return cur.Sub(prev).Div(prev.Abs()).Mul(hundred).Round(2)
}

// share participación de part en total en %, 2 decimales.
func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// bucket tramo [from, to) del flujo de caja.
type bucket struct {
	label    string
	from, to time.Time
}

// weekOfMonthBuckets días 1-7, 8-14, 15-21 y 22 a fin de mes.
func weekOfMonthBuckets(month time.Time) []bucket {
	start := startOfMonth(month)
	next := start.AddDate(0, 1, 0)
	out := make([]bucket, 0, 4)
	for i := 0; i < 4; i++ {
		from := start.AddDate(0, 0, 7*i)
		to := from.AddDate(0, 0, 7)
		if i == 3 {
			to = next
		}
		out = append(out, bucket{label: fmt.Sprintf("Week %d", i+1), from: from, to: to})
	}
	return out
}

// rangeBuckets tramos semanales (desde from) o mensuales (calendario) que cubren [from, to).
func rangeBuckets(from, to time.Time, interval string) []bucket {
	var out []bucket
	if interval == IntervalMonth {
		for cur := startOfMonth(from); cur.Before(to); cur = cur.AddDate(0, 1, 0) {
			b := bucket{label: cur.Format("2006-01"), from: cur, to: cur.AddDate(0, 1, 0)}
			if b.from.Before(from) {
				b.from = from
			}
			if b.to.After(to) {
				b.to = to
			}
			out = append(out, b)
		}
		return out
	}
	for cur := from; cur.Before(to); cur = cur.AddDate(0, 0, 7) {
		b := bucket{from: cur, to: cur.AddDate(0, 0, 7)}
		if b.to.After(to) {
			b.to = to
		}
		b.label = b.from.Format(dto.DateLayout)
		out = append(out, b)
	}
	return out
}

// Intervalos del reporte de flujo de caja.
const (
	IntervalWeek  = "week"
	IntervalMonth = "month"
)

// period rango [From, To) de un reporte; To es el día siguiente al "to" inclusivo del request.
type period struct {
	From time.Time
	To   time.Time
}

// lastDay último día incluido en el período.
func (p period) lastDay() time.Time { return p.To.AddDate(0, 0, -1) }

// previous período anterior de igual duración.
func (p period) previous() period {
	days := int(p.To.Sub(p.From).Hours() / 24)
	return period{From: p.From.AddDate(0, 0, -days), To: p.From}
}

// parsePeriod interpreta from/to (YYYY-MM-DD, inclusivos). Por defecto: del 1 del mes en curso a hoy.
func parsePeriod(from, to string, now time.Time) (period, error) {
	verr := &domain.ValidationError{}
	p := period{From: startOfMonth(now), To: startOfDay(now).AddDate(0, 0, 1)}
	if from != "" {
		t, err := dto.ParseDate(from)
		if err != nil {
			verr.Add("from", msgDate)
		} else {
			p.From = t
		}
	}
	if to != "" {
		t, err := dto.ParseDate(to)
		if err != nil {
			verr.Add("to", msgDate)
		} else {
			p.To = t.AddDate(0, 0, 1)
		}
	}
	if verr.Empty() && !p.From.Before(p.To) {
		verr.Add("to", "Must be on or after from")
	}
	return p, verr.OrNil()
}

const msgDate = "Must be a date in YYYY-MM-DD format"
