package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
)

func TestChangePercent(t *testing.T) {
	cases := []struct {
		cur, prev, want string
	}{
		{"150", "100", "50"},
		{"50", "100", "-50"},
		{"0", "0", "0"},
		{"10", "0", "100"},
		{"-50", "-100", "50"},
		{"1", "3", "-66.67"},
	}
	for _, tc := range cases {
		got := changePercent(decimal.RequireFromString(tc.cur), decimal.RequireFromString(tc.prev))
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%s vs %s = %s", tc.cur, tc.prev, got)
	}
}

func TestWeekOfMonthBuckets_UltimoTramoHastaFinDeMes(t *testing.T) {
	b := weekOfMonthBuckets(time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC))
	require.Len(t, b, 4)
	assert.Equal(t, "Week 1", b[0].label)
	assert.Equal(t, time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC), b[1].from)
	assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC), b[3].from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), b[3].to)
}

func TestRangeBuckets_MensualRecortaExtremos(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	b := rangeBuckets(from, to, IntervalMonth)
	require.Len(t, b, 3)
	assert.Equal(t, "2026-01", b[0].label)
	assert.Equal(t, from, b[0].from)
	assert.Equal(t, to, b[2].to)

	weeks := rangeBuckets(from, to, IntervalWeek)
	assert.Len(t, weeks, 8)
	assert.Equal(t, "2026-01-15", weeks[0].label)
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	p, err := parsePeriod("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), p.From)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), p.To)

	p, err = parsePeriod("2026-01-01", "2026-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), p.lastDay())
	prev := p.previous()
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), prev.From)
	assert.Equal(t, p.From, prev.To)

	_, err = parsePeriod("2026-02-01", "2026-01-01", now)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "to")

	_, err = parsePeriod("ayer", "", now)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "from")
}
