package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contable-api/pkg/money"
)

func TestAmount_LocaleIngles(t *testing.T) {
	f := money.NewFormatter("en-US", "USD")
	out := f.Amount(decimal.RequireFromString("1234567.5"))
	assert.Contains(t, out, "1,234,567.50")
	assert.Contains(t, out, "$")
}

func TestAmount_LocaleEspanol(t *testing.T) {
	f := money.NewFormatter("es-CO", "COP")
	out := f.Number(decimal.RequireFromString("1234567.5"))
	assert.Contains(t, out, "1.234.567,50")
}

func TestNewFormatter_ValoresInvalidos(t *testing.T) {
	f := money.NewFormatter("???", "XX")
	assert.NotEmpty(t, f.Amount(decimal.NewFromInt(10)))
}
