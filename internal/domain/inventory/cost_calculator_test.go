package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contable-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 u a 100 + 30 u a 200 = (1000 + 6000) / 40 = 175
	got := inventory.CostCalculator(decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(30), decimal.NewFromInt(200))
	assert.True(t, decimal.NewFromInt(175).Equal(got), got.String())
}

func TestCostCalculator_SinStockPrevio(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(12))
	assert.True(t, decimal.NewFromInt(12).Equal(got))
}

func TestCostCalculator_CantidadTotalCero(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.NewFromInt(9), decimal.Zero, decimal.NewFromInt(3))
	assert.True(t, got.IsZero())
}
