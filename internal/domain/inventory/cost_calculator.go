package inventory

import "github.com/shopspring/decimal"

// CostCalculator costo promedio ponderado tras una entrada:
// ((stock * costo) + (cantEntrada * costoEntrada)) / (stock + cantEntrada), redondeado a 4 decimales.
// Devuelve cero si la cantidad resultante no es positiva.
func CostCalculator(stock, cost, inQty, inCost decimal.Decimal) decimal.Decimal {
	total := stock.Add(inQty)
	if !total.IsPositive() {
		return decimal.Zero
	}
	value := stock.Mul(cost).Add(inQty.Mul(inCost))
	return value.DivRound(total, 4)
}
