// Package money formatea montos según el idioma y la moneda de la empresa.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter imprime montos con separadores del locale y símbolo de moneda.
type Formatter struct {
	p    *message.Printer
	unit currency.Unit
}

// NewFormatter construye un formatter. Locale o moneda inválidos caen a es / USD.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.USD
	}
	return &Formatter{p: message.NewPrinter(tag), unit: unit}
}

// Amount devuelve el monto con símbolo, ej. "$ 1.234,50".
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.p.Sprint(currency.Symbol(f.unit.Amount(d.Round(2).InexactFloat64())))
}

// Number devuelve el número con separadores y dos decimales, sin símbolo.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
