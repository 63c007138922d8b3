package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta contable.
const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeRevenue   = "revenue"
	AccountTypeExpense   = "expense"
)

// AccountTypes en el orden en que se presentan en reportes.
var AccountTypes = []string{
	AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense,
}

// ValidAccountType indica si t es uno de los cinco tipos contables.
func ValidAccountType(t string) bool {
	for _, v := range AccountTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DebitNormal indica si el saldo natural del tipo es deudor (activo y gasto).
func DebitNormal(accountType string) bool {
	return accountType == AccountTypeAsset || accountType == AccountTypeExpense
}

// NetActivity devuelve el movimiento neto según la naturaleza del tipo de cuenta.
func NetActivity(accountType string, debit, credit decimal.Decimal) decimal.Decimal {
	if DebitNormal(accountType) {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// AccountCategory agrupa cuentas bajo un tipo contable.
type AccountCategory struct {
	ID          string
	CompanyID   string
	Code        string
	Name        string
	Type        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Account cuenta del plan de cuentas. Balance es el saldo inicial mantenido manualmente.
type Account struct {
	ID           string
	CompanyID    string
	CategoryID   string
	Code         string
	Name         string
	Description  string
	IsActive     bool
	Balance      decimal.Decimal
	CategoryName string // solo lectura (join)
	Type         string // solo lectura, tipo de la categoría
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
