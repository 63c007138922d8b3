package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de caja y banco.
const (
	TransactionCashReceipt = "cash_receipt"
	TransactionCashPayment = "cash_payment"
	TransactionBankReceipt = "bank_receipt"
	TransactionBankPayment = "bank_payment"
	TransactionJournal     = "journal"
)

// TransactionTypes tipos aceptados.
var TransactionTypes = []string{
	TransactionCashReceipt, TransactionCashPayment, TransactionBankReceipt, TransactionBankPayment, TransactionJournal,
}

// ValidTransactionType indica si t es un tipo aceptado.
func ValidTransactionType(t string) bool { return slices.Contains(TransactionTypes, t) }

// Transaction movimiento de caja o banco.
type Transaction struct {
	ID          string
	CompanyID   string
	Number      string
	Date        time.Time
	Type        string
	Description string
	Amount      decimal.Decimal
	Reference   string
	AccountID   string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsIncoming indica si la transacción es una entrada de dinero.
func (t *Transaction) IsIncoming() bool {
	return t.Type == TransactionCashReceipt || t.Type == TransactionBankReceipt
}
