package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatuses estados válidos de asientos, pagos y transacciones.
var JournalStatuses = []string{StatusDraft, StatusPosted, StatusCanceled}

// ValidPostingStatus indica si s es draft, posted o canceled.
func ValidPostingStatus(s string) bool { return slices.Contains(JournalStatuses, s) }

// Prefijos de numeración fuera de los documentos comerciales.
const (
	PrefixJournal     = "JV"
	PrefixPayment     = "PAY"
	PrefixTransaction = "TRX"
)

// Journal asiento contable manual.
type Journal struct {
	ID            string
	CompanyID     string
	Number        string
	Date          time.Time
	Description   string
	Reference     string
	Status        string
	TransactionID string
	CreatedBy     string
	Items         []JournalItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// JournalItem línea de débito o crédito contra una cuenta.
type JournalItem struct {
	ID          string
	JournalID   string
	AccountID   string
	AccountCode string // solo lectura
	AccountName string // solo lectura
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Position    int
}

// Totals devuelve la suma de débitos y créditos.
func (j *Journal) Totals() (debit, credit decimal.Decimal) {
	for _, it := range j.Items {
		debit = debit.Add(it.Debit)
		credit = credit.Add(it.Credit)
	}
	return debit, credit
}

// IsBalanced indica si débitos y créditos suman lo mismo.
func (j *Journal) IsBalanced() bool {
	d, c := j.Totals()
	return d.Equal(c)
}
