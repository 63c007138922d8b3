package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalItemRequest línea de asiento: débito o crédito (no ambos en cero).
type JournalItemRequest struct {
	AccountID   string          `json:"account_id" validate:"required,uuid"`
	Description string          `json:"description" validate:"max=500"`
	Debit       decimal.Decimal `json:"debit" validate:"gte=0"`
	Credit      decimal.Decimal `json:"credit" validate:"gte=0"`
}

// JournalRequest cuerpo de POST/PUT de asientos. En PUT items, si viene, reemplaza las líneas.
type JournalRequest struct {
	Date          *string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description   *string              `json:"description"`
	Reference     *string              `json:"reference" validate:"omitempty,max=100"`
	Status        *string              `json:"status" validate:"omitempty,oneof=draft posted canceled"`
	TransactionID *string              `json:"transaction_id" validate:"omitempty,uuid"`
	Items         []JournalItemRequest `json:"items" validate:"omitempty,dive"`
}

// JournalItemResponse línea con datos de la cuenta.
type JournalItemResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code,omitempty"`
	AccountName string          `json:"account_name,omitempty"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalResponse salida de un asiento.
type JournalResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	Date          string                `json:"date"`
	Description   string                `json:"description"`
	Reference     string                `json:"reference"`
	Status        string                `json:"status"`
	TransactionID string                `json:"transaction_id,omitempty"`
	TotalDebit    decimal.Decimal       `json:"total_debit"`
	TotalCredit   decimal.Decimal       `json:"total_credit"`
	IsBalanced    bool                  `json:"is_balanced"`
	Items         []JournalItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// JournalListResponse lista paginada (sin líneas).
type JournalListResponse struct {
	Items []JournalResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PaymentItemRequest monto aplicado a una factura.
type PaymentItemRequest struct {
	InvoiceID string          `json:"invoice_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
}

// PaymentRequest cuerpo de POST/PUT de pagos. type no se puede cambiar después de creado.
type PaymentRequest struct {
	Type      *string              `json:"type" validate:"omitempty,oneof=customer vendor"`
	Date      *string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AccountID *string              `json:"account_id" validate:"omitempty,uuid"`
	PartyID   *string              `json:"party_id" validate:"omitempty,uuid"`
	Amount    *decimal.Decimal     `json:"amount" validate:"omitempty,gt=0"`
	Method    *string              `json:"method" validate:"omitempty,max=30"`
	Reference *string              `json:"reference" validate:"omitempty,max=100"`
	Status    *string              `json:"status" validate:"omitempty,oneof=draft posted canceled"`
	Note      *string              `json:"note"`
	Items     []PaymentItemRequest `json:"items" validate:"omitempty,dive"`
}

// PaymentItemResponse aplicación a factura.
type PaymentItemResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID        string                `json:"id"`
	Number    string                `json:"number"`
	Date      string                `json:"date"`
	Type      string                `json:"type"`
	AccountID string                `json:"account_id"`
	PartyID   string                `json:"party_id"`
	PartyName string                `json:"party_name"`
	Amount    decimal.Decimal       `json:"amount"`
	Applied   decimal.Decimal       `json:"applied"`
	Method    string                `json:"method"`
	Reference string                `json:"reference"`
	Status    string                `json:"status"`
	Note      string                `json:"note"`
	Items     []PaymentItemResponse `json:"items,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// PaymentListResponse lista paginada.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// TransactionRequest cuerpo de POST/PUT de transacciones de caja y banco.
type TransactionRequest struct {
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type        *string          `json:"type" validate:"omitempty,oneof=cash_receipt cash_payment bank_receipt bank_payment journal"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Reference   *string          `json:"reference" validate:"omitempty,max=100"`
	AccountID   *string          `json:"account_id" validate:"omitempty,uuid"`
	Status      *string          `json:"status" validate:"omitempty,oneof=draft posted canceled"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
	AccountID   string          `json:"account_id,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionListResponse lista paginada.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LedgerQuery filtros comunes de asientos, pagos y transacciones.
type LedgerQuery struct {
	ListQuery
	Status  string `query:"status"`
	Type    string `query:"type"`
	PartyID string `query:"party_id"`
	From    string `query:"from"`
	To      string `query:"to"`
}
