package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago: recaudo de cliente o pago a proveedor.
const (
	PaymentTypeCustomer = "customer"
	PaymentTypeVendor   = "vendor"
)

// Payment pago aplicado a facturas de una misma contraparte. AccountID es la cuenta de caja/banco.
type Payment struct {
	ID        string
	CompanyID string
	Number    string
	Date      time.Time
	Type      string
	AccountID string
	PartyID   string
	PartyName string // solo lectura
	Amount    decimal.Decimal
	Method    string
	Reference string
	Status    string
	Note      string
	JournalID string
	CreatedBy string
	Items     []PaymentItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentItem monto aplicado a una factura.
type PaymentItem struct {
	ID            string
	PaymentID     string
	InvoiceID     string
	InvoiceNumber string // solo lectura
	Amount        decimal.Decimal
}

// InvoiceKind tipo de factura a la que aplica el pago.
func (p *Payment) InvoiceKind() DocumentKind {
	if p.Type == PaymentTypeVendor {
		return KindPurchaseInvoice
	}
	return KindSalesInvoice
}

// ItemsTotal suma de montos aplicados.
func (p *Payment) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Amount)
	}
	return total
}
