package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind identifica el tipo de documento comercial (cotización, pedido, factura, orden de compra, factura de compra).
type DocumentKind string

const (
	KindSalesQuotation  DocumentKind = "sales_quotation"
	KindSalesOrder      DocumentKind = "sales_order"
	KindSalesInvoice    DocumentKind = "sales_invoice"
	KindPurchaseOrder   DocumentKind = "purchase_order"
	KindPurchaseInvoice DocumentKind = "purchase_invoice"
)

// Estados por tipo de documento. No hay reglas de transición: cualquier valor del conjunto es aceptado.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusExpired   = "expired"
	StatusOpen      = "open"
	StatusFulfilled = "fulfilled"
	StatusReceived  = "received"
	StatusUnpaid    = "unpaid"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCanceled  = "canceled"
	StatusPosted    = "posted"
)

var documentStatuses = map[DocumentKind][]string{
	KindSalesQuotation:  {StatusDraft, StatusSent, StatusApproved, StatusRejected, StatusExpired},
	KindSalesOrder:      {StatusDraft, StatusOpen, StatusFulfilled, StatusCanceled},
	KindSalesInvoice:    {StatusUnpaid, StatusPaid, StatusOverdue, StatusCanceled},
	KindPurchaseOrder:   {StatusDraft, StatusSent, StatusReceived, StatusCanceled},
	KindPurchaseInvoice: {StatusUnpaid, StatusPaid, StatusOverdue, StatusCanceled},
}

var documentPrefixes = map[DocumentKind]string{
	KindSalesQuotation:  "QUO",
	KindSalesOrder:      "SO",
	KindSalesInvoice:    "INV",
	KindPurchaseOrder:   "PO",
	KindPurchaseInvoice: "BILL",
}

// Statuses devuelve el conjunto de estados válidos; el primero es el estado por defecto.
func (k DocumentKind) Statuses() []string { return documentStatuses[k] }

// DefaultStatus estado asignado cuando el request no trae uno.
func (k DocumentKind) DefaultStatus() string { return documentStatuses[k][0] }

// ValidStatus indica si s pertenece al conjunto de estados del tipo.
func (k DocumentKind) ValidStatus(s string) bool { return slices.Contains(documentStatuses[k], s) }

// Prefix prefijo de numeración automática.
func (k DocumentKind) Prefix() string { return documentPrefixes[k] }

// IsSales indica si la contraparte es un cliente (si no, un proveedor).
func (k DocumentKind) IsSales() bool {
	return k == KindSalesQuotation || k == KindSalesOrder || k == KindSalesInvoice
}

// IsInvoice indica si el documento admite pagos.
func (k DocumentKind) IsInvoice() bool {
	return k == KindSalesInvoice || k == KindPurchaseInvoice
}

// SourceKind tipo del documento de origen que puede referenciar (pedido -> cotización, factura -> pedido).
func (k DocumentKind) SourceKind() (DocumentKind, bool) {
	switch k {
	case KindSalesOrder:
		return KindSalesQuotation, true
	case KindSalesInvoice:
		return KindSalesOrder, true
	case KindPurchaseInvoice:
		return KindPurchaseOrder, true
	}
	return "", false
}

// DocumentKinds todos los tipos soportados.
var DocumentKinds = []DocumentKind{
	KindSalesQuotation, KindSalesOrder, KindSalesInvoice, KindPurchaseOrder, KindPurchaseInvoice,
}

// TradeDocument cabecera de un documento comercial con sus líneas.
// DueDate según el tipo: valid_until, expected_delivery_date o due_date.
type TradeDocument struct {
	ID         string
	CompanyID  string
	Kind       DocumentKind
	Number     string
	PartyID    string
	PartyName  string // solo lectura
	SourceID   string // vacío = sin documento de origen
	Date       time.Time
	DueDate    *time.Time
	Status     string
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal // solo facturas, derivado de pagos
	Note       string
	CreatedBy  string
	Items      []DocumentItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentItem línea de un documento comercial. TaxRate en porcentaje.
type DocumentItem struct {
	ID          string
	DocumentID  string
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
	Position    int
}

var hundred = decimal.NewFromInt(100)

// Compute calcula subtotal, impuesto y total de la línea (redondeo a 2 decimales).
func (i *DocumentItem) Compute() {
	i.Subtotal = i.Quantity.Mul(i.UnitPrice).Round(2)
	i.TaxAmount = i.Subtotal.Mul(i.TaxRate).Div(hundred).Round(2)
	i.Total = i.Subtotal.Add(i.TaxAmount)
}

// RecomputeTotals recalcula cada línea y los totales de cabecera.
func (d *TradeDocument) RecomputeTotals() {
	d.Subtotal, d.TaxTotal, d.Total = decimal.Zero, decimal.Zero, decimal.Zero
	for idx := range d.Items {
		it := &d.Items[idx]
		it.Position = idx + 1
		it.Compute()
		d.Subtotal = d.Subtotal.Add(it.Subtotal)
		d.TaxTotal = d.TaxTotal.Add(it.TaxAmount)
	}
	d.Total = d.Subtotal.Add(d.TaxTotal)
}

// BalanceDue saldo pendiente de una factura.
func (d *TradeDocument) BalanceDue() decimal.Decimal {
	return d.Total.Sub(d.AmountPaid)
}

// FormatNumber número de documento <PREFIJO>-<AÑO>-<consecutivo de 5 dígitos>, ej. INV-2026-00042.
func FormatNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
}
