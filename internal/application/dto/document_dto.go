package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest línea de cotización, pedido u orden/factura. Sin tax_rate se usa la del producto.
type DocumentItemRequest struct {
	ProductID   string           `json:"product_id" validate:"omitempty,uuid"`
	Description string           `json:"description" validate:"max=500"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal  `json:"unit_price" validate:"gte=0"`
	TaxRate     *decimal.Decimal `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
}

// DocumentRequest cuerpo de POST/PUT de documentos comerciales. Solo aplican los campos del tipo:
// customer_id (ventas) o vendor_id (compras); quotation_id (pedido) u order_id (facturas);
// valid_until (cotización), expected_delivery_date (pedidos y órdenes) o due_date (facturas).
// En PUT solo cambian los campos presentes; items, si viene, reemplaza todas las líneas.
type DocumentRequest struct {
	CustomerID           *string               `json:"customer_id" validate:"omitempty,uuid"`
	VendorID             *string               `json:"vendor_id" validate:"omitempty,uuid"`
	QuotationID          *string               `json:"quotation_id" validate:"omitempty,uuid"`
	OrderID              *string               `json:"order_id" validate:"omitempty,uuid"`
	Date                 *string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil           *string               `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	ExpectedDeliveryDate *string               `json:"expected_delivery_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate              *string               `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status               *string               `json:"status" validate:"omitempty,max=20"`
	Note                 *string               `json:"note"`
	Items                []DocumentItemRequest `json:"items" validate:"omitempty,dive"`
}

// DocumentQuery filtros de listado (?status=&customer_id=&vendor_id=&from=&to=).
type DocumentQuery struct {
	ListQuery
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
	VendorID   string `query:"vendor_id"`
	From       string `query:"from"`
	To         string `query:"to"`
}

// DocumentItemResponse línea con importes calculados.
type DocumentItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

// DocumentResponse salida de un documento comercial; los campos específicos se omiten si no aplican.
type DocumentResponse struct {
	ID                   string                 `json:"id"`
	Number               string                 `json:"number"`
	CustomerID           string                 `json:"customer_id,omitempty"`
	CustomerName         string                 `json:"customer_name,omitempty"`
	VendorID             string                 `json:"vendor_id,omitempty"`
	VendorName           string                 `json:"vendor_name,omitempty"`
	QuotationID          string                 `json:"quotation_id,omitempty"`
	OrderID              string                 `json:"order_id,omitempty"`
	Date                 string                 `json:"date"`
	ValidUntil           *string                `json:"valid_until,omitempty"`
	ExpectedDeliveryDate *string                `json:"expected_delivery_date,omitempty"`
	DueDate              *string                `json:"due_date,omitempty"`
	Status               string                 `json:"status"`
	Subtotal             decimal.Decimal        `json:"subtotal"`
	TaxTotal             decimal.Decimal        `json:"tax_total"`
	Total                decimal.Decimal        `json:"total"`
	AmountPaid           *decimal.Decimal       `json:"amount_paid,omitempty"`
	BalanceDue           *decimal.Decimal       `json:"balance_due,omitempty"`
	Note                 string                 `json:"note"`
	Items                []DocumentItemResponse `json:"items,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

// DocumentListResponse lista paginada (sin líneas).
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
